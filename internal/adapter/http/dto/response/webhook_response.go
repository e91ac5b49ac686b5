package response

// WebhookAck is the 200 body; the provider treats it as delivered.
type WebhookAck struct {
	Status           string `json:"status"`
	RequestID        string `json:"requestId"`
	ProcessingTimeMs int64  `json:"processingTimeMs"`
}

// WebhookFailure is the 500 body; the provider redelivers the event.
type WebhookFailure struct {
	Error     string `json:"error"`
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}
