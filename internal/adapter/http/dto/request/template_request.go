package request

type TemplateRequest struct {
	Channel string `json:"channel" example:"whatsapp"`
	Body    string `json:"body" binding:"required"`
}
