package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/infrastructure/logger"
	"quadra_billing/internal/usecase/interfaces"

	"cloud.google.com/go/pubsub"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"
)

const (
	MessagePaymentConfirmed = "payment_confirmed"
	MessageReminder         = "reservation_reminder"
	MessageOperatorAlert    = "operator_alert"

	preGameLead   = 2 * time.Hour
	postGameDelay = 2 * time.Hour
)

// Message is the envelope consumed by the messaging service.
type Message struct {
	Type        string    `json:"type"`
	Destination string    `json:"destination,omitempty"`
	TemplateKey string    `json:"template_key,omitempty"`
	Channel     string    `json:"channel,omitempty"`
	Template    string    `json:"template,omitempty"`
	SendAt      time.Time `json:"send_at,omitempty"`
	Payload     any       `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
}

// Publisher sends one encoded message and returns the server id.
type Publisher interface {
	Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error)
}

type topicPublisher struct {
	topic *pubsub.Topic
}

func (p topicPublisher) Publish(ctx context.Context, data []byte, attrs map[string]string) (string, error) {
	return p.topic.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}).Get(ctx)
}

// NewPubSubClient builds a client with explicit credentials when given,
// otherwise Application Default Credentials.
func NewPubSubClient(ctx context.Context, projectID, credentialsJSON string) (*pubsub.Client, error) {
	if credentialsJSON != "" {
		return pubsub.NewClient(ctx, projectID, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}
	return pubsub.NewClient(ctx, projectID)
}

// NewTopicPublisher publishes to topic, creating it when missing.
func NewTopicPublisher(ctx context.Context, client *pubsub.Client, topic string) (Publisher, error) {
	t := client.Topic(topic)
	ok, err := t.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %q: %w", topic, err)
	}
	if !ok {
		if t, err = client.CreateTopic(ctx, topic); err != nil {
			return nil, fmt.Errorf("create topic %q: %w", topic, err)
		}
	}
	return topicPublisher{topic: t}, nil
}

type PubSubOptions struct {
	DefaultRegion string
	// Location is the venue timezone used to schedule reminders.
	Location  *time.Location
	Templates interfaces.ITemplateRepository
	Logger    logrus.FieldLogger
}

type PubSubNotifier struct {
	pub       Publisher
	region    string
	loc       *time.Location
	templates interfaces.ITemplateRepository
	log       *logrus.Entry
	now       func() time.Time
}

var _ interfaces.INotificationDispatcher = (*PubSubNotifier)(nil)

func NewPubSubNotifier(pub Publisher, opts PubSubOptions) *PubSubNotifier {
	if opts.DefaultRegion == "" {
		opts.DefaultRegion = "BR"
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &PubSubNotifier{
		pub:       pub,
		region:    opts.DefaultRegion,
		loc:       opts.Location,
		templates: opts.Templates,
		log:       logger.Component(opts.Logger, "notifications"),
		now:       time.Now,
	}
}

func (n *PubSubNotifier) NotifyPaymentConfirmed(ctx context.Context, destination string, facts entities.PaymentConfirmation) error {
	dest, err := NormalizeDestination(destination, n.region)
	if err != nil {
		return err
	}
	return n.publish(ctx, Message{
		Type:        MessagePaymentConfirmed,
		Destination: dest,
		TemplateKey: entities.TemplatePaymentConfirmed,
		Payload:     facts,
	})
}

// ScheduleReservationReminders publishes the pre-game and post-game
// messages with their send time. Reminders already in the past are skipped.
func (n *PubSubNotifier) ScheduleReservationReminders(ctx context.Context, req entities.ReminderRequest) error {
	dest, err := NormalizeDestination(req.Contact, n.region)
	if err != nil {
		return err
	}
	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, n.loc)
	if err != nil {
		return fmt.Errorf("parse reservation start: %w", err)
	}

	now := n.now()
	for _, r := range []struct {
		key    string
		sendAt time.Time
	}{
		{entities.TemplateReminderPreGame, start.Add(-preGameLead)},
		{entities.TemplateReminderPostGame, start.Add(postGameDelay)},
	} {
		if r.sendAt.Before(now) {
			n.log.WithFields(logrus.Fields{"reservation_id": req.ReservationID, "template_key": r.key}).Info("reminder time already passed; skipped")
			continue
		}
		if err := n.publish(ctx, Message{
			Type:        MessageReminder,
			Destination: dest,
			TemplateKey: r.key,
			SendAt:      r.sendAt.UTC(),
			Payload:     req,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (n *PubSubNotifier) NotifyOperator(ctx context.Context, alert entities.OperatorAlert) error {
	return n.publish(ctx, Message{
		Type:        MessageOperatorAlert,
		TemplateKey: entities.TemplateOperatorAlert,
		Payload:     alert,
	})
}

func (n *PubSubNotifier) publish(ctx context.Context, m Message) error {
	m.CreatedAt = n.now().UTC()
	if n.templates != nil && m.TemplateKey != "" {
		t, err := n.templates.Get(ctx, m.TemplateKey)
		if err != nil {
			n.log.WithError(err).WithField("template_key", m.TemplateKey).Warn("template lookup failed; publishing without body")
		} else if t.Key != "" {
			m.Template = t.Body
			m.Channel = t.Channel
		}
	}

	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	id, err := n.pub.Publish(ctx, data, map[string]string{"type": m.Type, "template_key": m.TemplateKey})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	n.log.WithFields(logrus.Fields{"type": m.Type, "template_key": m.TemplateKey, "message_id": id}).Info("notification published")
	return nil
}
