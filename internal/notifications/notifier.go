package notifications

import (
	"context"
	"fmt"

	"hotelbooking/internal/events"
	"hotelbooking/pkg/config"
	"hotelbooking/pkg/logger"
	"hotelbooking/pkg/model"

	"github.com/wneessen/go-mail"
)

type Notification struct {
	Subject string
	Body    string
}

// Notifier delivers one notification to one staff member.
type Notifier interface {
	Notify(ctx context.Context, member model.Staff, n Notification) error
}

// Compose renders the staff notification for a booking event. The second
// return is false for event types staff are not notified about.
func Compose(evt events.Event) (Notification, bool) {
	switch evt.Type {
	case events.TypeBookingMade:
		return Notification{
			Subject: fmt.Sprintf("Booking #%d made", evt.BookingID),
			Body: fmt.Sprintf(
				"A new booking has been made.\n\nBooking: #%d\nRoom: #%d\nCustomer: #%d\nCheck-in: %s\nCheck-out: %s\n",
				evt.BookingID, evt.RoomID, evt.CustomerID, evt.CheckInDate, evt.CheckOutDate,
			),
		}, true
	case events.TypeBookingCanceled:
		return Notification{
			Subject: fmt.Sprintf("Booking #%d canceled", evt.BookingID),
			Body: fmt.Sprintf(
				"A booking has been canceled.\n\nBooking: #%d\nRoom: #%d\nCustomer: #%d\nCheck-in: %s\nCheck-out: %s\n",
				evt.BookingID, evt.RoomID, evt.CustomerID, evt.CheckInDate, evt.CheckOutDate,
			),
		}, true
	default:
		return Notification{}, false
	}
}

type LogNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, member model.Staff, notification Notification) error {
	n.log.Info("Staff notified",
		"staff_id", member.ID,
		"email", member.Email,
		"subject", notification.Subject,
	)
	return nil
}

type mailSender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type MailNotifier struct {
	client mailSender
	from   string
}

func NewMailNotifier(cfg *config.Config) (*MailNotifier, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUsername != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUsername),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}

	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &MailNotifier{client: client, from: cfg.SMTPFrom}, nil
}

func (n *MailNotifier) Notify(ctx context.Context, member model.Staff, notification Notification) error {
	msg := mail.NewMsg()
	if err := msg.From(n.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := msg.To(member.Email); err != nil {
		return fmt.Errorf("set recipient %q: %w", member.Email, err)
	}
	msg.Subject(notification.Subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf("Hello %s,\n\n%s", member.Name, notification.Body))

	if err := n.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", member.Email, err)
	}
	return nil
}

// NewNotifier picks SMTP delivery when it is configured.
func NewNotifier(cfg *config.Config) (Notifier, error) {
	if !cfg.SMTPEnabled() {
		cfg.Log.Info("SMTP not configured, logging staff notifications")
		return NewLogNotifier(cfg.Log), nil
	}
	return NewMailNotifier(cfg)
}
