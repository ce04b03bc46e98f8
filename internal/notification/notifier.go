package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/pto"
	"github.com/wneessen/go-mail"
)

const (
	subject = "PTO Request Received"

	// sendTimeout bounds a single delivery attempt, dial included.
	sendTimeout = 10 * time.Second

	bodyTemplate = `Hi %s,

Your PTO request from %s to %s has been received and is pending review.
You will be contacted once it has been processed.

— Scheduling System`
)

// Sender is the SMTP delivery surface, satisfied by *mail.Client.
type Sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// Dispatcher sends plain-text confirmation mail. Every failure mode is soft:
// logged, reported as false, never propagated to the submit path.
type Dispatcher struct {
	sender Sender
	from   string
	logger *slog.Logger
}

func NewDispatcher(cfg internal.SMTPConfig, logger *slog.Logger) (*Dispatcher, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTimeout(sendTimeout),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build smtp client: %w", err)
	}

	return &Dispatcher{
		sender: client,
		from:   cfg.From,
		logger: logger,
	}, nil
}

// NewDispatcherWithSender injects a delivery implementation; used by tests
// and local setups without a reachable relay.
func NewDispatcherWithSender(sender Sender, from string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sender: sender,
		from:   from,
		logger: logger,
	}
}

// Notify sends the confirmation message and reports whether delivery
// succeeded.
func (d *Dispatcher) Notify(ctx context.Context, recipientEmail, employeeName string, start, end time.Time) bool {
	msg := mail.NewMsg()
	if err := msg.From(d.from); err != nil {
		d.logger.Error("notify: invalid sender address", "error", err, "from", d.from)
		return false
	}
	if err := msg.To(recipientEmail); err != nil {
		d.logger.Error("notify: invalid recipient address", "error", err, "to", recipientEmail)
		return false
	}

	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, fmt.Sprintf(bodyTemplate,
		employeeName,
		start.Format(pto.DateLayout),
		end.Format(pto.DateLayout)))

	ctx, cancel := internal.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := d.sender.DialAndSendWithContext(ctx, msg); err != nil {
		d.logger.Error("notify: delivery failed", "error", err, "to", recipientEmail)
		return false
	}

	d.logger.Info("confirmation sent", "to", recipientEmail)
	return true
}
