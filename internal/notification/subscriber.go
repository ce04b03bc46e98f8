package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/core/events"
	"github.com/frahmantamala/pto-portal/internal/employee"
	"github.com/frahmantamala/pto-portal/internal/pto"
)

// EmployeeResolver resolves a submitted request's owner to an email address.
type EmployeeResolver interface {
	Resolve(id int64) (*employee.Employee, error)
}

// Notifier is the dispatch surface, satisfied by *Dispatcher.
type Notifier interface {
	Notify(ctx context.Context, recipientEmail, employeeName string, start, end time.Time) bool
}

// Subscriber listens for submitted requests and sends the confirmation mail.
// It runs after the database commit, outside any transaction; a lookup or
// delivery failure here is logged and never reaches the submitter.
type Subscriber struct {
	resolver EmployeeResolver
	notifier Notifier
	logger   *slog.Logger
}

func NewSubscriber(resolver EmployeeResolver, notifier Notifier, logger *slog.Logger) *Subscriber {
	return &Subscriber{
		resolver: resolver,
		notifier: notifier,
		logger:   logger,
	}
}

// Register subscribes the confirmation handler on the event bus.
func (s *Subscriber) Register(bus *events.Bus) {
	bus.Subscribe(pto.EventTypeRequestSubmitted, s.HandleRequestSubmitted)
}

// HandleRequestSubmitted resolves the requester's email and dispatches the
// confirmation.
func (s *Subscriber) HandleRequestSubmitted(ctx context.Context, event events.Event) error {
	req, ok := event.Payload().(*pto.Request)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s event", event.EventType())
	}

	emp, err := s.resolver.Resolve(req.EmployeeID)
	if err != nil {
		s.logger.Error("confirmation skipped: could not resolve employee",
			"error", err,
			"request_id", req.ID,
			"employee_id", req.EmployeeID)
		return nil
	}

	if sent := s.notifier.Notify(ctx, emp.Email, emp.DisplayName(), req.StartDate, req.EndDate); !sent {
		s.logger.Warn("confirmation not delivered",
			"request_id", req.ID,
			"employee_id", req.EmployeeID)
		return internal.NewNotificationError(fmt.Errorf("confirmation for request %d not delivered", req.ID))
	}
	return nil
}
