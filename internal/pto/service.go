package pto

import (
	"context"
	"log/slog"
	"strings"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/core/events"
)

// Repository defines the data access methods for PTO requests.
type Repository interface {
	Create(req *Request) error
	ListByEmployee(employeeID int64) ([]Request, error)
	ListActive() ([]Request, error)
}

// Publisher decouples the submit path from whoever listens for submissions.
type Publisher interface {
	Publish(ctx context.Context, event events.Event)
}

// Service handles PTO request business logic.
type Service struct {
	repo      Repository
	publisher Publisher
	logger    *slog.Logger
}

func NewService(repo Repository, publisher Publisher, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Submit validates and persists a new request with status pending and a
// server-assigned timestamp, then announces it for best-effort notification.
// Notification failure never rolls back or fails the submission.
func (s *Service) Submit(ctx context.Context, employeeID int64, dto SubmitRequestDTO) (*Request, error) {
	start, end, err := dto.Validate()
	if err != nil {
		s.logger.Info("request validation failed", "error", err, "employee_id", employeeID)
		return nil, s.validationError(err)
	}

	req := &Request{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     strings.TrimSpace(dto.Reason),
		Status:     StatusPending,
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to persist request", "error", err, "employee_id", employeeID)
		return nil, internal.NewStorageError(err)
	}

	s.logger.Info("request submitted",
		"request_id", req.ID,
		"employee_id", employeeID,
		"start_date", start.Format(DateLayout),
		"end_date", end.Format(DateLayout))

	if s.publisher != nil {
		// the request context is canceled once the HTTP response is written;
		// the confirmation send must outlive it
		s.publisher.Publish(context.WithoutCancel(ctx), NewRequestSubmittedEvent(req))
	}

	return req, nil
}

// ListFor returns the caller's own requests, most recent first. No requests
// is an empty slice, not an error.
func (s *Service) ListFor(employeeID int64) ([]Request, error) {
	requests, err := s.repo.ListByEmployee(employeeID)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err, "employee_id", employeeID)
		return nil, internal.NewStorageError(err)
	}
	if requests == nil {
		requests = []Request{}
	}
	return requests, nil
}

// ListActive returns pending and approved requests ordered by employee then
// start date. Consumed by the schedule aggregator.
func (s *Service) ListActive() ([]Request, error) {
	requests, err := s.repo.ListActive()
	if err != nil {
		s.logger.Error("failed to list active requests", "error", err)
		return nil, internal.NewStorageError(err)
	}
	if requests == nil {
		requests = []Request{}
	}
	return requests, nil
}

func (s *Service) validationError(err error) *internal.AppError {
	switch err {
	case ErrMissingDates:
		return internal.ErrMissingDates
	case ErrInvalidDate:
		return internal.ErrInvalidDate
	case ErrInvalidRange:
		return internal.ErrInvalidRange
	default:
		return internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}
}
