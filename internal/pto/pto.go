package pto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateLayout is the wire and storage format for all calendar dates.
const DateLayout = "2006-01-02"

// Request is a persisted PTO request. Once written it is never updated or
// deleted by this system; status transitions happen in the external approval
// tooling.
type Request struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EmployeeID int64     `json:"employee_id" gorm:"column:employee_id;not null"`
	StartDate  time.Time `json:"-" gorm:"column:start_date;type:date;not null"`
	EndDate    time.Time `json:"-" gorm:"column:end_date;type:date;not null"`
	Reason     string    `json:"reason" gorm:"column:reason"`
	Status     string    `json:"status" gorm:"column:status;default:pending"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Request) TableName() string {
	return "pto_requests"
}

// IsActive reports whether the request counts toward schedules.
func (r *Request) IsActive() bool {
	return r.Status == StatusPending || r.Status == StatusApproved
}

// Request status constants. Only pending is ever written here.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Domain errors
var (
	ErrMissingDates = errors.New("both start and end dates are required")
	ErrInvalidDate  = errors.New("dates must use the YYYY-MM-DD format")
	ErrInvalidRange = errors.New("end date must not be before start date")
)

// SubmitRequestDTO carries a form submission. Dates arrive as strings and are
// validated before anything touches storage.
type SubmitRequestDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Reason    string `json:"reason,omitempty"`
}

// Validate checks the submission and returns the parsed date range.
func (dto SubmitRequestDTO) Validate() (start, end time.Time, err error) {
	startRaw := strings.TrimSpace(dto.StartDate)
	endRaw := strings.TrimSpace(dto.EndDate)
	if startRaw == "" || endRaw == "" {
		return time.Time{}, time.Time{}, ErrMissingDates
	}

	start, err = time.ParseInLocation(DateLayout, startRaw, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}
	end, err = time.ParseInLocation(DateLayout, endRaw, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidDate
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return start, end, nil
}

// RequestSubmittedEvent announces a successfully persisted request so the
// notification path runs outside the submit transaction.
type RequestSubmittedEvent struct {
	Request *Request

	id         string
	occurredAt time.Time
}

const EventTypeRequestSubmitted = "pto.request.submitted"

func NewRequestSubmittedEvent(req *Request) RequestSubmittedEvent {
	return RequestSubmittedEvent{
		Request:    req,
		id:         uuid.NewString(),
		occurredAt: time.Now(),
	}
}

func (e RequestSubmittedEvent) EventType() string     { return EventTypeRequestSubmitted }
func (e RequestSubmittedEvent) EventID() string       { return e.id }
func (e RequestSubmittedEvent) OccurredAt() time.Time { return e.occurredAt }
func (e RequestSubmittedEvent) Payload() interface{}  { return e.Request }
