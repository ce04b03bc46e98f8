package schedule

import (
	"errors"
	"time"
)

// EmployeeSchedule is one employee's slice of the aggregate schedule: display
// name plus every covered calendar day in request order. Overlapping requests
// contribute their days repeatedly; the aggregate mirrors what was requested,
// not a deduplicated calendar.
type EmployeeSchedule struct {
	Name  string   `json:"name"`
	Dates []string `json:"pto_dates"`
}

// Schedule maps employee identifier to that employee's PTO days. Employees
// with no active requests appear with an empty list.
type Schedule map[int64]EmployeeSchedule

// Snapshot is an immutable archival copy of a computed schedule, written to
// the append-only backups table and never queried back by this system.
type Snapshot struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	BackupType string    `json:"backup_type" gorm:"column:backup_type;not null"`
	BackupData string    `json:"backup_data" gorm:"column:backup_data;type:jsonb;not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at;default:now()"`
}

func (Snapshot) TableName() string {
	return "backups"
}

// SnapshotTypeSchedule tags schedule exports in the backups table.
const SnapshotTypeSchedule = "schedule"

var ErrInvalidRange = errors.New("end date must not be before start date")
