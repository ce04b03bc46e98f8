package schedule

import (
	"encoding/json"
	"log/slog"

	"github.com/frahmantamala/pto-portal/internal"
	"github.com/frahmantamala/pto-portal/internal/employee"
	"github.com/frahmantamala/pto-portal/internal/pto"
)

// EmployeeDirectory enumerates the HR-owned employee table.
type EmployeeDirectory interface {
	ListAll() ([]employee.Employee, error)
}

// RequestSource supplies the active (pending or approved) requests.
type RequestSource interface {
	ListActive() ([]pto.Request, error)
}

// SnapshotArchiver persists immutable schedule backups.
type SnapshotArchiver interface {
	Archive(snapshot *Snapshot) error
}

// Service builds the aggregate PTO schedule and its export documents.
type Service struct {
	employees EmployeeDirectory
	requests  RequestSource
	snapshots SnapshotArchiver
	logger    *slog.Logger
}

func NewService(employees EmployeeDirectory, requests RequestSource, snapshots SnapshotArchiver, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		requests:  requests,
		snapshots: snapshots,
		logger:    logger,
	}
}

// BuildSchedule joins every employee against their active requests and
// expands each request's range into per-day entries. Employees without
// requests appear with an empty date list. Days from overlapping requests
// accumulate in request order rather than being deduplicated.
func (s *Service) BuildSchedule() (Schedule, error) {
	emps, err := s.employees.ListAll()
	if err != nil {
		s.logger.Error("schedule build: employee enumeration failed", "error", err)
		return nil, internal.NewStorageError(err)
	}

	requests, err := s.requests.ListActive()
	if err != nil {
		s.logger.Error("schedule build: active request load failed", "error", err)
		return nil, internal.NewStorageError(err)
	}

	sched := make(Schedule, len(emps))
	for _, emp := range emps {
		sched[emp.ID] = EmployeeSchedule{Name: emp.DisplayName(), Dates: []string{}}
	}

	for _, req := range requests {
		entry, ok := sched[req.EmployeeID]
		if !ok {
			s.logger.Warn("schedule build: request without employee row",
				"request_id", req.ID,
				"employee_id", req.EmployeeID)
			continue
		}

		days, err := ExpandRange(req.StartDate, req.EndDate)
		if err != nil {
			s.logger.Warn("schedule build: skipping unexpandable range",
				"request_id", req.ID,
				"error", err)
			continue
		}
		for _, day := range days {
			entry.Dates = append(entry.Dates, day.Format(pto.DateLayout))
		}
		sched[req.EmployeeID] = entry
	}

	s.logger.Info("schedule built",
		"employees", len(emps),
		"active_requests", len(requests))

	return sched, nil
}

// archive writes the computed schedule to the backups table. Audit archival
// is best-effort: a write failure is logged and the export proceeds.
func (s *Service) archive(sched Schedule) {
	if s.snapshots == nil {
		return
	}

	data, err := json.Marshal(sched)
	if err != nil {
		s.logger.Error("snapshot marshal failed", "error", err)
		return
	}

	snap := &Snapshot{
		BackupType: SnapshotTypeSchedule,
		BackupData: string(data),
	}
	if err := s.snapshots.Archive(snap); err != nil {
		s.logger.Error("snapshot archive failed", "error", err)
		return
	}

	s.logger.Info("schedule snapshot archived", "snapshot_id", snap.ID)
}
