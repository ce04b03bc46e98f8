package employee

import (
	"errors"
	"log/slog"

	"github.com/frahmantamala/pto-portal/internal"
)

// Service handles employee identity lookups against the HR-owned table.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Resolve looks up a single employee by identifier. A missing row is a
// user-facing not-found condition; any other repository failure is wrapped
// as a storage error so the boundary renders only a generic retry message.
func (s *Service) Resolve(id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			s.logger.Info("employee lookup miss", "employee_id", id)
			return nil, internal.ErrEmployeeNotFound
		}
		s.logger.Error("employee lookup failed", "error", err, "employee_id", id)
		return nil, internal.NewStorageError(err)
	}
	return emp, nil
}

// ListAll enumerates every employee, including those with no PTO requests.
func (s *Service) ListAll() ([]Employee, error) {
	emps, err := s.repo.ListAll()
	if err != nil {
		s.logger.Error("employee enumeration failed", "error", err)
		return nil, internal.NewStorageError(err)
	}
	return emps, nil
}
