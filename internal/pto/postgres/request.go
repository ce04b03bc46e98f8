package postgres

import (
	"github.com/frahmantamala/pto-portal/internal/pto"
	"gorm.io/gorm"
)

// RequestRepository implements the pto.Repository interface using GORM.
type RequestRepository struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) pto.Repository {
	return &RequestRepository{db: db}
}

// Create inserts a new request row. Status and created_at defaults are set by
// the caller and the database respectively.
func (r *RequestRepository) Create(req *pto.Request) error {
	return r.db.Create(req).Error
}

// ListByEmployee retrieves one employee's requests, most recent first.
func (r *RequestRepository) ListByEmployee(employeeID int64) ([]pto.Request, error) {
	var requests []pto.Request
	err := r.db.Where("employee_id = ?", employeeID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// ListActive retrieves pending and approved requests across all employees,
// in the order the schedule aggregator consumes them.
func (r *RequestRepository) ListActive() ([]pto.Request, error) {
	var requests []pto.Request
	err := r.db.Where("status IN ?", []string{pto.StatusPending, pto.StatusApproved}).
		Order("employee_id ASC, start_date ASC").
		Find(&requests).Error
	return requests, err
}
