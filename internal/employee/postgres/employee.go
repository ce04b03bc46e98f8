package postgres

import (
	"github.com/frahmantamala/pto-portal/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
// Reads only; the employees table is owned by the external HR system.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) GetByID(id int64) (*employee.Employee, error) {
	var emp employee.Employee
	err := r.db.Where("employee_id = ?", id).First(&emp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) ListAll() ([]employee.Employee, error) {
	var emps []employee.Employee
	err := r.db.Order("employee_id ASC").Find(&emps).Error
	return emps, err
}
