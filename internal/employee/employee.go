package employee

import (
	"errors"
	"fmt"
)

// Employee mirrors the HR-owned employees table. Identifiers are issued
// externally; this system never writes to the table.
type Employee struct {
	ID        int64  `json:"id" gorm:"primaryKey;column:employee_id"`
	FirstName string `json:"first_name" gorm:"column:first_name;not null"`
	LastName  string `json:"last_name" gorm:"column:last_name;not null"`
	Email     string `json:"email" gorm:"column:email;not null"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e Employee) DisplayName() string {
	return fmt.Sprintf("%s %s", e.FirstName, e.LastName)
}

// Repository is the read-only data access surface for employees.
type Repository interface {
	GetByID(id int64) (*Employee, error)
	ListAll() ([]Employee, error)
}

var ErrEmployeeNotFound = errors.New("employee not found")
