package postgres

import (
	"github.com/frahmantamala/pto-portal/internal/schedule"
	"gorm.io/gorm"
)

// SnapshotRepository implements the schedule.SnapshotArchiver interface using
// GORM. The backups table is append-only; rows are never updated or read back
// by this system.
type SnapshotRepository struct {
	db *gorm.DB
}

func NewSnapshotRepository(db *gorm.DB) schedule.SnapshotArchiver {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) Archive(snap *schedule.Snapshot) error {
	return r.db.Create(snap).Error
}
