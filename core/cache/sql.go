package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// TableName is the table holding snapshots.
const TableName = "library_snapshots"

// snapshotRecord is the gorm model of a snapshot row.
type snapshotRecord struct {
	Scope     string    `gorm:"column:scope;primaryKey;size:32"`
	Payload   []byte    `gorm:"column:payload"`
	Count     int       `gorm:"column:count"`
	FetchedAt time.Time `gorm:"column:fetched_at;index"`
}

func (snapshotRecord) TableName() string {
	return TableName
}

// Columns returns the column names the snapshot table is expected to have.
func Columns() []string {
	s, err := schema.Parse(&snapshotRecord{}, &sync.Map{}, schema.NamingStrategy{})
	if err != nil {
		return nil
	}
	return s.DBNames
}

// SQLStore keeps snapshots in the library_snapshots table.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore migrates the snapshot table and returns a store over db.
func NewSQLStore(db *gorm.DB) (*SQLStore, error) {
	if err := db.AutoMigrate(&snapshotRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate %s: %w", TableName, err)
	}
	return &SQLStore{db: db}, nil
}

func (s *SQLStore) Put(ctx context.Context, snap Snapshot) error {
	rec := snapshotRecord{
		Scope:     snap.Scope,
		Payload:   snap.Payload,
		Count:     snap.Count,
		FetchedAt: snap.FetchedAt.UTC(),
	}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", snap.Scope, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, scope string) (Snapshot, error) {
	var rec snapshotRecord
	err := s.db.WithContext(ctx).Where("scope = ?", scope).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load snapshot %s: %w", scope, err)
	}
	return rec.snapshot(), nil
}

func (s *SQLStore) List(ctx context.Context) ([]Snapshot, error) {
	var recs []snapshotRecord
	if err := s.db.WithContext(ctx).Order("scope").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	out := make([]Snapshot, len(recs))
	for i, rec := range recs {
		out[i] = rec.snapshot()
	}
	return out, nil
}

func (s *SQLStore) Delete(ctx context.Context, scope string) error {
	if err := s.db.WithContext(ctx).Where("scope = ?", scope).Delete(&snapshotRecord{}).Error; err != nil {
		return fmt.Errorf("failed to delete snapshot %s: %w", scope, err)
	}
	return nil
}

func (s *SQLStore) DeleteAll(ctx context.Context) error {
	// gorm refuses unconditioned deletes without AllowGlobalUpdate.
	err := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&snapshotRecord{}).Error
	if err != nil {
		return fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return nil
}

func (r snapshotRecord) snapshot() Snapshot {
	return Snapshot{
		Scope:     r.Scope,
		Payload:   r.Payload,
		Count:     r.Count,
		FetchedAt: r.FetchedAt,
	}
}
