package status

import (
	"context"
	"fmt"

	"library-compare/core/cache"
	"library-compare/core/database"
	"library-compare/core/sources"
	"library-compare/core/storage"
	"library-compare/core/unify"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusOK       = "ok"
	StatusError    = "error"
	StatusSkipped  = "skipped"
	StatusDegraded = "degraded"
)

// Report is the combined health of the service's dependencies.
type Report struct {
	Status    string         `json:"status"`
	Storage   StorageReport  `json:"storage"`
	Database  SchemaReport   `json:"database"`
	Cache     CacheReport    `json:"cache"`
	Platforms PlatformReport `json:"platforms"`
}

type StorageReport struct {
	Status string `json:"status"`
	Bucket string `json:"bucket"`
	Exists bool   `json:"exists"`
	Error  string `json:"error,omitempty"`
}

// SchemaReport compares the snapshot table against the expected columns.
type SchemaReport struct {
	Status         string   `json:"status"`
	Driver         string   `json:"driver,omitempty"`
	Table          string   `json:"table"`
	MissingColumns []string `json:"missing_columns"`
	Error          string   `json:"error,omitempty"`
}

type CacheReport struct {
	Status  string                 `json:"status"`
	Driver  string                 `json:"driver"`
	TTL     string                 `json:"ttl"`
	Entries map[string]cache.Entry `json:"entries,omitempty"`
	Error   string                 `json:"error,omitempty"`
}

type PlatformReport struct {
	Configured []unify.Platform `json:"configured"`
	Missing    []unify.Platform `json:"missing"`
}

// Service inspects storage, database, cache and platform configuration.
type Service struct {
	client      storage.Client
	bucket      string
	db          *gorm.DB
	cacheDriver string
	cache       *cache.Cache
	sources     []sources.Source
	logger      *zap.Logger
}

// NewService creates a new status service. client and db may be nil.
func NewService(client storage.Client, bucket string, db *gorm.DB, cacheDriver string, c *cache.Cache, srcs []sources.Source, logger *zap.Logger) *Service {
	return &Service{
		client:      client,
		bucket:      bucket,
		db:          db,
		cacheDriver: cache.NormalizeDriver(cacheDriver),
		cache:       c,
		sources:     srcs,
		logger:      logger,
	}
}

// Check runs every check. Failures are reported, not returned.
func (s *Service) Check(ctx context.Context) Report {
	report := Report{
		Storage:   s.CheckStorage(ctx),
		Database:  s.CheckSchema(),
		Cache:     s.CheckCache(ctx),
		Platforms: s.CheckPlatforms(),
		Status:    StatusOK,
	}
	for _, st := range []string{report.Storage.Status, report.Database.Status, report.Cache.Status} {
		if st == StatusError {
			report.Status = StatusDegraded
		}
	}
	return report
}

// CheckStorage reports whether the icon bucket is reachable.
func (s *Service) CheckStorage(ctx context.Context) StorageReport {
	report := StorageReport{Bucket: s.bucket}
	if s.client == nil {
		report.Status = StatusSkipped
		return report
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		return report
	}
	report.Exists = exists
	report.Status = StatusOK
	if !exists {
		report.Status = StatusError
		report.Error = fmt.Sprintf("bucket %s does not exist", s.bucket)
	}
	return report
}

// CheckSchema verifies the snapshot table when snapshots live in the database.
func (s *Service) CheckSchema() SchemaReport {
	report := SchemaReport{Table: cache.TableName, MissingColumns: []string{}}
	if s.cacheDriver != cache.DriverDatabase {
		report.Status = StatusSkipped
		return report
	}
	if s.db == nil {
		report.Status = StatusError
		report.Error = "database connection is nil"
		return report
	}
	report.Driver = s.db.Dialector.Name()

	missing, err := database.MissingColumns(s.db, cache.TableName, cache.Columns())
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		return report
	}
	report.MissingColumns = missing

	report.Status = StatusOK
	if len(report.MissingColumns) > 0 {
		report.Status = StatusError
	}
	return report
}

// CheckCache lists cached snapshots.
func (s *Service) CheckCache(ctx context.Context) CacheReport {
	report := CacheReport{Driver: s.cacheDriver}
	if s.cache == nil {
		report.Status = StatusSkipped
		return report
	}
	report.TTL = s.cache.TTL().String()

	entries, err := s.cache.Status(ctx)
	if err != nil {
		report.Status = StatusError
		report.Error = err.Error()
		return report
	}
	report.Entries = entries
	report.Status = StatusOK
	return report
}

// CheckPlatforms splits the platforms into configured and missing.
func (s *Service) CheckPlatforms() PlatformReport {
	report := PlatformReport{
		Configured: []unify.Platform{},
		Missing:    []unify.Platform{},
	}
	enabled := make(map[unify.Platform]bool)
	for _, p := range sources.Enabled(s.sources) {
		enabled[p] = true
	}
	for _, p := range unify.Platforms() {
		if enabled[p] {
			report.Configured = append(report.Configured, p)
		} else {
			report.Missing = append(report.Missing, p)
		}
	}
	return report
}
