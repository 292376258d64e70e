// Package postgres implements the tour store on PostgreSQL through gorm.
// Queries are traced with otelgorm and driver errors are mapped to domain
// sentinels.
package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen11/guidedtours/internal/domain/tour"
	"github.com/jsamuelsen11/guidedtours/internal/platform/config"
	"github.com/jsamuelsen11/guidedtours/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.TourRepository = (*Store)(nil)
	_ ports.HealthChecker  = (*Store)(nil)
)

// Store is a gorm-backed TourRepository. Inside WithinTx the store handed
// to the callback is bound to the transaction.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL, installs tracing and applies the pool
// settings. The connection is verified with a ping bounded by
// cfg.PingTimeout.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(pgdriver.Open(cfg.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		return nil, fmt.Errorf("installing otelgorm: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, cfg.PingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	logger.InfoContext(ctx, "database connected",
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
	)
	return New(db), nil
}

// New wraps an existing gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the tours and steps tables.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&tourRow{}, &stepRow{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Name identifies the store in health reports.
func (s *Store) Name() string { return "database" }

// HealthCheck pings the database.
func (s *Store) HealthCheck(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database: %w", err)
	}
	return nil
}

// WithinTx runs fn in a database transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, store ports.TourStore) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &Store{db: tx})
	})
}

func (s *Store) MaxOrdering(ctx context.Context) (int, error) {
	var highest int
	err := s.db.WithContext(ctx).Model(&tourRow{}).
		Select("COALESCE(MAX(ordering), 0)").
		Scan(&highest).Error
	if err != nil {
		return 0, mapError("max ordering", err)
	}
	return highest, nil
}

func (s *Store) GetTour(ctx context.Context, id int64) (*tour.Tour, error) {
	return s.getTour(s.db.WithContext(ctx), id)
}

func (s *Store) GetTourForUpdate(ctx context.Context, id int64) (*tour.Tour, error) {
	return s.getTour(s.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (s *Store) getTour(db *gorm.DB, id int64) (*tour.Tour, error) {
	var row tourRow
	if err := db.First(&row, id).Error; err != nil {
		return nil, mapError(fmt.Sprintf("tour %d", id), err)
	}
	t := row.toDomain()
	return &t, nil
}

func (s *Store) ListTours(ctx context.Context) ([]tour.Tour, error) {
	var rows []tourRow
	if err := s.db.WithContext(ctx).Order("ordering ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, mapError("list tours", err)
	}
	out := make([]tour.Tour, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

func (s *Store) CreateTour(ctx context.Context, t *tour.Tour) error {
	row := toTourRow(t)
	row.ID = 0
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mapError("create tour", err)
	}
	t.ID = row.ID
	return nil
}

func (s *Store) UpdateTour(ctx context.Context, t *tour.Tour) error {
	row := toTourRow(t)
	res := s.db.WithContext(ctx).Model(&tourRow{}).
		Where("id = ?", t.ID).
		Select(tourUpdateColumns).
		Updates(&row)
	if res.Error != nil {
		return mapError(fmt.Sprintf("update tour %d", t.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(fmt.Sprintf("update tour %d", t.ID), gorm.ErrRecordNotFound)
	}

	stored, err := s.GetTour(ctx, t.ID)
	if err != nil {
		return err
	}
	*t = *stored
	return nil
}

func (s *Store) DeleteTour(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&tourRow{}, id)
	if res.Error != nil {
		return mapError(fmt.Sprintf("delete tour %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return mapError(fmt.Sprintf("delete tour %d", id), gorm.ErrRecordNotFound)
	}
	return nil
}

func (s *Store) ListSteps(ctx context.Context, tourID int64) ([]tour.Step, error) {
	var rows []stepRow
	err := s.db.WithContext(ctx).
		Where("tour_id = ?", tourID).
		Order("ordering ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, mapError(fmt.Sprintf("list steps of tour %d", tourID), err)
	}
	out := make([]tour.Step, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

// CreateSteps inserts steps in a single multi-row statement.
func (s *Store) CreateSteps(ctx context.Context, steps []tour.Step) error {
	if len(steps) == 0 {
		return nil
	}
	rows := make([]stepRow, len(steps))
	for i := range steps {
		rows[i] = toStepRow(&steps[i])
		rows[i].ID = 0
	}
	if err := s.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return mapError("create steps", err)
	}
	for i := range rows {
		steps[i].ID = rows[i].ID
	}
	return nil
}

func (s *Store) DeleteStepsByTour(ctx context.Context, tourID int64) (int64, error) {
	res := s.db.WithContext(ctx).Where("tour_id = ?", tourID).Delete(&stepRow{})
	if res.Error != nil {
		return 0, mapError(fmt.Sprintf("delete steps of tour %d", tourID), res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) SetStepsLanguage(ctx context.Context, tourID int64, language string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&stepRow{}).
		Where("tour_id = ?", tourID).
		Update("language", language)
	if res.Error != nil {
		return 0, mapError(fmt.Sprintf("set language of tour %d steps", tourID), res.Error)
	}
	return res.RowsAffected, nil
}
