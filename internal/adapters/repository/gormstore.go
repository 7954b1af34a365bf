package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/okian/eventdesk/internal/domain/model"
	"github.com/okian/eventdesk/pkg/logger"
	"github.com/okian/eventdesk/pkg/metrics"
)

const defaultSlowThreshold = 500 * time.Millisecond

// GormStore implements ContactStore on Postgres through gorm.
type GormStore struct {
	db            *gorm.DB
	now           func() time.Time
	newID         func() string
	logger        logger.Logger
	maxOpenConns  int
	slowThreshold time.Duration
}

var _ ContactStore = (*GormStore)(nil)

func newStore(opts []Option) *GormStore {
	s := &GormStore{
		now:           func() time.Time { return time.Now().UTC() },
		newID:         func() string { return uuid.New().String() },
		slowThreshold: defaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("store")
	}
	return s
}

// Open connects to Postgres using dsn.
func Open(ctx context.Context, dsn string, opts ...Option) (*GormStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: database url is empty", ErrUnavailable)
	}
	s := newStore(opts)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newGormLogger(s.logger, s.slowThreshold),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if s.maxOpenConns > 0 {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		sqlDB.SetMaxOpenConns(s.maxOpenConns)
		sqlDB.SetMaxIdleConns(s.maxOpenConns)
	}
	s.db = db
	s.logger.Info(ctx, "connected to contacts store")
	return s, nil
}

// NewGormStore wraps an already opened gorm handle.
func NewGormStore(db *gorm.DB, opts ...Option) *GormStore {
	s := newStore(opts)
	s.db = db.Session(&gorm.Session{Logger: newGormLogger(s.logger, s.slowThreshold)})
	return s
}

// Migrate creates or updates the contacts table.
func (s *GormStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&model.Contact{}); err != nil {
		return fmt.Errorf("%w: migrate: %w", ErrStore, err)
	}
	return nil
}

// List returns every contact ordered by creation time.
func (s *GormStore) List(ctx context.Context) (contacts []model.Contact, err error) {
	defer s.observe("list", time.Now(), &err)

	contacts = []model.Contact{}
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&contacts).Error; err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStore, err)
	}
	return contacts, nil
}

// Create inserts a contact and returns the stored row.
func (s *GormStore) Create(ctx context.Context, in model.NewContact) (c model.Contact, err error) {
	defer s.observe("create", time.Now(), &err)

	c = model.Contact{
		ID:        s.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CreatedAt: s.now(),
	}
	result := s.db.WithContext(ctx).Create(&c)
	if result.Error != nil {
		return model.Contact{}, fmt.Errorf("%w: %w", ErrStore, result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Contact{}, fmt.Errorf("%w: insert affected no rows", ErrStore)
	}
	return c, nil
}

// Delete removes the contact with id and reports whether a row was removed.
// Ids that are not UUIDs cannot match a row and are treated as already deleted.
func (s *GormStore) Delete(ctx context.Context, id string) (deleted bool, err error) {
	defer s.observe("delete", time.Now(), &err)

	if _, perr := uuid.Parse(id); perr != nil {
		return false, nil
	}
	result := s.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Contact{})
	if result.Error != nil {
		return false, fmt.Errorf("%w: %w", ErrStore, result.Error)
	}
	return result.RowsAffected > 0, nil
}

// Ping reports whether the datastore is reachable.
func (s *GormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}

// Close releases the connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *GormStore) observe(op string, start time.Time, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	metrics.RecordStoreOperation(op, float64(time.Since(start).Milliseconds()), err)
}
