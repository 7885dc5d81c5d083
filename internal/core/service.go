package core

import (
	"context"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/JonMunkholm/usermgmt/internal/logging"
	"github.com/google/uuid"
)

// MaxOffset is the largest row offset a page may start at.
const MaxOffset = math.MaxInt32

// DefaultImportTimeout is the maximum duration for a CSV import.
const DefaultImportTimeout = 2 * time.Minute

// ServiceConfig tunes import handling.
type ServiceConfig struct {
	MaxConcurrentImports int
	ImportWaitTime       time.Duration
	ImportTimeout        time.Duration
}

// Service provides the user operations shared by every transport.
type Service struct {
	store         UserStore
	limiter       *ImportLimiter
	importTimeout time.Duration
}

// NewService creates a Service on top of store.
func NewService(store UserStore, cfg ServiceConfig) *Service {
	timeout := cfg.ImportTimeout
	if timeout <= 0 {
		timeout = DefaultImportTimeout
	}
	return &Service{
		store:         store,
		limiter:       NewImportLimiter(cfg.MaxConcurrentImports, cfg.ImportWaitTime),
		importTimeout: timeout,
	}
}

// UserPage is one page of the user collection.
type UserPage struct {
	Users         []User
	Number        int // 0-based page index
	Size          int
	TotalElements int64
	TotalPages    int
}

// ListUsers returns page number (0-based) of size users ordered by id.
func (s *Service) ListUsers(ctx context.Context, number, size int) (*UserPage, error) {
	if number < 0 {
		number = 0
	}
	if size <= 0 || size > MaxOffset {
		return nil, fmt.Errorf("page size must be between 1 and %d, got %d", MaxOffset, size)
	}
	if number > (MaxOffset-size)/size {
		return nil, fmt.Errorf("%w: page %d of size %d", ErrPageOutOfRange, number, size)
	}

	total, err := s.store.Count(ctx)
	if err != nil {
		return nil, err
	}

	users, err := s.store.List(ctx, size, number*size)
	if err != nil {
		return nil, err
	}

	return &UserPage{
		Users:         users,
		Number:        number,
		Size:          size,
		TotalElements: total,
		TotalPages:    int((total + int64(size) - 1) / int64(size)),
	}, nil
}

// GetUser returns the user with id, or ErrUserNotFound.
func (s *Service) GetUser(ctx context.Context, id int64) (User, error) {
	return s.store.Get(ctx, id)
}

// CreateUser validates in and stores it as a new user.
func (s *Service) CreateUser(ctx context.Context, in UserInput) (User, error) {
	u, err := ValidateUser(in)
	if err != nil {
		return User{}, err
	}

	created, err := s.store.Create(ctx, u)
	if err != nil {
		return User{}, err
	}

	logging.FromContext(ctx).Info("user created", "user_id", created.ID)
	return created, nil
}

// UpdateUser replaces every attribute of user id with in.
// Returns ErrUserNotFound before validating when id does not exist.
func (s *Service) UpdateUser(ctx context.Context, id int64, in UserInput) (User, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return User{}, err
	}

	u, err := ValidateUser(in)
	if err != nil {
		return User{}, err
	}
	u.ID = id

	updated, err := s.store.Update(ctx, u)
	if err != nil {
		return User{}, err
	}

	logging.FromContext(ctx).Info("user updated", "user_id", id)
	return updated, nil
}

// DeleteUser removes user id, or returns ErrUserNotFound.
func (s *Service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}

// ImportResult summarizes a completed CSV import.
type ImportResult struct {
	ImportID uuid.UUID
	Strategy Strategy
	Saved    int
	Duration time.Duration
}

// ImportCSV parses r and saves every user it contains in one transaction.
// Either all records are saved or none.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (*ImportResult, error) {
	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.importTimeout)
	defer cancel()

	start := time.Now()
	importID := uuid.New()
	logger := logging.WithFields(ctx, "import_id", importID.String())
	logger.Info("import started")

	parsed, err := ParseUsers(ctx, r)
	if err != nil {
		logger.Warn("import rejected", "error", err)
		return nil, err
	}

	saved, err := s.store.SaveAll(ctx, parsed.Users)
	if err != nil {
		logger.Warn("import failed", "error", err, "records", len(parsed.Users))
		return nil, err
	}

	result := &ImportResult{
		ImportID: importID,
		Strategy: parsed.Strategy,
		Saved:    len(saved),
		Duration: time.Since(start),
	}

	logger.Info("import completed",
		"strategy", result.Strategy,
		"records", result.Saved,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// ActiveImports returns the number of imports in progress.
func (s *Service) ActiveImports() int {
	return s.limiter.ActiveCount()
}

// WaitForImports blocks until running imports finish or ctx ends.
func (s *Service) WaitForImports(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}
