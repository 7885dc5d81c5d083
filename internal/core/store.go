package core

// store.go is the persistence gateway for users.
//
// PostgresStore wraps the generated queries in internal/database and turns
// driver errors into core errors: missing rows become ErrUserNotFound and
// constraint violations become *IntegrityError.

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	db "github.com/JonMunkholm/usermgmt/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultBatchSize is the number of statements sent per pgx batch.
const DefaultBatchSize = 500

// UserStore persists users.
type UserStore interface {
	List(ctx context.Context, limit, offset int) ([]User, error)
	Count(ctx context.Context) (int64, error)
	Get(ctx context.Context, id int64) (User, error)
	Create(ctx context.Context, u User) (User, error)
	Update(ctx context.Context, u User) (User, error)
	Delete(ctx context.Context, id int64) error

	// SaveAll inserts users without an id and updates the rest, all in one
	// transaction. On error nothing is saved.
	SaveAll(ctx context.Context, users []User) ([]User, error)

	Ping(ctx context.Context) error
}

// PostgresStore is a UserStore backed by PostgreSQL.
type PostgresStore struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewPostgresStore creates a store using pool. batchSize <= 0 selects
// DefaultBatchSize.
func NewPostgresStore(pool *pgxpool.Pool, batchSize int) *PostgresStore {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &PostgresStore{pool: pool, batchSize: batchSize}
}

func (s *PostgresStore) List(ctx context.Context, limit, offset int) ([]User, error) {
	rows, err := db.New(s.pool).ListUsers(ctx, db.ListUsersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	users := make([]User, len(rows))
	for i, row := range rows {
		users[i] = userFromRow(row)
	}
	return users, nil
}

func (s *PostgresStore) Count(ctx context.Context) (int64, error) {
	n, err := db.New(s.pool).CountUsers(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (User, error) {
	row, err := db.New(s.pool).GetUser(ctx, id)
	if err != nil {
		return User{}, classifyError(fmt.Errorf("get user %d: %w", id, err))
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) Create(ctx context.Context, u User) (User, error) {
	row, err := db.New(s.pool).InsertUser(ctx, insertParams(u))
	if err != nil {
		return User{}, classifyError(fmt.Errorf("insert user: %w", err))
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) Update(ctx context.Context, u User) (User, error) {
	row, err := db.New(s.pool).UpdateUser(ctx, updateParams(u))
	if err != nil {
		return User{}, classifyError(fmt.Errorf("update user %d: %w", u.ID, err))
	}
	return userFromRow(row), nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	n, err := db.New(s.pool).DeleteUser(ctx, id)
	if err != nil {
		return classifyError(fmt.Errorf("delete user %d: %w", id, err))
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *PostgresStore) SaveAll(ctx context.Context, users []User) ([]User, error) {
	if len(users) == 0 {
		return []User{}, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := db.New(s.pool).WithTx(tx)
	saved := make([]User, len(users))

	for start := 0; start < len(users); start += s.batchSize {
		end := min(start+s.batchSize, len(users))
		if err := s.saveChunk(ctx, q, users[start:end], saved[start:end]); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, classifyError(fmt.Errorf("commit: %w", err))
	}

	return saved, nil
}

// saveChunk sends one insert batch and one update batch for chunk, writing
// the stored rows into out at matching positions.
func (s *PostgresStore) saveChunk(ctx context.Context, q *db.Queries, chunk, out []User) error {
	var (
		inserts   []db.InsertUsersParams
		insertPos []int
		updates   []db.UpdateUsersParams
		updatePos []int
	)
	for i, u := range chunk {
		if u.ID == 0 {
			inserts = append(inserts, db.InsertUsersParams(insertParams(u)))
			insertPos = append(insertPos, i)
		} else {
			updates = append(updates, db.UpdateUsersParams(updateParams(u)))
			updatePos = append(updatePos, i)
		}
	}

	var batchErr error
	collect := func(pos []int) func(int, db.User, error) {
		return func(i int, row db.User, err error) {
			if batchErr != nil {
				return
			}
			if err != nil {
				batchErr = err
				return
			}
			out[pos[i]] = userFromRow(row)
		}
	}

	if len(inserts) > 0 {
		q.InsertUsers(ctx, inserts).QueryRow(collect(insertPos))
		if batchErr != nil {
			return classifyError(fmt.Errorf("insert batch: %w", batchErr))
		}
	}
	if len(updates) > 0 {
		q.UpdateUsers(ctx, updates).QueryRow(collect(updatePos))
		if batchErr != nil {
			return classifyError(fmt.Errorf("update batch: %w", batchErr))
		}
	}

	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// PostgreSQL error codes treated as integrity violations.
const (
	pgUniqueViolation  = "23505"
	pgNotNullViolation = "23502"
	pgCheckViolation   = "23514"
	pgValueTooLong     = "22001"
)

var (
	// trailingIdentifier matches a quoted constraint name ending a message.
	trailingIdentifier = regexp.MustCompile(`\s+"[^"]*"$`)

	// keyDetail matches `Key (email)=(a@b.com) already exists.`
	keyDetail = regexp.MustCompile(`^Key \((.+?)\)=\((.*)\) already exists`)
)

// classifyError maps driver errors to core errors. Unrecognized errors are
// returned unchanged.
func classifyError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrUserNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation, pgNotNullViolation, pgCheckViolation, pgValueTooLong:
	default:
		return err
	}

	ie := &IntegrityError{
		Constraint: pgErr.ConstraintName,
		Column:     pgErr.ColumnName,
		Message:    integrityMessage(pgErr.Message),
		Err:        err,
	}

	if m := keyDetail.FindStringSubmatch(pgErr.Detail); m != nil {
		ie.Column = m[1]
		ie.Message = fmt.Sprintf("%s on %s (%s)", ie.Message, m[1], m[2])
	}

	return ie
}

// integrityMessage strips key and constraint names from a driver message.
func integrityMessage(msg string) string {
	if i := strings.Index(msg, " for key"); i >= 0 {
		msg = msg[:i]
	}
	return trailingIdentifier.ReplaceAllString(msg, "")
}

func userFromRow(row db.User) User {
	return User{
		ID:        row.ID,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		Address:   row.Address,
		City:      row.City,
		State:     row.State,
		ZipCode:   row.ZipCode,
		Phone:     FromPgText(row.Phone),
		Email:     row.Email,
		Dob:       FromPgDate(row.Dob),
		Ssn:       row.Ssn,
		Picture:   FromPgText(row.Picture),
	}
}

func insertParams(u User) db.InsertUserParams {
	return db.InsertUserParams{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		ZipCode:   u.ZipCode,
		Phone:     ToPgText(u.Phone),
		Email:     u.Email,
		Dob:       ToPgDate(u.Dob),
		Ssn:       u.Ssn,
		Picture:   ToPgText(u.Picture),
	}
}

func updateParams(u User) db.UpdateUserParams {
	return db.UpdateUserParams{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Address:   u.Address,
		City:      u.City,
		State:     u.State,
		ZipCode:   u.ZipCode,
		Phone:     ToPgText(u.Phone),
		Email:     u.Email,
		Dob:       ToPgDate(u.Dob),
		Ssn:       u.Ssn,
		Picture:   ToPgText(u.Picture),
	}
}
