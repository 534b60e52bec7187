package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/olegk/users-api/internal/domain"
	"github.com/olegk/users-api/internal/domain/entity"
	"github.com/olegk/users-api/internal/pkg/apperror"
)

const userColumns = `id, name, email, avatar_key, avatar_url, created_at, updated_at`

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return user, nil
}

func (r *UserRepo) Search(ctx context.Context, q string) ([]entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE name ILIKE '%' || $1 || '%' OR email = $2
		ORDER BY created_at
	`
	rows, err := r.pool.Query(ctx, query, escapeLike(q), q)
	if err != nil {
		return nil, fmt.Errorf("searching users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (name, email)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at
	`
	err := r.pool.QueryRow(ctx, query, user.Name, user.Email).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *UserRepo) UpdateByEmail(ctx context.Context, email string, user *entity.User) error {
	query := `
		UPDATE users
		SET name = $2, email = $3, updated_at = now()
		WHERE email = $1
		RETURNING id, avatar_key, avatar_url, created_at, updated_at
	`
	var avatarKey, avatarURL *string
	err := r.pool.QueryRow(ctx, query, email, user.Name, user.Email).Scan(
		&user.ID, &avatarKey, &avatarURL, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if cerr := constraintError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("updating user: %w", err)
	}
	if avatarKey != nil {
		user.AvatarKey = *avatarKey
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return nil
}

func (r *UserRepo) DeleteByEmail(ctx context.Context, email string) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) SetAvatarByEmail(ctx context.Context, email, key, url string) (*entity.User, error) {
	query := `
		UPDATE users
		SET avatar_key = NULLIF($2, ''), avatar_url = NULLIF($3, ''), updated_at = now()
		WHERE email = $1
		RETURNING ` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, email, key, url))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("updating avatar: %w", err)
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		user      entity.User
		avatarKey *string
		avatarURL *string
	)
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &avatarKey, &avatarURL,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if avatarKey != nil {
		user.AvatarKey = *avatarKey
	}
	if avatarURL != nil {
		user.AvatarURL = *avatarURL
	}
	return &user, nil
}

func scanUsers(rows pgx.Rows) ([]entity.User, error) {
	users := make([]entity.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading user rows: %w", err)
	}
	return users, nil
}

// constraintError maps constraint violations to client-facing errors: a
// unique violation (SQLSTATE 23505) is a taken email, a check violation
// (23514, the name length check) is a bad request echoing the store's
// message. Anything else returns nil and stays a server error.
func constraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nil
	}
	switch pgErr.Code {
	case "23505":
		return domain.ErrEmailTaken
	case "23514":
		return apperror.BadRequest(pgErr.Message, err)
	}
	return nil
}

// escapeLike escapes LIKE metacharacters so the search query is matched
// literally as a substring.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
