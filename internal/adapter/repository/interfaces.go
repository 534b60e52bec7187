package repository

import (
	"context"

	"github.com/olegk/users-api/internal/domain/entity"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/repository_mocks.go -package=mocks

// UserRepository mediates all access to the users table. Every method is a
// single round trip; there are no transactions. Implementations translate
// driver errors into domain sentinels (ErrUserNotFound, ErrEmailTaken).
type UserRepository interface {
	List(ctx context.Context) ([]entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// Search matches name as a case-insensitive substring OR email exactly.
	Search(ctx context.Context, query string) ([]entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// UpdateByEmail replaces name/email of the record addressed by email and
	// returns the updated record.
	UpdateByEmail(ctx context.Context, email string, user *entity.User) error
	DeleteByEmail(ctx context.Context, email string) error
	// SetAvatarByEmail updates only the avatar columns.
	SetAvatarByEmail(ctx context.Context, email, key, url string) (*entity.User, error)
}
