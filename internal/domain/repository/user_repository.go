package repository

import "github.com/mkwon-dev/user-account-service/internal/domain/entity"

// UserRepository defines the interface for user-related database operations.
// Implementations return application.ErrUserNotFound-compatible sentinels via
// the errors defined next to the service layer; email uniqueness is enforced
// by the backing store and surfaced as a conflict on Create.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id int64) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByIDAndStatus(id int64, status entity.UserStatus) (*entity.User, error)
	Update(u *entity.User) error
}
