package repositories

import (
	"context"

	"cleanconnect/internal/database"
	. "cleanconnect/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

type UserRepository interface {
	Store[User]
	FindByEmail(ctx context.Context, email string) (User, bool, error)
	FirstByRole(ctx context.Context, role Role) (User, bool, error)
	ListCleaners(ctx context.Context) ([]User, error)
}

type userRepository struct {
	Store[User]
	log logger.Logger
}

func NewUserRepository(db database.DB) UserRepository {
	return newUserRepository(NewStore[User](db, UserCollection))
}

func newUserRepository(store Store[User]) UserRepository {
	return &userRepository{
		Store: store,
		log:   logger.New("userRepository"),
	}
}

// FindByEmail matches the address exactly.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (User, bool, error) {
	return r.first(ctx, "FindByEmail", func(u User) bool { return u.Email == email })
}

func (r *userRepository) FirstByRole(ctx context.Context, role Role) (User, bool, error) {
	return r.first(ctx, "FirstByRole", func(u User) bool { return u.Role == role })
}

func (r *userRepository) ListCleaners(ctx context.Context) ([]User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, r.log.Function("ListCleaners").Err("failed to list users", err)
	}

	cleaners := make([]User, 0, len(users))
	for _, user := range users {
		if user.IsCleaner() {
			cleaners = append(cleaners, user)
		}
	}
	return cleaners, nil
}

func (r *userRepository) first(ctx context.Context, fn string, match func(User) bool) (User, bool, error) {
	users, err := r.List(ctx)
	if err != nil {
		return User{}, false, r.log.Function(fn).Err("failed to list users", err)
	}

	for _, user := range users {
		if match(user) {
			return user, true, nil
		}
	}
	return User{}, false, nil
}
