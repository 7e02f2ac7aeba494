package memory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
)

type userRepositoryImpl struct {
	users *collection[user.User]
}

func cloneUser(u user.User) user.User {
	u.LastLogin = cloneTime(u.LastLogin)
	u.JobTitle = clonePtr(u.JobTitle)
	u.Phone = clonePtr(u.Phone)
	u.StartDate = cloneTime(u.StartDate)
	u.Manager = clonePtr(u.Manager)
	u.Description = clonePtr(u.Description)
	u.Notes = clonePtr(u.Notes)
	u.PasswordHash = clonePtr(u.PasswordHash)
	u.DeletedAt = cloneTime(u.DeletedAt)
	return u
}

// List implements user.UserRepository.
func (r *userRepositoryImpl) List(ctx context.Context) ([]user.User, error) {
	return r.users.list(nil), nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := r.users.get(id)
	if !ok {
		return user.User{}, fmt.Errorf("user %s: %w", id, user.ErrUserNotFound)
	}
	return u, nil
}

// GetByEmail implements user.UserRepository. Emails compare case-insensitively.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	u, ok := r.users.find(func(u user.User) bool { return strings.EqualFold(u.Email, email) })
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	if _, taken := r.users.find(func(u user.User) bool { return strings.EqualFold(u.Email, newUser.Email) }); taken {
		return user.User{}, user.ErrUserEmailExists
	}
	if !r.users.insert(newUser) {
		return user.User{}, fmt.Errorf("user id %s already exists", newUser.ID)
	}
	return cloneUser(newUser), nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, u user.User) error {
	if other, taken := r.users.find(func(o user.User) bool { return strings.EqualFold(o.Email, u.Email) }); taken && other.ID != u.ID {
		return user.ErrUserEmailExists
	}
	if !r.users.replace(u) {
		return fmt.Errorf("user %s: %w", u.ID, user.ErrUserNotFound)
	}
	return nil
}

// SoftDelete implements user.UserRepository.
func (r *userRepositoryImpl) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ok := r.users.mutate(id, func(u *user.User) {
		u.DeletedAt = &at
		u.UpdatedAt = at
	})
	if !ok {
		return fmt.Errorf("user %s: %w", id, user.ErrUserNotFound)
	}
	return nil
}

func NewUserRepository(seed []user.User) user.UserRepository {
	return &userRepositoryImpl{
		users: newCollection(seed,
			func(u user.User) string { return u.ID },
			func(u user.User) bool { return u.IsDeleted() },
			cloneUser,
		),
	}
}
