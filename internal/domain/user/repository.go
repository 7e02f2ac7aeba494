package user

import (
	"context"
	"time"
)

type UserRepository interface {
	// List returns every user that has not been deleted, in seed order.
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	Update(ctx context.Context, u User) error
	SoftDelete(ctx context.Context, id string, at time.Time) error
}
