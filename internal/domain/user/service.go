package user

import "context"

type UserService interface {
	List(ctx context.Context, f ListFilter) (ListResponse, error)
	// Filtered returns the filtered, sorted collection behind a list view.
	Filtered(ctx context.Context, f ListFilter) ([]User, error)
	Get(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, req CreateUserRequest) (User, error)
	Update(ctx context.Context, req UpdateUserRequest) (User, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context, id string) (DetailStats, error)
}
