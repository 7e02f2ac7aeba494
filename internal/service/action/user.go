package action

import (
	"context"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
)

type UserHandler struct {
	users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Subject() dispatch.Subject {
	return dispatch.Subject{Singular: "User", Plural: "Users"}
}

func (h *UserHandler) Kinds() []dispatch.Kind {
	return []dispatch.Kind{dispatch.KindDelete}
}

func (h *UserHandler) Check(ctx context.Context, kind dispatch.Kind, id string) error {
	_, err := h.users.Get(ctx, id)
	return classify(err)
}

func (h *UserHandler) Apply(ctx context.Context, cmd dispatch.Command, id string) error {
	return classify(h.users.Delete(ctx, id))
}
