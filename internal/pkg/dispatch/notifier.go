package dispatch

import "context"

// Notice is a toast-style message about a dispatched command.
type Notice struct {
	Level   Level   `json:"level"`
	Message string  `json:"message"`
	Actor   Actor   `json:"actor"`
	Result  *Result `json:"result,omitempty"`
}

// Notifier receives notices. Implementations must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notice) {}
