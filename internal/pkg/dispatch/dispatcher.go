package dispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTTL     = 5 * time.Minute
	DefaultWorkers = 4
)

// Handler applies commands to one entity type.
type Handler interface {
	Subject() Subject
	Kinds() []Kind
	// Check reports whether kind may be applied to id. Missing entities
	// must wrap ErrNotFound, illegal transitions ErrInvalidTransition.
	Check(ctx context.Context, kind Kind, id string) error
	Apply(ctx context.Context, cmd Command, id string) error
}

// Pending is a command awaiting confirmation.
type Pending struct {
	Token     string    `json:"token"`
	Command   Command   `json:"command"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	OkText    string    `json:"ok_text"`
	Danger    bool      `json:"danger"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Config struct {
	TTL     time.Duration
	Workers int
	Now     func() time.Time
}

type Dispatcher struct {
	cfg      Config
	notifier Notifier
	locks    *keyMutex

	mu       sync.Mutex
	handlers map[string]Handler
	pending  map[string]Pending
}

func New(cfg Config, notifier Notifier) *Dispatcher {
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Dispatcher{
		cfg:      cfg,
		notifier: notifier,
		locks:    newKeyMutex(),
		handlers: make(map[string]Handler),
		pending:  make(map[string]Pending),
	}
}

// Register binds a handler to an entity type such as "leave".
func (d *Dispatcher) Register(entityType string, h Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[entityType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRegistration, entityType)
	}
	d.handlers[entityType] = h
	return nil
}

func (d *Dispatcher) handler(cmd Command) (Handler, error) {
	d.mu.Lock()
	h, ok := d.handlers[cmd.EntityType]
	d.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEntity, cmd.EntityType)
	}
	for _, k := range h.Kinds() {
		if k == cmd.Kind {
			return h, nil
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrUnsupportedKind, cmd.Kind, cmd.EntityType)
}

// Request validates cmd and returns the confirmation prompt. Nothing is
// applied until Confirm.
func (d *Dispatcher) Request(ctx context.Context, cmd Command) (Pending, error) {
	h, err := d.handler(cmd)
	if err != nil {
		return Pending{}, err
	}
	subject := h.Subject()

	cmd.EntityIDs = dedupe(cmd.EntityIDs)
	if len(cmd.EntityIDs) == 0 {
		warn := emptySelection(subject, cmd.Kind)
		d.notifier.Notify(ctx, Notice{Level: LevelWarning, Message: warn.Message, Actor: cmd.Payload.Actor})
		return Pending{}, warn
	}

	if cmd.Kind == KindReject && strings.TrimSpace(cmd.Payload.Reason) == "" {
		return Pending{}, ErrReasonRequired
	}

	for _, id := range cmd.EntityIDs {
		err := h.Check(ctx, cmd.Kind, id)
		if err == nil {
			continue
		}
		// bulk items that exist but cannot transition are reported per item on Confirm
		if cmd.bulk() && !errors.Is(err, ErrNotFound) {
			continue
		}
		return Pending{}, err
	}

	p := buildPrompt(subject, cmd)
	pending := Pending{
		Token:     uuid.NewString(),
		Command:   cmd,
		Title:     p.Title,
		Content:   p.Content,
		OkText:    p.OkText,
		Danger:    p.Danger,
		ExpiresAt: d.cfg.Now().Add(d.cfg.TTL),
	}

	d.mu.Lock()
	d.pending[pending.Token] = pending
	d.mu.Unlock()

	slog.Info("Action requested",
		"token", pending.Token,
		"kind", cmd.Kind,
		"entity_type", cmd.EntityType,
		"count", len(cmd.EntityIDs),
		"actor", cmd.Payload.Actor.ID,
	)
	return pending, nil
}

// Get returns a pending confirmation without consuming it.
func (d *Dispatcher) Get(token string) (Pending, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[token]
	if !ok {
		return Pending{}, ErrConfirmationNotFound
	}
	if d.cfg.Now().After(p.ExpiresAt) {
		delete(d.pending, token)
		return Pending{}, ErrConfirmationExpired
	}
	return p, nil
}

func (d *Dispatcher) take(token string) (Pending, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, ok := d.pending[token]
	if !ok {
		return Pending{}, ErrConfirmationNotFound
	}
	delete(d.pending, token)
	if d.cfg.Now().After(p.ExpiresAt) {
		return Pending{}, ErrConfirmationExpired
	}
	return p, nil
}

// Confirm applies a pending command. Each item transitions on its own;
// one failure never rolls back another.
func (d *Dispatcher) Confirm(ctx context.Context, token string) (Result, error) {
	p, err := d.take(token)
	if err != nil {
		return Result{}, err
	}
	h, err := d.handler(p.Command)
	if err != nil {
		return Result{}, err
	}

	cmd := p.Command
	outcomes := make([]Outcome, len(cmd.EntityIDs))

	var g errgroup.Group
	g.SetLimit(d.cfg.Workers)
	for i, id := range cmd.EntityIDs {
		g.Go(func() error {
			outcomes[i] = d.apply(ctx, h, cmd, id)
			return nil
		})
	}
	_ = g.Wait()

	result := Result{Command: cmd, Outcomes: outcomes}
	for _, o := range outcomes {
		if o.OK {
			result.Succeeded++
		} else {
			result.Failed++
		}
	}
	summarize(h.Subject(), &result)

	slog.Info("Action confirmed",
		"token", token,
		"kind", cmd.Kind,
		"entity_type", cmd.EntityType,
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)

	d.notifier.Notify(ctx, Notice{
		Level:   result.Level,
		Message: result.Message,
		Actor:   cmd.Payload.Actor,
		Result:  &result,
	})
	return result, nil
}

func (d *Dispatcher) apply(ctx context.Context, h Handler, cmd Command, id string) Outcome {
	if err := ctx.Err(); err != nil {
		return failed(id, err)
	}

	unlock := d.locks.Lock(cmd.EntityType + ":" + id)
	defer unlock()

	if err := h.Check(ctx, cmd.Kind, id); err != nil {
		return failed(id, err)
	}
	if err := h.Apply(ctx, cmd, id); err != nil {
		slog.Warn("Action item failed", "kind", cmd.Kind, "entity_type", cmd.EntityType, "id", id, "error", err)
		return failed(id, err)
	}
	return Outcome{ID: id, OK: true}
}

func failed(id string, err error) Outcome {
	return Outcome{ID: id, Error: err.Error(), Err: err}
}

// Cancel discards a pending confirmation.
func (d *Dispatcher) Cancel(token string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.pending[token]; !ok {
		return ErrConfirmationNotFound
	}
	delete(d.pending, token)
	return nil
}

// Sweep drops expired confirmations. It matches the cron job signature.
func (d *Dispatcher) Sweep(ctx context.Context) error {
	now := d.cfg.Now()

	d.mu.Lock()
	removed := 0
	for token, p := range d.pending {
		if now.After(p.ExpiresAt) {
			delete(d.pending, token)
			removed++
		}
	}
	d.mu.Unlock()

	if removed > 0 {
		slog.Info("Expired confirmations removed", "count", removed)
	}
	return nil
}

// PendingCount reports how many confirmations are outstanding.
func (d *Dispatcher) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
