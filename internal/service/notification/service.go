package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/sse"
	"github.com/google/uuid"
)

// Config holds notification service configuration
type Config struct {
	BatchSize     int           // default: 100
	FlushInterval time.Duration // default: 2 seconds
	WorkerCount   int           // default: 2
	QueueSize     int           // default: 1000
}

type NotificationServiceImpl struct {
	repo   notification.Repository
	hub    *sse.Hub
	mailer email.EmailService
	config Config
	now    func() time.Time

	queue  chan notification.CreateNotificationRequest
	wg     sync.WaitGroup
	mailWG sync.WaitGroup
	stopCh chan struct{}
	once   sync.Once
}

// NewNotificationService starts the background workers. mailer may be nil.
func NewNotificationService(repo notification.Repository, hub *sse.Hub, mailer email.EmailService, cfg Config) *NotificationServiceImpl {
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 100
	}
	if cfg.FlushInterval == 0 {
		cfg.FlushInterval = 2 * time.Second
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 2
	}
	if cfg.QueueSize == 0 {
		cfg.QueueSize = 1000
	}

	s := &NotificationServiceImpl{
		repo:   repo,
		hub:    hub,
		mailer: mailer,
		config: cfg,
		now:    time.Now,
		queue:  make(chan notification.CreateNotificationRequest, cfg.QueueSize),
		stopCh: make(chan struct{}),
	}

	for i := 0; i < cfg.WorkerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	slog.Info("Notification service started",
		"workers", cfg.WorkerCount,
		"batch_size", cfg.BatchSize,
		"flush_interval", cfg.FlushInterval,
	)
	return s
}

func (s *NotificationServiceImpl) worker(id int) {
	defer s.wg.Done()

	batch := make([]notification.CreateNotificationRequest, 0, s.config.BatchSize)
	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		notifications := make([]*notification.Notification, len(batch))
		for i, req := range batch {
			notifications[i] = s.build(req)
		}

		if err := s.repo.CreateBatch(ctx, notifications); err != nil {
			slog.Error("Failed to insert notification batch", "worker", id, "count", len(notifications), "error", err)
		} else {
			slog.Debug("Notifications inserted", "worker", id, "count", len(notifications))
			for i, n := range notifications {
				s.publish(n)
				s.mail(batch[i])
			}
		}

		batch = batch[:0]
	}

	for {
		select {
		case req := <-s.queue:
			batch = append(batch, req)
			if len(batch) >= s.config.BatchSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-s.stopCh:
		drain:
			for {
				select {
				case req := <-s.queue:
					batch = append(batch, req)
				default:
					break drain
				}
			}
			flush()
			return
		}
	}
}

func (s *NotificationServiceImpl) build(req notification.CreateNotificationRequest) *notification.Notification {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	level := req.Level
	if level == "" {
		level = notification.LevelSuccess
	}
	return &notification.Notification{
		ID:          id.String(),
		RecipientID: req.RecipientID,
		Type:        req.Type,
		Level:       level,
		Title:       req.Title,
		Message:     req.Message,
		EntityType:  req.EntityType,
		EntityIDs:   append([]string(nil), req.EntityIDs...),
		CreatedAt:   s.now(),
	}
}

func (s *NotificationServiceImpl) publish(n *notification.Notification) {
	s.hub.Publish(n.RecipientID, sse.Event{
		UserID: n.RecipientID,
		Event:  "notification",
		Data:   toResponse(n),
	})
}

// mail sends the decision email off the worker goroutine since the mailer
// retries with backoff.
func (s *NotificationServiceImpl) mail(req notification.CreateNotificationRequest) {
	if s.mailer == nil || req.RecipientEmail == "" || !req.Type.Emailed() {
		return
	}

	d := email.Decision{
		RecipientName: req.RecipientName,
		Subject:       subjectNoun(req.EntityType),
		Outcome:       req.Type.Outcome(),
		Actor:         req.ActorName,
		Note:          req.Note,
	}
	if len(req.EntityIDs) > 0 {
		d.Reference = req.EntityIDs[0]
	}

	s.mailWG.Add(1)
	go func() {
		defer s.mailWG.Done()
		if err := s.mailer.SendDecision(req.RecipientEmail, d); err != nil {
			slog.Error("Failed to send decision email", "to", req.RecipientEmail, "reference", d.Reference, "error", err)
		}
	}()
}

func subjectNoun(entityType string) string {
	switch entityType {
	case "leave":
		return "leave request"
	case "":
		return "request"
	}
	return entityType
}

// QueueNotification queues a notification for async processing
func (s *NotificationServiceImpl) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	if req.RecipientID == "" {
		return nil
	}

	select {
	case <-s.stopCh:
		return notification.ErrQueueFull
	default:
	}

	select {
	case s.queue <- req:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		// queue full, insert inline
		return s.directInsert(ctx, req)
	}
}

// QueueBulkNotification queues multiple notifications for async processing
func (s *NotificationServiceImpl) QueueBulkNotification(ctx context.Context, reqs []notification.CreateNotificationRequest) error {
	for _, req := range reqs {
		if err := s.QueueNotification(ctx, req); err != nil {
			slog.Warn("Failed to queue notification", "recipient_id", req.RecipientID, "type", req.Type, "error", err)
		}
	}
	return nil
}

func (s *NotificationServiceImpl) directInsert(ctx context.Context, req notification.CreateNotificationRequest) error {
	n := s.build(req)
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("failed to insert notification: %w", err)
	}
	s.publish(n)
	s.mail(req)
	return nil
}

func toResponse(n *notification.Notification) notification.NotificationResponse {
	return notification.NotificationResponse{
		ID:         n.ID,
		Type:       n.Type,
		Level:      n.Level,
		Title:      n.Title,
		Message:    n.Message,
		EntityType: n.EntityType,
		EntityIDs:  n.EntityIDs,
		IsRead:     n.IsRead,
		ReadAt:     n.ReadAt,
		CreatedAt:  n.CreatedAt,
	}
}

// GetNotifications retrieves paginated notifications for a user
func (s *NotificationServiceImpl) GetNotifications(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) (*notification.NotificationListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	notifications, total, err := s.repo.GetByUserID(ctx, userID, page, pageSize, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	unreadCount, err := s.repo.GetUnreadCount(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}

	responses := make([]notification.NotificationResponse, len(notifications))
	for i, n := range notifications {
		responses[i] = toResponse(n)
	}

	return &notification.NotificationListResponse{
		Notifications: responses,
		Total:         total,
		UnreadCount:   unreadCount,
		Page:          page,
		PageSize:      pageSize,
	}, nil
}

func (s *NotificationServiceImpl) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationServiceImpl) MarkAsRead(ctx context.Context, userID string, req notification.MarkAsReadRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return s.repo.MarkAsRead(ctx, req.NotificationIDs, userID)
}

func (s *NotificationServiceImpl) MarkAllAsRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}

// Subscribe creates an SSE subscription for a user
func (s *NotificationServiceImpl) Subscribe(ctx context.Context, userID string) (<-chan notification.SSEEvent, func()) {
	ch, cleanup := s.hub.Subscribe(userID)

	out := make(chan notification.SSEEvent, 10)

	go func() {
		defer close(out)
		for {
			select {
			case event, ok := <-ch:
				if !ok {
					return
				}
				resp, ok := event.Data.(notification.NotificationResponse)
				if !ok {
					continue
				}
				select {
				case out <- notification.SSEEvent{Event: event.Event, Data: resp}:
				case <-ctx.Done():
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, cleanup
}

// Notify turns a dispatcher notice into an action result for the actor.
func (s *NotificationServiceImpl) Notify(ctx context.Context, n dispatch.Notice) {
	req := notification.CreateNotificationRequest{
		RecipientID: n.Actor.ID,
		Type:        notification.TypeActionResult,
		Level:       notification.Level(n.Level),
		Title:       noticeTitle(n.Level),
		Message:     n.Message,
	}
	if n.Result != nil {
		req.EntityType = n.Result.Command.EntityType
		req.EntityIDs = n.Result.SucceededIDs()
	}
	// the request context may end before the queue drains
	if err := s.QueueNotification(context.WithoutCancel(ctx), req); err != nil {
		slog.Warn("Failed to queue action notice", "actor_id", n.Actor.ID, "error", err)
	}
}

func noticeTitle(l dispatch.Level) string {
	switch l {
	case dispatch.LevelWarning:
		return "Warning"
	case dispatch.LevelError:
		return "Action failed"
	}
	return "Success"
}

// Stop flushes queued notifications and waits for pending emails.
func (s *NotificationServiceImpl) Stop() {
	s.once.Do(func() {
		close(s.stopCh)
		s.wg.Wait()
		s.mailWG.Wait()
		slog.Info("Notification service stopped")
	})
}

var (
	_ notification.Service = (*NotificationServiceImpl)(nil)
	_ dispatch.Notifier    = (*NotificationServiceImpl)(nil)
)
