package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/google/uuid"
)

type notificationRepository struct {
	mu sync.RWMutex
	// newest last, per recipient
	byUser map[string][]*notification.Notification
	now    func() time.Time
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository() notification.Repository {
	return &notificationRepository{
		byUser: make(map[string][]*notification.Notification),
		now:    time.Now,
	}
}

func cloneNotification(n *notification.Notification) *notification.Notification {
	c := *n
	c.EntityIDs = slices.Clone(n.EntityIDs)
	c.ReadAt = cloneTime(n.ReadAt)
	return &c
}

// Create stores a notification, assigning an id when missing
func (r *notificationRepository) Create(ctx context.Context, n *notification.Notification) error {
	if n.RecipientID == "" {
		return fmt.Errorf("failed to create notification: recipient is required")
	}
	if n.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to create notification id: %w", err)
		}
		n.ID = id.String()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[n.RecipientID] = append(r.byUser[n.RecipientID], cloneNotification(n))
	return nil
}

// CreateBatch stores several notifications
func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []*notification.Notification) error {
	for _, n := range notifications {
		if err := r.Create(ctx, n); err != nil {
			return err
		}
	}
	return nil
}

// GetByUserID returns one page of a user's notifications, newest first,
// plus the total matching count
func (r *notificationRepository) GetByUserID(ctx context.Context, userID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.byUser[userID]
	matched := make([]*notification.Notification, 0, len(all))
	for i := len(all) - 1; i >= 0; i-- {
		if unreadOnly && all[i].IsRead {
			continue
		}
		matched = append(matched, all[i])
	}

	total := len(matched)
	start := (page - 1) * pageSize
	if start >= total {
		return []*notification.Notification{}, total, nil
	}
	end := min(start+pageSize, total)

	out := make([]*notification.Notification, 0, end-start)
	for _, n := range matched[start:end] {
		out = append(out, cloneNotification(n))
	}
	return out, total, nil
}

func (r *notificationRepository) GetUnreadCount(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, n := range r.byUser[userID] {
		if !n.IsRead {
			count++
		}
	}
	return count, nil
}

// MarkAsRead marks the given notifications of userID as read. Ids owned by
// other users are ignored.
func (r *notificationRepository) MarkAsRead(ctx context.Context, ids []string, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	found := 0
	for _, n := range r.byUser[userID] {
		if slices.Contains(ids, n.ID) {
			found++
			if !n.IsRead {
				n.IsRead = true
				n.ReadAt = &now
			}
		}
	}
	if found == 0 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for _, n := range r.byUser[userID] {
		if !n.IsRead {
			n.IsRead = true
			n.ReadAt = &now
		}
	}
	return nil
}
