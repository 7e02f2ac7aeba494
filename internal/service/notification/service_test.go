package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/email"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent map[string]email.Decision
}

func (m *recordingMailer) SendDecision(to string, d email.Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sent == nil {
		m.sent = make(map[string]email.Decision)
	}
	m.sent[to] = d
	return nil
}

func newTestService(t *testing.T, mailer email.EmailService) (*NotificationServiceImpl, notification.Repository, *sse.Hub) {
	t.Helper()
	repo := memory.NewNotificationRepository()
	hub := sse.NewHub()
	svc := NewNotificationService(repo, hub, mailer, Config{
		BatchSize:     10,
		FlushInterval: 10 * time.Millisecond,
		WorkerCount:   1,
		QueueSize:     10,
	})
	t.Cleanup(svc.Stop)
	return svc, repo, hub
}

func TestQueueNotification_PersistsAndPublishes(t *testing.T) {
	svc, _, _ := newTestService(t, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, cleanup := svc.Subscribe(ctx, "USR-002")
	defer cleanup()

	err := svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID: "USR-002",
		Type:        notification.TypeLeaveApproved,
		Title:       "Leave approved",
		Message:     "Your leave request LV-002 was approved",
		EntityType:  "leave",
		EntityIDs:   []string{"LV-002"},
	})
	require.NoError(t, err)

	select {
	case ev := <-events:
		assert.Equal(t, "notification", ev.Event)
		assert.Equal(t, notification.TypeLeaveApproved, ev.Data.Type)
		assert.Equal(t, notification.LevelSuccess, ev.Data.Level)
		assert.Equal(t, []string{"LV-002"}, ev.Data.EntityIDs)
	case <-time.After(time.Second):
		t.Fatal("no event published")
	}

	list, err := svc.GetNotifications(ctx, "USR-002", 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)
	assert.Equal(t, 1, list.UnreadCount)

	require.NoError(t, svc.MarkAllAsRead(ctx, "USR-002"))
	count, err := svc.GetUnreadCount(ctx, "USR-002")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestQueueNotification_SkipsMissingRecipient(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)

	require.NoError(t, svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
		Type: notification.TypeActionResult,
	}))
	svc.Stop()

	_, total, err := repo.GetByUserID(context.Background(), "", 1, 20, false)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestStop_FlushesQueue(t *testing.T) {
	repo := memory.NewNotificationRepository()
	svc := NewNotificationService(repo, sse.NewHub(), nil, Config{
		BatchSize:     100,
		FlushInterval: time.Hour,
		WorkerCount:   1,
		QueueSize:     10,
	})

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.QueueNotification(context.Background(), notification.CreateNotificationRequest{
			RecipientID: "USR-001",
			Type:        notification.TypeActionResult,
		}))
	}
	svc.Stop()

	_, total, err := repo.GetByUserID(context.Background(), "USR-001", 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
}

func TestQueueNotification_EmailsDecisions(t *testing.T) {
	mailer := &recordingMailer{}
	svc, _, _ := newTestService(t, mailer)
	ctx := context.Background()

	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    "USR-002",
		RecipientEmail: "jane@company.com",
		RecipientName:  "Jane Smith",
		ActorName:      "Admin User",
		Note:           "Missing Friday entries",
		Type:           notification.TypeTimesheetRejected,
		EntityType:     "timesheet",
		EntityIDs:      []string{"TS-002"},
	}))
	require.NoError(t, svc.QueueNotification(ctx, notification.CreateNotificationRequest{
		RecipientID:    "USR-003",
		RecipientEmail: "bob@company.com",
		Type:           notification.TypeActionResult,
	}))
	svc.Stop()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	require.Len(t, mailer.sent, 1)
	d := mailer.sent["jane@company.com"]
	assert.Equal(t, "timesheet", d.Subject)
	assert.Equal(t, "TS-002", d.Reference)
	assert.Equal(t, "rejected", d.Outcome)
	assert.Equal(t, "Admin User", d.Actor)
}

func TestNotify_QueuesActionResultForActor(t *testing.T) {
	svc, repo, _ := newTestService(t, nil)

	result := dispatch.Result{
		Command: dispatch.Command{Kind: dispatch.KindApprove, EntityType: "leave", EntityIDs: []string{"LV-002", "LV-003"}},
		Outcomes: []dispatch.Outcome{
			{ID: "LV-002", OK: true},
			{ID: "LV-003", Error: "invalid state transition"},
		},
		Succeeded: 1,
		Failed:    1,
		Level:     dispatch.LevelWarning,
		Message:   "1 leave request approved, 1 failed",
	}
	svc.Notify(context.Background(), dispatch.Notice{
		Level:   result.Level,
		Message: result.Message,
		Actor:   dispatch.Actor{ID: "USR-001", Name: "Admin User"},
		Result:  &result,
	})
	svc.Stop()

	items, total, err := repo.GetByUserID(context.Background(), "USR-001", 1, 20, false)
	require.NoError(t, err)
	require.Equal(t, 1, total)
	n := items[0]
	assert.Equal(t, notification.TypeActionResult, n.Type)
	assert.Equal(t, notification.LevelWarning, n.Level)
	assert.Equal(t, "Warning", n.Title)
	assert.Equal(t, "leave", n.EntityType)
	assert.Equal(t, []string{"LV-002"}, n.EntityIDs)
}

func TestMarkAsRead_Validates(t *testing.T) {
	svc, _, _ := newTestService(t, nil)

	err := svc.MarkAsRead(context.Background(), "USR-001", notification.MarkAsReadRequest{})
	assert.Error(t, err)
}
