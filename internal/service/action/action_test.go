package action

import (
	"context"
	"sync"
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	leaveService "github.com/cmlabs-hris/hris-admin-go/internal/service/leave"
	timesheetService "github.com/cmlabs-hris/hris-admin-go/internal/service/timesheet"
	userService "github.com/cmlabs-hris/hris-admin-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// queueRecorder captures queued notifications.
type queueRecorder struct {
	notification.Service
	mu   sync.Mutex
	reqs []notification.CreateNotificationRequest
}

func (r *queueRecorder) QueueNotification(ctx context.Context, req notification.CreateNotificationRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reqs = append(r.reqs, req)
	return nil
}

type env struct {
	dispatcher *dispatch.Dispatcher
	users      user.UserService
	timesheets timesheet.TimesheetService
	leaves     leave.LeaveService
	queue      *queueRecorder
}

func newEnv(t *testing.T) env {
	t.Helper()
	userRepo := memory.NewUserRepository(fixtures.Users())
	tsRepo := memory.NewTimesheetRepository(fixtures.Timesheets())
	leaveRepo := memory.NewLeaveRequestRepository(fixtures.LeaveRequests())

	e := env{
		dispatcher: dispatch.New(dispatch.Config{}, nil),
		users:      userService.NewUserService(userRepo, tsRepo, leaveRepo),
		timesheets: timesheetService.NewTimesheetService(tsRepo, userRepo, 0),
		leaves:     leaveService.NewLeaveService(leaveRepo, userRepo),
		queue:      &queueRecorder{},
	}
	require.NoError(t, Register(e.dispatcher, e.users, e.timesheets, e.leaves, e.queue))
	return e
}

var admin = dispatch.Actor{ID: "USR-001", Name: "John Doe", Role: "admin"}

func (e env) run(t *testing.T, cmd dispatch.Command) dispatch.Result {
	t.Helper()
	ctx := context.Background()
	p, err := e.dispatcher.Request(ctx, cmd)
	require.NoError(t, err)
	res, err := e.dispatcher.Confirm(ctx, p.Token)
	require.NoError(t, err)
	return res
}

func TestRegister_Twice(t *testing.T) {
	e := newEnv(t)
	err := Register(e.dispatcher, e.users, e.timesheets, e.leaves, nil)
	assert.ErrorIs(t, err, dispatch.ErrDuplicateRegistration)
}

func TestLeaveApprove_SetsApproverAndNotifiesOwner(t *testing.T) {
	e := newEnv(t)

	res := e.run(t, dispatch.Command{
		Kind:       dispatch.KindApprove,
		EntityType: EntityLeave,
		EntityIDs:  []string{"LV-002"},
		Payload:    dispatch.Payload{Actor: admin, Note: "Get well soon"},
	})

	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, dispatch.LevelSuccess, res.Level)
	assert.Equal(t, "Leave request LV-002 approved successfully", res.Message)

	l, err := e.leaves.Get(context.Background(), "LV-002")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, l.Status)
	require.NotNil(t, l.ApprovedBy)
	assert.Equal(t, "John Doe", *l.ApprovedBy)

	require.Len(t, e.queue.reqs, 1)
	n := e.queue.reqs[0]
	assert.Equal(t, "USR-002", n.RecipientID)
	assert.Equal(t, "jane@company.com", n.RecipientEmail)
	assert.Equal(t, notification.TypeLeaveApproved, n.Type)
	assert.Equal(t, "Get well soon", n.Note)
}

func TestLeaveBulkApprove_IndependentItems(t *testing.T) {
	e := newEnv(t)

	// LV-001 is already approved; LV-002 and LV-005 are pending
	res := e.run(t, dispatch.Command{
		Kind:       dispatch.KindApprove,
		EntityType: EntityLeave,
		EntityIDs:  []string{"LV-001", "LV-002", "LV-005"},
		Payload:    dispatch.Payload{Actor: admin},
	})

	assert.Equal(t, 2, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, dispatch.LevelWarning, res.Level)
	assert.ErrorIs(t, res.Outcomes[0].Err, dispatch.ErrInvalidTransition)
	assert.ErrorIs(t, res.Outcomes[0].Err, leave.ErrLeaveRequestAlreadyProcessed)

	for _, id := range []string{"LV-002", "LV-005"} {
		l, err := e.leaves.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, l.Status, id)
	}
}

func TestLeaveReject_RequiresReason(t *testing.T) {
	e := newEnv(t)

	_, err := e.dispatcher.Request(context.Background(), dispatch.Command{
		Kind:       dispatch.KindReject,
		EntityType: EntityLeave,
		EntityIDs:  []string{"LV-002"},
		Payload:    dispatch.Payload{Actor: admin, Reason: "   "},
	})
	assert.ErrorIs(t, err, dispatch.ErrReasonRequired)

	l, err := e.leaves.Get(context.Background(), "LV-002")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, l.Status)
}

func TestLeaveReject_StoresReason(t *testing.T) {
	e := newEnv(t)

	e.run(t, dispatch.Command{
		Kind:       dispatch.KindReject,
		EntityType: EntityLeave,
		EntityIDs:  []string{"LV-005"},
		Payload:    dispatch.Payload{Actor: admin, Reason: "Team is short-staffed"},
	})

	l, err := e.leaves.Get(context.Background(), "LV-005")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusRejected, l.Status)
	require.NotNil(t, l.Notes)
	assert.Equal(t, "Team is short-staffed", *l.Notes)
	require.Len(t, e.queue.reqs, 1)
	assert.Equal(t, notification.TypeLeaveRejected, e.queue.reqs[0].Type)
}

func TestRequest_UnknownIDIsNotFound(t *testing.T) {
	e := newEnv(t)

	_, err := e.dispatcher.Request(context.Background(), dispatch.Command{
		Kind:       dispatch.KindDelete,
		EntityType: EntityUser,
		EntityIDs:  []string{"USR-999"},
		Payload:    dispatch.Payload{Actor: admin},
	})
	assert.ErrorIs(t, err, dispatch.ErrNotFound)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestRequest_SingleInvalidTransitionFailsEarly(t *testing.T) {
	e := newEnv(t)

	_, err := e.dispatcher.Request(context.Background(), dispatch.Command{
		Kind:       dispatch.KindApprove,
		EntityType: EntityTimesheet,
		EntityIDs:  []string{"TS-001"},
		Payload:    dispatch.Payload{Actor: admin},
	})
	assert.ErrorIs(t, err, dispatch.ErrInvalidTransition)
}

func TestTimesheetRejectThenResubmit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.run(t, dispatch.Command{
		Kind:       dispatch.KindReject,
		EntityType: EntityTimesheet,
		EntityIDs:  []string{"TS-002"},
		Payload:    dispatch.Payload{Actor: admin, Reason: "Missing Friday entries"},
	})

	ts, err := e.timesheets.Get(ctx, "TS-002")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusRejected, ts.Status)
	require.NotNil(t, ts.RejectionReason)
	assert.Equal(t, "Missing Friday entries", *ts.RejectionReason)

	e.run(t, dispatch.Command{
		Kind:       dispatch.KindResubmit,
		EntityType: EntityTimesheet,
		EntityIDs:  []string{"TS-002"},
		Payload:    dispatch.Payload{Actor: dispatch.Actor{ID: "USR-002", Name: "Jane Smith"}},
	})

	ts, err = e.timesheets.Get(ctx, "TS-002")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusDraft, ts.Status)
	assert.Nil(t, ts.RejectionReason)
	require.Len(t, e.queue.reqs, 1, "returning to draft notifies nobody")

	res := e.run(t, dispatch.Command{
		Kind:       dispatch.KindSubmit,
		EntityType: EntityTimesheet,
		EntityIDs:  []string{"TS-002"},
		Payload:    dispatch.Payload{Actor: dispatch.Actor{ID: "USR-002", Name: "Jane Smith"}},
	})
	assert.Equal(t, "Timesheet TS-002 submitted successfully", res.Message)

	ts, err = e.timesheets.Get(ctx, "TS-002")
	require.NoError(t, err)
	assert.Equal(t, timesheet.StatusSubmitted, ts.Status)

	require.Len(t, e.queue.reqs, 2)
	assert.Equal(t, notification.TypeTimesheetRejected, e.queue.reqs[0].Type)
	assert.Equal(t, notification.TypeTimesheetSubmitted, e.queue.reqs[1].Type)
}

func TestUserDelete_SoftDeletes(t *testing.T) {
	e := newEnv(t)

	res := e.run(t, dispatch.Command{
		Kind:       dispatch.KindDelete,
		EntityType: EntityUser,
		EntityIDs:  []string{"USR-005"},
		Payload:    dispatch.Payload{Actor: admin},
	})
	assert.Equal(t, "User USR-005 deleted successfully", res.Message)

	_, err := e.users.Get(context.Background(), "USR-005")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.Empty(t, e.queue.reqs)
}

func TestUnsupportedKind(t *testing.T) {
	e := newEnv(t)

	_, err := e.dispatcher.Request(context.Background(), dispatch.Command{
		Kind:       dispatch.KindApprove,
		EntityType: EntityUser,
		EntityIDs:  []string{"USR-002"},
		Payload:    dispatch.Payload{Actor: admin},
	})
	assert.ErrorIs(t, err, dispatch.ErrUnsupportedKind)
}

func TestAuthorize(t *testing.T) {
	assert.True(t, Authorize(user.RoleAdmin, EntityUser, dispatch.KindDelete))
	assert.False(t, Authorize(user.RoleManager, EntityUser, dispatch.KindDelete))
	assert.True(t, Authorize(user.RoleSupervisor, EntityLeave, dispatch.KindApprove))
	assert.False(t, Authorize(user.RoleSupervisor, EntityLeave, dispatch.KindDelete))
	assert.False(t, Authorize(user.RoleAuditor, EntityTimesheet, dispatch.KindReject))
	assert.True(t, Authorize(user.RoleUser, EntityTimesheet, dispatch.KindSubmit))
	assert.True(t, Authorize(user.RoleUser, "invoice", dispatch.KindApprove))
}
