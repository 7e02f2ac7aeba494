package user

import (
	"context"
	"testing"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/validator"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() user.UserService {
	return NewUserService(
		memory.NewUserRepository(fixtures.Users()),
		memory.NewTimesheetRepository(fixtures.Timesheets()),
		memory.NewLeaveRequestRepository(fixtures.LeaveRequests()),
	)
}

func TestList_FiltersAndCounts(t *testing.T) {
	svc := newTestService()

	res, err := svc.List(context.Background(), user.ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, user.Stats{Total: 5, Active: 3, Inactive: 1, Pending: 1}, res.Stats)
	assert.Equal(t, "Total 5 users", res.Table.Meta.TotalLabel)

	f := user.ListFilter{Status: "active"}
	f.Search = "JO"
	res, err = svc.List(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stats.Total)
	assert.ElementsMatch(t, []string{"USR-001", "USR-003"}, res.Keys)
}

func TestCreate_HashesPassword(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, user.CreateUserRequest{
		Name:       "Dana Lee",
		Email:      "dana@company.com",
		Role:       "supervisor",
		Department: "engineering",
		Password:   "s3cret-pass",
	})
	require.NoError(t, err)

	assert.Equal(t, user.StatusActive, created.Status)
	require.NotNil(t, created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*created.PasswordHash), []byte("s3cret-pass")))

	_, err = svc.Create(ctx, user.CreateUserRequest{
		Name: "Dana Again", Email: "dana@company.com", Role: "user", Department: "sales",
	})
	assert.ErrorIs(t, err, user.ErrUserEmailExists)
}

func TestCreate_Validation(t *testing.T) {
	svc := newTestService()

	_, err := svc.Create(context.Background(), user.CreateUserRequest{Email: "not-an-email", Role: "owner"})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)

	fields := make([]string, len(verrs))
	for i, e := range verrs {
		fields[i] = e.Field
	}
	assert.ElementsMatch(t, []string{"name", "email", "role", "department"}, fields)
}

func TestUpdate_AppliesSetFields(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()
	status := "suspended"

	updated, err := svc.Update(ctx, user.UpdateUserRequest{ID: "USR-003", Status: &status})
	require.NoError(t, err)
	assert.Equal(t, user.StatusSuspended, updated.Status)
	assert.Equal(t, "Bob Johnson", updated.Name)

	got, err := svc.Get(ctx, "USR-003")
	require.NoError(t, err)
	assert.Equal(t, user.StatusSuspended, got.Status)
}

func TestStats(t *testing.T) {
	svc := newTestService()

	stats, err := svc.Stats(context.Background(), "USR-001")
	require.NoError(t, err)
	assert.Equal(t, "42", stats.TotalHours.String())
	assert.Equal(t, "42", stats.WeeklyAverage.String())
	assert.Equal(t, "100", stats.Compliance.String())
	assert.Equal(t, 1, stats.Projects)
	assert.Equal(t, 1, stats.TimesheetCount)
	assert.Equal(t, 1, stats.PendingLeaves)

	stats, err = svc.Stats(context.Background(), "USR-004")
	require.NoError(t, err)
	assert.True(t, stats.TotalHours.IsZero())
	assert.Zero(t, stats.TimesheetCount)

	_, err = svc.Stats(context.Background(), "USR-404")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, "USR-005"))
	_, err := svc.Get(ctx, "USR-005")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, "USR-005"), user.ErrUserNotFound)
}
