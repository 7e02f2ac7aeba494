package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
)

type timesheetRepositoryImpl struct {
	sheets *collection[timesheet.Timesheet]
}

func cloneTimesheet(t timesheet.Timesheet) timesheet.Timesheet {
	t.Project = clonePtr(t.Project)
	t.Department = clonePtr(t.Department)
	t.SubmittedDate = cloneTime(t.SubmittedDate)
	t.ApprovedBy = clonePtr(t.ApprovedBy)
	t.ApprovedDate = cloneTime(t.ApprovedDate)
	t.RejectionReason = clonePtr(t.RejectionReason)
	t.Notes = clonePtr(t.Notes)
	t.DeletedAt = cloneTime(t.DeletedAt)
	t.Entries = cloneSlice(t.Entries)
	for i := range t.Entries {
		t.Entries[i].Project = clonePtr(t.Entries[i].Project)
		t.Entries[i].AdminNotes = clonePtr(t.Entries[i].AdminNotes)
	}
	return t
}

// List implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) List(ctx context.Context) ([]timesheet.Timesheet, error) {
	return r.sheets.list(nil), nil
}

// ListByUser implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]timesheet.Timesheet, error) {
	return r.sheets.list(func(t timesheet.Timesheet) bool { return t.UserID == userID }), nil
}

// GetByID implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) GetByID(ctx context.Context, id string) (timesheet.Timesheet, error) {
	t, ok := r.sheets.get(id)
	if !ok {
		return timesheet.Timesheet{}, fmt.Errorf("timesheet %s: %w", id, timesheet.ErrTimesheetNotFound)
	}
	return t, nil
}

// Create implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Create(ctx context.Context, t timesheet.Timesheet) (timesheet.Timesheet, error) {
	if !r.sheets.insert(t) {
		return timesheet.Timesheet{}, fmt.Errorf("timesheet id %s already exists", t.ID)
	}
	return cloneTimesheet(t), nil
}

// Update implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) Update(ctx context.Context, t timesheet.Timesheet) error {
	if !r.sheets.replace(t) {
		return fmt.Errorf("timesheet %s: %w", t.ID, timesheet.ErrTimesheetNotFound)
	}
	return nil
}

// SoftDelete implements timesheet.TimesheetRepository.
func (r *timesheetRepositoryImpl) SoftDelete(ctx context.Context, id string, at time.Time) error {
	ok := r.sheets.mutate(id, func(t *timesheet.Timesheet) {
		t.DeletedAt = &at
		t.UpdatedAt = at
	})
	if !ok {
		return fmt.Errorf("timesheet %s: %w", id, timesheet.ErrTimesheetNotFound)
	}
	return nil
}

func NewTimesheetRepository(seed []timesheet.Timesheet) timesheet.TimesheetRepository {
	return &timesheetRepositoryImpl{
		sheets: newCollection(seed,
			func(t timesheet.Timesheet) string { return t.ID },
			func(t timesheet.Timesheet) bool { return t.IsDeleted() },
			cloneTimesheet,
		),
	}
}
