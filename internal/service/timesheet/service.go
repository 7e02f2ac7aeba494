package timesheet

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/table"
	"github.com/google/uuid"
)

type TimesheetServiceImpl struct {
	timesheet.TimesheetRepository
	users       user.UserRepository
	targetHours float64
	now         func() time.Time
}

// NewTimesheetService creates timesheets against targetHours unless the
// request sets its own target. A non-positive targetHours means
// timesheet.DefaultTargetHours.
func NewTimesheetService(timesheetRepo timesheet.TimesheetRepository, userRepo user.UserRepository, targetHours float64) timesheet.TimesheetService {
	if targetHours <= 0 {
		targetHours = timesheet.DefaultTargetHours
	}
	return &TimesheetServiceImpl{
		TimesheetRepository: timesheetRepo,
		users:               userRepo,
		targetHours:         targetHours,
		now:                 time.Now,
	}
}

// List implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) List(ctx context.Context, f timesheet.ListFilter) (timesheet.ListResponse, error) {
	if err := f.Validate(); err != nil {
		return timesheet.ListResponse{}, err
	}
	sheets, err := s.TimesheetRepository.List(ctx)
	if err != nil {
		return timesheet.ListResponse{}, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return query.Run(sheets, timesheet.Schema, f.Criteria(), timesheet.Table, f.List, timesheet.NewStats)
}

// Filtered implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Filtered(ctx context.Context, f timesheet.ListFilter) ([]timesheet.Timesheet, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	sheets, err := s.TimesheetRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	return query.Rows(sheets, timesheet.Schema, f.Criteria(), timesheet.Table, f.List)
}

// Pending implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Pending(ctx context.Context) ([]timesheet.PendingApproval, error) {
	sheets, err := s.TimesheetRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}

	pending := []timesheet.PendingApproval{}
	for _, t := range sheets {
		if t.Status == timesheet.StatusSubmitted {
			pending = append(pending, timesheet.NewPendingApproval(t))
		}
	}
	return pending, nil
}

// Get implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Get(ctx context.Context, id string) (timesheet.Timesheet, error) {
	return s.TimesheetRepository.GetByID(ctx, id)
}

// Entries implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Entries(ctx context.Context, id string, req table.Request) (table.View, error) {
	t, err := s.TimesheetRepository.GetByID(ctx, id)
	if err != nil {
		return table.View{}, err
	}
	return timesheet.EntryTable.Render(t.Entries, req)
}

// Create implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Create(ctx context.Context, req timesheet.CreateTimesheetRequest) (timesheet.Timesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Timesheet{}, err
	}

	owner, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to generate timesheet id: %w", err)
	}

	now := s.now()
	start, end := req.Week()
	t := timesheet.Timesheet{
		ID:          id.String(),
		UserID:      owner.ID,
		UserName:    owner.Name,
		UserEmail:   owner.Email,
		WeekStart:   start,
		WeekEnd:     end,
		TargetHours: s.targetHours,
		Project:     req.Project,
		Department:  req.Department,
		Status:      timesheet.StatusDraft,
		Notes:       req.Notes,
		Entries:     []timesheet.TimeEntry{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Department == nil && owner.Department != "" {
		dept := strings.ToUpper(owner.Department[:1]) + owner.Department[1:]
		t.Department = &dept
	}
	if req.TargetHours != nil {
		t.TargetHours = *req.TargetHours
	}

	for _, e := range req.Entries {
		entryID, err := uuid.NewV7()
		if err != nil {
			return timesheet.Timesheet{}, fmt.Errorf("failed to generate entry id: %w", err)
		}
		day, _ := time.Parse(query.DateLayout, e.Date)
		t.Entries = append(t.Entries, timesheet.TimeEntry{
			ID:          entryID.String(),
			TimesheetID: t.ID,
			UserID:      owner.ID,
			Date:        day,
			Hours:       e.Hours,
			Type:        timesheet.EntryType(e.Type),
			Project:     e.Project,
			Description: e.Description,
			Status:      timesheet.EntryPending,
		})
	}

	switch {
	case len(t.Entries) > 0:
		t.TotalHours = timesheet.SumEntries(t.Entries)
	case req.TotalHours != nil:
		t.TotalHours = *req.TotalHours
	}

	if req.Submit {
		t.Status = timesheet.StatusSubmitted
		t.SubmittedDate = &now
	}

	created, err := s.TimesheetRepository.Create(ctx, t)
	if err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to create timesheet: %w", err)
	}

	slog.Info("Timesheet created", "timesheet_id", created.ID, "user_id", created.UserID, "status", created.Status)
	return created, nil
}

// Transition implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Transition(ctx context.Context, req timesheet.TransitionRequest) (timesheet.Timesheet, error) {
	if err := req.Validate(); err != nil {
		return timesheet.Timesheet{}, err
	}

	t, err := s.TimesheetRepository.GetByID(ctx, req.ID)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	if req.Action == timesheet.ActionDelete {
		if err := s.Delete(ctx, t.ID); err != nil {
			return timesheet.Timesheet{}, err
		}
		return t, nil
	}

	next, err := timesheet.Next(t.Status, req.Action)
	if err != nil {
		return timesheet.Timesheet{}, err
	}

	now := s.now()
	t.Status = next
	t.UpdatedAt = now

	switch req.Action {
	case timesheet.ActionSubmit:
		t.SubmittedDate = &now
		t.ApprovedBy = nil
		t.ApprovedDate = nil
		setEntryStatus(t.Entries, timesheet.EntryPending, nil)
	case timesheet.ActionResubmit:
		// back to draft for editing; the next submit stamps a new date
		t.SubmittedDate = nil
		t.RejectionReason = nil
		setEntryStatus(t.Entries, timesheet.EntryPending, nil)
	case timesheet.ActionApprove:
		actor := req.Actor
		t.ApprovedBy = &actor
		t.ApprovedDate = &now
		var note *string
		if strings.TrimSpace(req.Note) != "" {
			n := req.Note
			t.Notes = &n
			note = &n
		}
		setEntryStatus(t.Entries, timesheet.EntryApproved, note)
	case timesheet.ActionReject:
		reason := req.Reason
		t.RejectionReason = &reason
		setEntryStatus(t.Entries, timesheet.EntryRejected, &reason)
	}

	if err := s.TimesheetRepository.Update(ctx, t); err != nil {
		return timesheet.Timesheet{}, fmt.Errorf("failed to update timesheet: %w", err)
	}

	slog.Info("Timesheet transitioned", "timesheet_id", t.ID, "action", req.Action, "status", t.Status, "actor", req.Actor)
	return t, nil
}

// Delete implements timesheet.TimesheetService.
func (s *TimesheetServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.TimesheetRepository.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	slog.Info("Timesheet deleted", "timesheet_id", id)
	return nil
}

func setEntryStatus(entries []timesheet.TimeEntry, status timesheet.EntryStatus, notes *string) {
	for i := range entries {
		entries[i].Status = status
		if notes != nil {
			n := *notes
			entries[i].AdminNotes = &n
		}
	}
}
