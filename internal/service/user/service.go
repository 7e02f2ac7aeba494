package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/leave"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/hris-admin-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/query"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

type UserServiceImpl struct {
	user.UserRepository
	timesheets timesheet.TimesheetRepository
	leaves     leave.LeaveRequestRepository
	now        func() time.Time
}

func NewUserService(userRepo user.UserRepository, timesheetRepo timesheet.TimesheetRepository, leaveRepo leave.LeaveRequestRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepo,
		timesheets:     timesheetRepo,
		leaves:         leaveRepo,
		now:            time.Now,
	}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context, f user.ListFilter) (user.ListResponse, error) {
	if err := f.Validate(); err != nil {
		return user.ListResponse{}, err
	}
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return user.ListResponse{}, fmt.Errorf("failed to list users: %w", err)
	}
	return query.Run(users, user.Schema, f.Criteria(), user.Table, f.List, user.NewStats)
}

// Filtered implements user.UserService.
func (s *UserServiceImpl) Filtered(ctx context.Context, f user.ListFilter) ([]user.User, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	users, err := s.UserRepository.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return query.Rows(users, user.Schema, f.Criteria(), user.Table, f.List)
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.User, error) {
	return s.UserRepository.GetByID(ctx, id)
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to generate user id: %w", err)
	}

	now := s.now()
	newUser := user.User{
		ID:          id.String(),
		Name:        req.Name,
		Email:       req.Email,
		Role:        user.Role(req.Role),
		Department:  req.Department,
		Status:      user.Status(req.Status),
		JobTitle:    req.JobTitle,
		Phone:       req.Phone,
		StartDate:   req.ParseStartDate(),
		Manager:     req.Manager,
		Description: req.Description,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.HoursThisWeek != nil {
		newUser.HoursThisWeek = *req.HoursThisWeek
	}

	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return user.User{}, fmt.Errorf("failed to hash password: %w", err)
		}
		hashed := string(hash)
		newUser.PasswordHash = &hashed
	}

	created, err := s.UserRepository.Create(ctx, newUser)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("User created", "user_id", created.ID, "role", created.Role)
	return created, nil
}

// Update implements user.UserService.
func (s *UserServiceImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	if err := req.Validate(); err != nil {
		return user.User{}, err
	}

	existing, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.User{}, err
	}

	req.Apply(&existing)
	existing.UpdatedAt = s.now()

	if err := s.UserRepository.Update(ctx, existing); err != nil {
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return existing, nil
}

// Delete implements user.UserService.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) error {
	if err := s.UserRepository.SoftDelete(ctx, id, s.now()); err != nil {
		return err
	}
	slog.Info("User deleted", "user_id", id)
	return nil
}

// Stats implements user.UserService.
func (s *UserServiceImpl) Stats(ctx context.Context, id string) (user.DetailStats, error) {
	if _, err := s.UserRepository.GetByID(ctx, id); err != nil {
		return user.DetailStats{}, err
	}

	sheets, err := s.timesheets.ListByUser(ctx, id)
	if err != nil {
		return user.DetailStats{}, fmt.Errorf("failed to list timesheets: %w", err)
	}
	requests, err := s.leaves.ListByUser(ctx, id)
	if err != nil {
		return user.DetailStats{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	stats := user.DetailStats{
		UserID:         id,
		TotalHours:     decimal.Zero,
		WeeklyAverage:  decimal.Zero,
		Compliance:     decimal.Zero,
		TimesheetCount: len(sheets),
	}

	target := decimal.Zero
	projects := make(map[string]struct{})
	for _, t := range sheets {
		stats.TotalHours = stats.TotalHours.Add(decimal.NewFromFloat(t.TotalHours))
		target = target.Add(decimal.NewFromFloat(t.Target()))
		if t.Project != nil {
			projects[*t.Project] = struct{}{}
		}
		for _, e := range t.Entries {
			if e.Project != nil {
				projects[*e.Project] = struct{}{}
			}
		}
	}
	if len(sheets) > 0 {
		stats.WeeklyAverage = stats.TotalHours.Div(decimal.NewFromInt(int64(len(sheets)))).Round(1)
		stats.Compliance = timesheet.Compliance(stats.TotalHours, target)
	}
	stats.Projects = len(projects)

	for _, l := range requests {
		if l.IsPending() {
			stats.PendingLeaves++
		}
	}
	return stats, nil
}
