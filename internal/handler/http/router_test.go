package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-admin-go/internal/domain/settings"
	"github.com/cmlabs-hris/hris-admin-go/internal/fixtures"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/dispatch"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-admin-go/internal/pkg/storage"
	"github.com/cmlabs-hris/hris-admin-go/internal/repository/memory"
	"github.com/cmlabs-hris/hris-admin-go/internal/service/action"
	dashboardService "github.com/cmlabs-hris/hris-admin-go/internal/service/dashboard"
	exportService "github.com/cmlabs-hris/hris-admin-go/internal/service/export"
	leaveService "github.com/cmlabs-hris/hris-admin-go/internal/service/leave"
	notificationService "github.com/cmlabs-hris/hris-admin-go/internal/service/notification"
	reportService "github.com/cmlabs-hris/hris-admin-go/internal/service/report"
	timesheetService "github.com/cmlabs-hris/hris-admin-go/internal/service/timesheet"
	userService "github.com/cmlabs-hris/hris-admin-go/internal/service/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

type testServer struct {
	handler http.Handler
	jwt     *jwt.JWTService
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	userRepo := memory.NewUserRepository(fixtures.Users())
	tsRepo := memory.NewTimesheetRepository(fixtures.Timesheets())
	leaveRepo := memory.NewLeaveRequestRepository(fixtures.LeaveRequests())

	users := userService.NewUserService(userRepo, tsRepo, leaveRepo)
	timesheets := timesheetService.NewTimesheetService(tsRepo, userRepo, 0)
	leaves := leaveService.NewLeaveService(leaveRepo, userRepo)
	reports := reportService.NewReportService(userRepo, tsRepo)

	store, err := storage.NewLocalStorage(t.TempDir(), "http://localhost:8080/exports")
	require.NoError(t, err)
	exports := exportService.NewExportService(users, timesheets, leaves, reports, store)

	notifications := notificationService.NewNotificationService(memory.NewNotificationRepository(), sse.NewHub(), nil, notificationService.Config{
		FlushInterval: 10 * time.Millisecond,
	})
	t.Cleanup(notifications.Stop)

	dispatcher := dispatch.New(dispatch.Config{}, notifications)
	require.NoError(t, action.Register(dispatcher, users, timesheets, leaves, notifications))

	jwtService, err := jwt.NewJWTService(handlerTestSecret, "1h", 0)
	require.NoError(t, err)

	router := NewRouter(RouterConfig{
		Env:            "test",
		LogLevel:       slog.LevelError,
		AllowedOrigins: []string{"http://localhost:3000"},
	}, jwtService, Handlers{
		Dashboard:    NewDashboardHandler(dashboardService.NewDashboardService(userRepo, tsRepo, leaveRepo)),
		User:         NewUserHandler(users, exports, 10),
		Timesheet:    NewTimesheetHandler(timesheets, exports, 10),
		Leave:        NewLeaveHandler(leaves, exports, 10),
		Report:       NewReportHandler(reports, exports, 10),
		Action:       NewActionHandler(dispatcher),
		Notification: NewNotificationHandler(notifications, jwtService),
		ExportFile:   NewExportFileHandler(store),
		Settings:     NewSettingsHandler(settings.Default()),
	})

	return testServer{handler: router, jwt: jwtService}
}

func (s testServer) token(t *testing.T, id string) string {
	t.Helper()
	for _, u := range fixtures.Users() {
		if u.ID == id {
			token, _, err := s.jwt.GenerateAccessToken(u)
			require.NoError(t, err)
			return token
		}
	}
	t.Fatalf("no fixture user %s", id)
	return ""
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
	Meta *struct {
		TotalItems int `json:"total_items"`
		TotalPages int `json:"total_pages"`
	} `json:"meta"`
}

func (s testServer) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec.Code, env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/leaves", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.False(t, env.Success)
}

func TestRouter_ListLeavesFiltersAndCounts(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/leaves?status=pending", s.token(t, "USR-001"), nil)
	require.Equal(t, http.StatusOK, code)

	var data struct {
		Stats struct {
			Total   int `json:"total"`
			Pending int `json:"pending"`
		} `json:"stats"`
		Keys []string `json:"keys"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 3, data.Stats.Total)
	assert.Equal(t, 3, data.Stats.Pending)
	assert.Len(t, data.Keys, 3)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 3, env.Meta.TotalItems)
}

func TestRouter_MalformedPage(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/users?page=abc", s.token(t, "USR-001"), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "page")
}

func TestRouter_PermissionPerRoute(t *testing.T) {
	s := newTestServer(t)

	// plain users cannot browse the user directory
	code, _ := s.do(t, http.MethodGet, "/api/v1/users", s.token(t, "USR-003"), nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/dashboard", s.token(t, "USR-003"), nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_Settings(t *testing.T) {
	s := newTestServer(t)

	code, env := s.do(t, http.MethodGet, "/api/v1/settings", s.token(t, "USR-003"), nil)
	require.Equal(t, http.StatusOK, code)

	var got settings.Settings
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, settings.Default(), got)

	code, _ = s.do(t, http.MethodGet, "/api/v1/settings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestRouter_ActionFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "USR-001")

	code, env := s.do(t, http.MethodPost, "/api/v1/actions", admin, map[string]any{
		"kind":        "approve",
		"entity_type": "leave",
		"entity_ids":  []string{"LV-002"},
	})
	require.Equal(t, http.StatusOK, code)

	var pending dispatch.Pending
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	require.NotEmpty(t, pending.Token)
	assert.Equal(t, "John Doe", pending.Command.Payload.Actor.Name)

	// another user cannot confirm someone else's prompt
	code, _ = s.do(t, http.MethodPost, "/api/v1/actions/"+pending.Token+"/confirm", s.token(t, "USR-002"), nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(t, http.MethodPost, "/api/v1/actions/"+pending.Token+"/confirm", admin, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Leave request LV-002 approved successfully", env.Message)

	// tokens are single use
	code, _ = s.do(t, http.MethodPost, "/api/v1/actions/"+pending.Token+"/confirm", admin, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, env = s.do(t, http.MethodGet, "/api/v1/leaves/LV-002", admin, nil)
	require.Equal(t, http.StatusOK, code)
	var l struct {
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &l))
	assert.Equal(t, "approved", l.Status)
}

func TestRouter_ActionCancel(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "USR-001")

	_, env := s.do(t, http.MethodPost, "/api/v1/actions", admin, map[string]any{
		"kind":        "delete",
		"entity_type": "user",
		"entity_ids":  []string{"USR-005"},
	})
	var pending dispatch.Pending
	require.NoError(t, json.Unmarshal(env.Data, &pending))
	assert.True(t, pending.Danger)

	code, _ := s.do(t, http.MethodDelete, "/api/v1/actions/"+pending.Token, admin, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/users/USR-005", admin, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_ActionErrors(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name   string
		userID string
		body   map[string]any
		status int
		code   string
	}{
		{
			name:   "auditor cannot approve",
			userID: "USR-005",
			body:   map[string]any{"kind": "approve", "entity_type": "leave", "entity_ids": []string{"LV-002"}},
			status: http.StatusForbidden,
			code:   "FORBIDDEN",
		},
		{
			name:   "reject needs a reason",
			userID: "USR-001",
			body:   map[string]any{"kind": "reject", "entity_type": "leave", "entity_ids": []string{"LV-002"}},
			status: http.StatusUnprocessableEntity,
			code:   "VALIDATION_ERROR",
		},
		{
			name:   "empty selection warns",
			userID: "USR-001",
			body:   map[string]any{"kind": "approve", "entity_type": "leave", "entity_ids": []string{}},
			status: http.StatusBadRequest,
			code:   "WARNING",
		},
		{
			name:   "unknown id",
			userID: "USR-001",
			body:   map[string]any{"kind": "approve", "entity_type": "leave", "entity_ids": []string{"LV-999"}},
			status: http.StatusNotFound,
			code:   "NOT_FOUND",
		},
		{
			name:   "unknown entity",
			userID: "USR-001",
			body:   map[string]any{"kind": "approve", "entity_type": "invoice", "entity_ids": []string{"INV-1"}},
			status: http.StatusBadRequest,
			code:   "BAD_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := s.do(t, http.MethodPost, "/api/v1/actions", s.token(t, tt.userID), tt.body)
			assert.Equal(t, tt.status, code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}
}

func TestRouter_ExportDownload(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "USR-001")

	code, env := s.do(t, http.MethodGet, "/api/v1/users/export?role=admin", admin, nil)
	require.Equal(t, http.StatusOK, code)

	var file struct {
		Key  string `json:"key"`
		Rows int    `json:"rows"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &file))
	assert.Equal(t, 1, file.Rows)
	link := "/exports/" + file.Key

	t.Run("anonymous", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, link, "", nil)
		assert.Equal(t, http.StatusUnauthorized, code)
	})

	t.Run("role without user.view", func(t *testing.T) {
		code, env := s.do(t, http.MethodGet, link, s.token(t, "USR-003"), nil)
		assert.Equal(t, http.StatusForbidden, code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
	})

	t.Run("directory is not listed", func(t *testing.T) {
		for _, p := range []string{"/exports/", "/exports/exports/", "/exports/exports/notes.txt"} {
			code, _ := s.do(t, http.MethodGet, p, admin, nil)
			assert.Equal(t, http.StatusNotFound, code, p)
		}
	})

	t.Run("unknown workbook", func(t *testing.T) {
		code, _ := s.do(t, http.MethodGet, "/exports/exports/users-missing.xlsx", admin, nil)
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("authorised", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, link, nil)
		req.Header.Set("Authorization", "Bearer "+s.token(t, "USR-005"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.NotZero(t, rec.Body.Len())
	})
}

func TestRouter_StreamRejectsAccessToken(t *testing.T) {
	s := newTestServer(t)

	// an access token is not an SSE token
	code, _ := s.do(t, http.MethodGet, "/api/v1/notifications/stream?token="+s.token(t, "USR-001"), "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}
