package admin_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"igcadmin/entity"
	"igcadmin/internal/http-server/handlers/admin"
)

type stubCore struct {
	loginToken string
	loginErr   error
	teams      []*entity.TeamRegistration
	listErr    error
	actionTeam *entity.TeamRegistration
	actionErr  error
	counts     *entity.TeamCounts
	countsErr  error
}

func (s *stubCore) Login(_ context.Context, _, _ string) (string, error) {
	return s.loginToken, s.loginErr
}

func (s *stubCore) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: "token", Value: token, Path: "/", MaxAge: 3600, HttpOnly: true}
}

func (s *stubCore) ClearCookie() *http.Cookie {
	return &http.Cookie{Name: "token", Value: "", Path: "/", MaxAge: -1, HttpOnly: true}
}

func (s *stubCore) ListTeams(_ context.Context) ([]*entity.TeamRegistration, error) {
	return s.teams, s.listErr
}

func (s *stubCore) AcceptTeam(_ context.Context, _, _ string) (*entity.TeamRegistration, error) {
	return s.actionTeam, s.actionErr
}

func (s *stubCore) RejectTeam(_ context.Context, _, _, _ string) (*entity.TeamRegistration, error) {
	return s.actionTeam, s.actionErr
}

func (s *stubCore) TeamCounts(_ context.Context) (*entity.TeamCounts, error) {
	return s.counts, s.countsErr
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	core := &stubCore{loginToken: "signed.jwt.token"}
	rec := httptest.NewRecorder()

	admin.Login(discard(), core)(rec, jsonRequest("POST", "/admin/login", `{"username":"admin1","password":"pw"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool   `json:"success"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "signed.jwt.token", body.Token)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Equal(t, "signed.jwt.token", cookies[0].Value)
	assert.Equal(t, 3600, cookies[0].MaxAge)
}

func TestLoginWrongPasswordClearsCookie(t *testing.T) {
	core := &stubCore{loginErr: fmt.Errorf("%w: password mismatch", entity.ErrInvalidCredential)}
	rec := httptest.NewRecorder()

	admin.Login(discard(), core)(rec, jsonRequest("POST", "/admin/login", `{"username":"admin1","password":"bad"}`))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Username or Password")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1, "failed login must clear the session cookie")
	assert.Empty(t, cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestLoginUnknownUser(t *testing.T) {
	core := &stubCore{loginErr: fmt.Errorf("%w: administrator nobody", entity.ErrNotFound)}
	rec := httptest.NewRecorder()

	admin.Login(discard(), core)(rec, jsonRequest("POST", "/admin/login", `{"username":"nobody","password":"pw"}`))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "User not found")
}

func TestLogoutClearsCookie(t *testing.T) {
	rec := httptest.NewRecorder()

	admin.Logout(discard(), &stubCore{})(rec, jsonRequest("POST", "/admin/logout", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Logout successful")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Less(t, cookies[0].MaxAge, 0)
}

func TestGetTeamsEmptyIs404(t *testing.T) {
	core := &stubCore{listErr: entity.ErrNoTeams}
	rec := httptest.NewRecorder()

	admin.GetTeams(discard(), core)(rec, jsonRequest("POST", "/admin/get-teams", ""))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "No teams found")
}

func TestGetTeamsReturnsArray(t *testing.T) {
	core := &stubCore{teams: []*entity.TeamRegistration{
		{TeamName: "Alpha", RegistrationNumber: "PCCOEIGC001"},
		{TeamName: "Beta", RegistrationNumber: "PCCOEIGC002"},
	}}
	rec := httptest.NewRecorder()

	admin.GetTeams(discard(), core)(rec, jsonRequest("POST", "/admin/get-teams", ""))

	require.Equal(t, http.StatusOK, rec.Code)

	var teams []entity.TeamRegistration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &teams))
	require.Len(t, teams, 2)
	assert.Equal(t, "Alpha", teams[0].TeamName)
}

func TestAcceptTeam(t *testing.T) {
	tests := []struct {
		name       string
		core       *stubCore
		body       string
		wantStatus int
		wantInBody string
	}{
		{
			name:       "success",
			core:       &stubCore{actionTeam: &entity.TeamRegistration{TeamName: "Alpha", RegistrationStatus: entity.StatusApproved}},
			body:       `{"teamName":"Alpha","actionedBy":"admin1"}`,
			wantStatus: http.StatusCreated,
			wantInBody: "Team approved and notification email sent",
		},
		{
			name:       "missing field",
			core:       &stubCore{actionErr: fmt.Errorf("%w: actionedBy is required", entity.ErrValidation)},
			body:       `{"teamName":"Alpha"}`,
			wantStatus: http.StatusBadRequest,
			wantInBody: "actionedBy",
		},
		{
			name:       "team not found",
			core:       &stubCore{actionErr: fmt.Errorf("%w: team Ghost", entity.ErrNotFound)},
			body:       `{"teamName":"Ghost","actionedBy":"admin1"}`,
			wantStatus: http.StatusNotFound,
			wantInBody: "Team not found",
		},
		{
			name:       "already rejected",
			core:       &stubCore{actionErr: fmt.Errorf("%w: team Alpha already rejected", entity.ErrConflict)},
			body:       `{"teamName":"Alpha","actionedBy":"admin1"}`,
			wantStatus: http.StatusConflict,
			wantInBody: "Team already actioned",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			admin.AcceptTeam(discard(), tt.core)(rec, jsonRequest("POST", "/admin/accept-team", tt.body))

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantInBody)
		})
	}
}

func TestRejectTeam(t *testing.T) {
	core := &stubCore{actionTeam: &entity.TeamRegistration{
		TeamName:           "Alpha",
		RegistrationStatus: entity.StatusRejected,
		RejectionReason:    entity.DefaultRejectionReason,
	}}
	rec := httptest.NewRecorder()

	admin.RejectTeam(discard(), core)(rec, jsonRequest("POST", "/admin/reject-team", `{"teamName":"Alpha","actionedBy":"admin1"}`))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Team rejected")
	assert.Contains(t, rec.Body.String(), entity.DefaultRejectionReason)
}

func TestGetCount(t *testing.T) {
	core := &stubCore{counts: &entity.TeamCounts{Total: 5, Approved: 2, Pending: 2, Rejected: 1}}
	rec := httptest.NewRecorder()

	admin.GetCount(discard(), core)(rec, httptest.NewRequest("GET", "/admin/getCount", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var counts entity.TeamCounts
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &counts))
	assert.Equal(t, int64(5), counts.Total)
	assert.Equal(t, counts.Total, counts.Approved+counts.Pending+counts.Rejected)
}
