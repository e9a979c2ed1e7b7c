package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	_ "time/tzdata"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/amberbeaumont/IThelpdesklite/internal/app"
	"github.com/amberbeaumont/IThelpdesklite/internal/config"
	"github.com/amberbeaumont/IThelpdesklite/internal/middleware"
	"github.com/amberbeaumont/IThelpdesklite/internal/utils"
)

func TestMain(m *testing.M) {
	utils.PasswordCost = 4 // bcrypt.MinCost
	os.Exit(m.Run())
}

type harness struct {
	t *testing.T
	h http.Handler
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWith(t, nil)
}

func newHarnessWith(t *testing.T, tweak func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Config{
		Env: "dev", Origin: "http://localhost:3000", SessionSecret: "test-secret",
		DataSource: "memory", WorkspaceDB: ":memory:", ReportTZ: "UTC", ReportLocale: "en",
		RateLimit: 10000,
	}
	if tweak != nil {
		tweak(&cfg)
	}
	require.NoError(t, cfg.Validate())
	st, err := app.Open(context.Background(), zerolog.Nop(), cfg)
	require.NoError(t, err)
	t.Cleanup(st.Close)
	return &harness{t: t, h: New(zerolog.Nop(), cfg, st)}
}

func (s *harness) do(method, path string, body any, session *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if session != nil {
		req.AddCookie(session)
	}
	rec := httptest.NewRecorder()
	s.h.ServeHTTP(rec, req)
	return rec
}

func (s *harness) login(email string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": app.DemoPassword}, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	s.t.Fatal("no session cookie")
	return nil
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestHealthAndMetrics(t *testing.T) {
	s := newHarness(t)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/healthz", nil, nil).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/readyz", nil, nil).Code)

	rec := s.do(http.MethodGet, "/metrics", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "helpdesk_api_requests_total")
}

func TestAuthFlow(t *testing.T) {
	s := newHarness(t)

	rec := s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "eve@example.com", "name": "Eve", "password": "hunter22", "role": "Admin",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "User", decode[map[string]any](t, rec)["role"])

	rec = s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "eve@example.com", "name": "Eve", "password": "hunter22",
	}, nil)
	require.Equal(t, http.StatusConflict, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/register", map[string]string{
		"email": "long@example.com", "name": "Long", "password": strings.Repeat("p", 80),
	}, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "eve@example.com", "password": "nope"}, nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/auth/me", nil, nil).Code)

	rec = s.do(http.MethodGet, "/api/auth/me", nil, s.login("alice@example.com"))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "alice@example.com", decode[map[string]any](t, rec)["email"])
}

func TestTickets_RequesterIsScoped(t *testing.T) {
	s := newHarness(t)
	alice := s.login("alice@example.com")

	rec := s.do(http.MethodGet, "/api/tickets", nil, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Total int `json:"total"`
	}](t, rec)
	require.Equal(t, 1, list.Total)
	require.Equal(t, int64(1), list.Items[0].ID)

	require.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/tickets/2", nil, alice).Code)
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/api/tickets/abc", nil, alice).Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/tickets/99", nil, alice).Code)

	rec = s.do(http.MethodPost, "/api/tickets", map[string]string{
		"subject": "Monitor flickers", "urgency": "Low", "requesterEmail": "someone@else.com",
	}, alice)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	require.Equal(t, "alice@example.com", created["requesterEmail"])
	require.Equal(t, "it-charlie", created["assignedTo"])
	require.Equal(t, "Open", created["status"])

	rec = s.do(http.MethodPatch, "/api/tickets/1", map[string]string{"status": "Closed"}, alice)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestTickets_SupportUpdateAndSoftDelete(t *testing.T) {
	s := newHarness(t)
	diana := s.login("diana@support.com")

	rec := s.do(http.MethodPatch, "/api/tickets/2", map[string]string{"status": "Waiting on User"}, diana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Waiting on User", decode[map[string]any](t, rec)["status"])

	rec = s.do(http.MethodPatch, "/api/tickets/2", map[string]string{"status": "Resolved"}, diana)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/api/tickets/2/comments", map[string]any{"text": "ordered toner", "isInternal": true}, diana)
	require.Equal(t, http.StatusCreated, rec.Code)

	// requester does not see internal notes
	bob := s.login("bob@example.com")
	rec = s.do(http.MethodGet, "/api/tickets/2", nil, bob)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Empty(t, decode[map[string]any](t, rec)["comments"])

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/tickets/2", nil, diana).Code)
	rec = s.do(http.MethodGet, "/api/tickets?status=Deleted", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "1", rec.Header().Get("X-Total-Count"))
}

func TestUsers_RoleGates(t *testing.T) {
	s := newHarness(t)
	alice := s.login("alice@example.com")
	diana := s.login("diana@support.com")

	require.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/users", nil, alice).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/users", nil, diana).Code)

	rec := s.do(http.MethodPatch, "/api/users/user-alice/basic", map[string]string{"name": "Alice W."}, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, "/api/users/user-bob/basic", map[string]string{"name": "X"}, alice).Code)

	require.Equal(t, http.StatusForbidden, s.do(http.MethodPatch, "/api/users/user-bob/role", map[string]string{"role": "Admin"}, alice).Code)
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPatch, "/api/users/user-bob/role", map[string]string{"role": "Boss"}, diana).Code)
	rec = s.do(http.MethodPatch, "/api/users/user-bob/role", map[string]string{"role": "Manager"}, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Manager", decode[map[string]any](t, rec)["role"])
}

func TestEquipmentCRUD(t *testing.T) {
	s := newHarness(t)
	charlie := s.login("charlie@support.com")

	require.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/equipment", nil, s.login("bob@example.com")).Code)

	rec := s.do(http.MethodPost, "/api/equipment", map[string]string{
		"name": "ThinkPad T14", "type": "Laptop", "acquiredAt": "2024-02-01", "assignedTo": "user-bob",
	}, charlie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, "Operational", decode[map[string]any](t, rec)["status"])

	rec = s.do(http.MethodPost, "/api/equipment", map[string]string{"name": "X", "status": "Broken"}, charlie)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPut, "/api/equipment/4", map[string]string{"name": "ThinkPad T14", "status": "Missing"}, charlie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/equipment/4", nil, charlie).Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/api/equipment/4", nil, charlie).Code)
}

func TestEquipment_AcquiredDayInReportZone(t *testing.T) {
	s := newHarnessWith(t, func(c *config.Config) { c.ReportTZ = "America/New_York" })
	charlie := s.login("charlie@support.com")

	rec := s.do(http.MethodPost, "/api/equipment", map[string]string{"name": "Rack UPS", "acquiredAt": "2030-01-01"}, charlie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	run := func(from, to string) []map[string]any {
		rec := s.do(http.MethodPost, "/api/reports/run", map[string]any{
			"fields": []string{"equipment.name", "equipment.acquiredAt"}, "from": from, "to": to,
		}, charlie)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[struct {
			Rows []map[string]any `json:"rows"`
		}](t, rec).Rows
	}
	rows := run("2030-01-01", "2030-01-01")
	require.Len(t, rows, 1)
	require.Equal(t, "Rack UPS", rows[0]["equipment.name"])
	require.Empty(t, run("2030-01-02", ""))
	require.Empty(t, run("2029-12-31", "2029-12-31"))
}

func TestWorkspaceCollections(t *testing.T) {
	s := newHarness(t)
	charlie := s.login("charlie@support.com")

	rec := s.do(http.MethodGet, "/api/workspace/snippets", nil, charlie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Password Reset Instructions")

	rec = s.do(http.MethodPost, "/api/workspace/notes", map[string]string{"name": "VPN", "details": "rotate keys"}, charlie)
	require.Equal(t, http.StatusCreated, rec.Code)
	id := decode[map[string]any](t, rec)["id"].(string)
	require.NotEmpty(t, id)

	s.do(http.MethodPost, "/api/workspace/notes", map[string]string{"name": "Printer", "details": "toner"}, charlie)
	rec = s.do(http.MethodGet, "/api/workspace/notes", nil, charlie)
	notes := decode[struct {
		Items []map[string]any `json:"items"`
	}](t, rec)
	require.Len(t, notes.Items, 2)
	require.Equal(t, "Printer", notes.Items[0]["name"])

	rec = s.do(http.MethodGet, "/api/workspace/notes?q=ROTATE", nil, charlie)
	require.Contains(t, rec.Body.String(), id)
	require.NotContains(t, rec.Body.String(), "Printer")

	require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/workspace/notes/"+id, nil, charlie).Code)
	require.Equal(t, http.StatusNotFound, s.do(http.MethodDelete, "/api/workspace/notes/"+id, nil, charlie).Code)
}

func TestReports_Session(t *testing.T) {
	s := newHarness(t)
	alice := s.login("alice@example.com")
	diana := s.login("diana@support.com")

	require.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/api/reports/fields", nil, alice).Code)

	rec := s.do(http.MethodGet, "/api/reports/fields", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode[map[string][]map[string]any](t, rec)
	require.Len(t, groups, 3)
	require.NotEmpty(t, groups["equipment"])
	require.Equal(t, "equipment.id", groups["equipment"][0]["key"])
	for _, f := range groups["users"] {
		require.True(t, strings.HasPrefix(f["key"].(string), "user."), f["key"])
	}

	rec = s.do(http.MethodGet, "/api/reports/session/export", nil, diana)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/reports/session/fields/ticket.bogus", nil, diana).Code)
	require.Equal(t, http.StatusBadRequest, s.do(http.MethodPost, "/api/reports/session/sort/ticket.subject", nil, diana).Code)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/reports/session/fields/user.name", nil, diana).Code)
	rec = s.do(http.MethodPost, "/api/reports/session/fields/user.openTickets", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[map[string]any](t, rec)
	require.Equal(t, "active", view["state"])
	require.Equal(t, "users", view["primary"])

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/reports/session/sort/user.name", nil, diana).Code)

	rec = s.do(http.MethodGet, "/api/reports/session/table", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	tbl := decode[struct {
		Rows []map[string]any `json:"rows"`
	}](t, rec)
	require.Len(t, tbl.Rows, 4)
	require.Equal(t, "Alice Wonderland", tbl.Rows[0]["user.name"])

	rec = s.do(http.MethodGet, "/api/reports/session/export", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), `filename="report-users-`)
	require.True(t, strings.HasPrefix(rec.Body.String(), "Name,"), rec.Body.String())
	require.NotContains(t, rec.Body.String(), "\r")

	rec = s.do(http.MethodPut, "/api/reports/session/range", map[string]string{"from": "2024-05-02", "to": "2024-05-01"}, diana)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodDelete, "/api/reports/session", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "empty", decode[map[string]any](t, rec)["state"])

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/reports/session/fields/ticket.subject", nil, diana).Code)
	require.Equal(t, http.StatusNoContent, s.do(http.MethodPost, "/api/auth/logout", nil, diana).Code)
	rec = s.do(http.MethodGet, "/api/reports/session", nil, s.login("diana@support.com"))
	require.Equal(t, "empty", decode[map[string]any](t, rec)["state"])
}

func TestReports_RunAndSummary(t *testing.T) {
	s := newHarness(t)
	diana := s.login("diana@support.com")

	body := map[string]any{
		"fields": []string{"ticket.subject", "ticket.assignedTo"},
		"sort":   map[string]any{"key": "ticket.subject", "desc": true},
	}
	rec := s.do(http.MethodPost, "/api/reports/run", body, diana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	tbl := decode[struct {
		Primary string           `json:"primary"`
		Rows    []map[string]any `json:"rows"`
	}](t, rec)
	require.Equal(t, "tickets", tbl.Primary)
	require.Equal(t, "Printer not working", tbl.Rows[0]["ticket.subject"])
	require.Equal(t, "Diana Prince", tbl.Rows[0]["ticket.assignedTo"])

	rec = s.do(http.MethodPost, "/api/reports/run?format=csv", body, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "Subject,Assigned To\nPrinter not working,Diana Prince\nApplication keeps crashing on startup,Charlie Root", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/reports/run?fields=ticket.subject&fields=ticket.assignedTo&sort=ticket.subject&desc=true&format=csv", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "Subject,Assigned To\nPrinter not working,Diana Prince\nApplication keeps crashing on startup,Charlie Root", rec.Body.String())

	rec = s.do(http.MethodGet, "/api/reports/run?fields=user.name,user.role&from=2024-05-01", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "users", decode[map[string]any](t, rec)["primary"])

	rec = s.do(http.MethodPost, "/api/reports/run?format=csv", map[string]any{"fields": []string{}}, diana)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(http.MethodPost, "/api/reports/run", map[string]any{"fields": []string{"ticket.id"}, "from": "yesterday"}, diana)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodGet, "/api/reports/summary", nil, diana)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[map[string]int](t, rec)
	require.Equal(t, 1, sum["open"])
	require.Equal(t, 1, sum["inProgress"])
	require.Equal(t, 1, sum["highCriticalOpen"])
}
