package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/gate"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func sessionRequest(method, target string, sess *gate.Session) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	if sess == nil {
		return r
	}
	return r.WithContext(sessionContext(r.Context(), sess.UserID, "", sess))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestGateMemberAnonymous(t *testing.T) {
	rec := httptest.NewRecorder()
	GateMember(okHandler()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/articles/what-is-bitcoin", nil))

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "/auth/sign-in?redirect=/articles/what-is-bitcoin", resp.Redirect)
}

func TestGateMemberPending(t *testing.T) {
	sess := &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: false}
	rec := httptest.NewRecorder()
	GateMember(okHandler()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/articles/what-is-bitcoin", sess))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "/pending-approval", decodeError(t, rec).Redirect)
}

func TestGateMemberApproved(t *testing.T) {
	sess := &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: true}
	rec := httptest.NewRecorder()
	GateMember(okHandler()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/articles/what-is-bitcoin", sess))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGateAdminRejectsMember(t *testing.T) {
	sess := &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: true}
	rec := httptest.NewRecorder()
	GateAdmin(okHandler()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/users", sess))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "/", decodeError(t, rec).Redirect)
}

func TestGateAdminAllowsUnapprovedAdmin(t *testing.T) {
	// Admins count as approved regardless of the flag.
	sess := &gate.Session{UserID: "u1", Role: gate.RoleAdmin, Approved: false}
	rec := httptest.NewRecorder()
	GateAdmin(okHandler()).ServeHTTP(rec, sessionRequest(http.MethodGet, "/api/users", sess))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAccessCheck(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		name         string
		sess         *gate.Session
		path         string
		wantAllowed  bool
		wantRedirect string
	}{
		{name: "anonymous member page", sess: nil, path: "/articles/intro", wantAllowed: false, wantRedirect: "/auth/sign-in?redirect=/articles/intro"},
		{name: "pending member page", sess: &gate.Session{UserID: "u1", Role: gate.RoleUser}, path: "/articles/intro", wantAllowed: false, wantRedirect: "/pending-approval"},
		{name: "approved member page", sess: &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: true}, path: "/articles/intro", wantAllowed: true},
		{name: "member on admin page", sess: &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: true}, path: "/admin", wantAllowed: false, wantRedirect: "/"},
		{name: "admin anywhere", sess: &gate.Session{UserID: "u1", Role: gate.RoleAdmin}, path: "/admin/articles", wantAllowed: true},
		{name: "public page", sess: nil, path: "/", wantAllowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := sessionRequest(http.MethodGet, "/api/me/access?path="+tt.path, tt.sess)
			rec := httptest.NewRecorder()
			s.AccessCheck(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			var resp AccessResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantAllowed, resp.Allowed)
			assert.Equal(t, tt.wantRedirect, resp.Redirect)
		})
	}
}

func TestAccessCheckRequiresPath(t *testing.T) {
	s, _ := newTestServer(t)
	rec := httptest.NewRecorder()
	s.AccessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/me/access", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	s.AccessCheck(rec, httptest.NewRequest(http.MethodGet, "/api/me/access?path=articles", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApprovalStatus(t *testing.T) {
	s, _ := newTestServer(t)

	sess := &gate.Session{UserID: "u1", Role: gate.RoleUser, Approved: true}
	rec := httptest.NewRecorder()
	s.ApprovalStatus(rec, sessionRequest(http.MethodGet, "/api/me/approval", sess))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ApprovalResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Approved)
	assert.Equal(t, gate.RoleUser, resp.Role)
}
