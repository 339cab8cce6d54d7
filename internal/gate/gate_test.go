package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	anonymous := (*Session)(nil)
	unapproved := &Session{UserID: "u1", Role: RoleUser, Approved: false}
	approved := &Session{UserID: "u2", Role: RoleUser, Approved: true}
	admin := &Session{UserID: "u3", Role: RoleAdmin, Approved: false}

	tests := []struct {
		name     string
		sess     *Session
		path     string
		action   Action
		location string
	}{
		{"anonymous member content", anonymous, "/articles/foo", RedirectSignIn, "/auth/sign-in?redirect=/articles/foo"},
		{"unapproved member content", unapproved, "/articles/foo", RedirectPending, "/pending-approval"},
		{"approved member content", approved, "/articles/foo", Allow, ""},
		{"admin implicitly approved", admin, "/articles/foo", Allow, ""},
		{"anonymous admin area", anonymous, "/admin/users", RedirectSignIn, "/auth/sign-in?redirect=/admin/users"},
		{"non-admin admin area", approved, "/admin/users", RedirectHome, "/"},
		{"admin admin area", admin, "/admin", Allow, ""},
		{"public path anonymous", anonymous, "/about", Allow, ""},
		{"articles root gated", anonymous, "/articles", RedirectSignIn, "/auth/sign-in?redirect=/articles"},
		{"articles-ish prefix not gated", anonymous, "/articlestore", Allow, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.sess, tc.path)
			assert.Equal(t, tc.action, got.Action)
			assert.Equal(t, tc.location, got.Location)
		})
	}
}

func TestApprovalFlipAllowsWithoutReauth(t *testing.T) {
	sess := &Session{UserID: "u1", Role: RoleUser, Approved: false}
	assert.Equal(t, RedirectPending, Decide(sess, "/articles/foo").Action)
	sess.Approved = true
	assert.Equal(t, Allow, Decide(sess, "/articles/foo").Action)
}
