package httpapi

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/alexsalminskiy/cryptoschool-sub000/internal/services"
)

// newTestServer backs the handlers with a sqlmock database. The translator
// points at a closed port so untranslated passthrough is exercised, never a
// live call.
func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return &Server{
		DB:         sqlx.NewDb(db, "sqlmock"),
		Translator: services.NewTranslator("http://127.0.0.1:1", "", "test-model"),
	}, mock
}

func articleColumns() []string {
	return []string{"id", "title", "slug", "category", "cover_image_url", "content_md", "status", "views", "created_at", "updated_at"}
}

func profileColumns() []string {
	return []string{"id", "email", "first_name", "last_name", "middle_name", "role", "approved", "approved_at", "created_at"}
}
