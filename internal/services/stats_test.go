package services

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func countRows(value interface{}) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(value)
}

func TestCollectContentStats(t *testing.T) {
	db, mock := mockDB(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM articles WHERE status = 'published'").WillReturnRows(countRows(12))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM articles WHERE status = 'draft'").WillReturnRows(countRows(3))
	mock.ExpectQuery("SELECT COALESCE\\(sum\\(views\\), 0\\) FROM articles").WillReturnRows(countRows(int64(4517)))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM profiles WHERE approved = TRUE").WillReturnRows(countRows(8))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM profiles WHERE approved = FALSE").WillReturnRows(countRows(2))

	stats, err := CollectContentStats(db)
	require.NoError(t, err)
	assert.Equal(t, 12, stats.ArticlesPublished)
	assert.Equal(t, 3, stats.ArticlesDraft)
	assert.Equal(t, int64(4517), stats.TotalViews)
	assert.Equal(t, 8, stats.UsersApproved)
	assert.Equal(t, 2, stats.UsersPending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLatestStatsChronological(t *testing.T) {
	db, mock := mockDB(t)
	newer := time.Now().UTC()
	older := newer.Add(-time.Minute)

	columns := []string{
		"captured_at", "articles_published", "articles_draft", "total_views",
		"users_approved", "users_pending", "process_rss_bytes",
		"system_memory_used_bytes", "system_memory_total_bytes", "system_cpu_load",
	}
	mock.ExpectQuery("SELECT captured_at, articles_published").
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(newer, 1, 0, int64(10), 1, 0, int64(1), int64(1), int64(2), 0.5).
			AddRow(older, 1, 0, int64(9), 1, 0, int64(1), int64(1), int64(2), 0.4))

	items, err := LatestStats(db, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].CapturedAt.Before(items[1].CapturedAt), "samples come back oldest first")
}

func TestStatsHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewStatsHub()
	// No Run loop draining the channel; the buffer fills and the rest drop.
	for i := 0; i < 100; i++ {
		hub.Broadcast(StatsSample{})
	}
}
