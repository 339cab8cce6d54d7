package services

import (
	"context"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// ContentStats are the aggregate counts behind the admin dashboard, computed
// by full-table scans. Fine at this scale.
type ContentStats struct {
	ArticlesPublished int   `json:"articlesPublished"`
	ArticlesDraft     int   `json:"articlesDraft"`
	TotalViews        int64 `json:"totalViews"`
	UsersApproved     int   `json:"usersApproved"`
	UsersPending      int   `json:"usersPending"`
}

func CollectContentStats(db *sqlx.DB) (ContentStats, error) {
	var stats ContentStats
	if err := db.Get(&stats.ArticlesPublished, `SELECT count(*) FROM articles WHERE status = 'published'`); err != nil {
		return ContentStats{}, err
	}
	if err := db.Get(&stats.ArticlesDraft, `SELECT count(*) FROM articles WHERE status = 'draft'`); err != nil {
		return ContentStats{}, err
	}
	if err := db.Get(&stats.TotalViews, `SELECT COALESCE(sum(views), 0) FROM articles`); err != nil {
		return ContentStats{}, err
	}
	if err := db.Get(&stats.UsersApproved, `SELECT count(*) FROM profiles WHERE approved = TRUE OR role = 'admin'`); err != nil {
		return ContentStats{}, err
	}
	if err := db.Get(&stats.UsersPending, `SELECT count(*) FROM profiles WHERE approved = FALSE AND role <> 'admin'`); err != nil {
		return ContentStats{}, err
	}
	return stats, nil
}

// StatsSample is one broadcast frame: content counters plus process and
// system load at capture time.
type StatsSample struct {
	CapturedAt        time.Time    `json:"capturedAt"`
	Content           ContentStats `json:"content"`
	ProcessRSSBytes   int64        `json:"processRssBytes"`
	SystemMemoryUsed  int64        `json:"systemMemoryUsedBytes"`
	SystemMemoryTotal int64        `json:"systemMemoryTotalBytes"`
	SystemCpuLoad     float64      `json:"systemCpuLoad"`
}

func CaptureStats(db *sqlx.DB) (StatsSample, error) {
	content, err := CollectContentStats(db)
	if err != nil {
		return StatsSample{}, err
	}
	proc, _ := process.NewProcess(int32(os.Getpid()))
	memStat, _ := mem.VirtualMemory()
	processRSS := int64(0)
	if proc != nil {
		if rss, _ := proc.MemoryInfo(); rss != nil {
			processRSS = int64(rss.RSS)
		}
	}
	sysCPU, _ := cpu.Percent(0, false)
	sysCPUValue := 0.0
	if len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := StatsSample{
		CapturedAt:      time.Now().UTC(),
		Content:         content,
		ProcessRSSBytes: processRSS,
		SystemCpuLoad:   sysCPUValue,
	}
	if memStat != nil {
		sample.SystemMemoryTotal = int64(memStat.Total)
		sample.SystemMemoryUsed = int64(memStat.Total - memStat.Available)
	}

	_, err = db.Exec(`
INSERT INTO stat_samples (
  id, captured_at, articles_published, articles_draft, total_views,
  users_approved, users_pending, process_rss_bytes,
  system_memory_used_bytes, system_memory_total_bytes, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
`, uuid.NewString(), sample.CapturedAt, content.ArticlesPublished, content.ArticlesDraft,
		content.TotalViews, content.UsersApproved, content.UsersPending,
		sample.ProcessRSSBytes, sample.SystemMemoryUsed, sample.SystemMemoryTotal, sample.SystemCpuLoad)
	if err != nil {
		return StatsSample{}, err
	}
	return sample, nil
}

func LatestStats(db *sqlx.DB, limit int) ([]StatsSample, error) {
	type row struct {
		CapturedAt        time.Time `db:"captured_at"`
		ArticlesPublished int       `db:"articles_published"`
		ArticlesDraft     int       `db:"articles_draft"`
		TotalViews        int64     `db:"total_views"`
		UsersApproved     int       `db:"users_approved"`
		UsersPending      int       `db:"users_pending"`
		ProcessRSSBytes   int64     `db:"process_rss_bytes"`
		SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
		SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
		SystemCpuLoad     float64   `db:"system_cpu_load"`
	}
	rows := []row{}
	if err := db.Select(&rows, `
SELECT captured_at, articles_published, articles_draft, total_views,
       users_approved, users_pending, process_rss_bytes,
       system_memory_used_bytes, system_memory_total_bytes, system_cpu_load
FROM stat_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]StatsSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, StatsSample{
			CapturedAt: rows[i].CapturedAt,
			Content: ContentStats{
				ArticlesPublished: rows[i].ArticlesPublished,
				ArticlesDraft:     rows[i].ArticlesDraft,
				TotalViews:        rows[i].TotalViews,
				UsersApproved:     rows[i].UsersApproved,
				UsersPending:      rows[i].UsersPending,
			},
			ProcessRSSBytes:   rows[i].ProcessRSSBytes,
			SystemMemoryUsed:  rows[i].SystemMemoryUsed,
			SystemMemoryTotal: rows[i].SystemMemoryTotal,
			SystemCpuLoad:     rows[i].SystemCpuLoad,
		})
	}
	return items, nil
}

// StatsHub fans samples out to connected admin dashboards.
type StatsHub struct {
	clients map[*websocket.Conn]bool
	ch      chan StatsSample
}

func NewStatsHub() *StatsHub {
	return &StatsHub{
		clients: map[*websocket.Conn]bool{},
		ch:      make(chan StatsSample, 16),
	}
}

func (h *StatsHub) Run(ctx context.Context) {
	for {
		select {
		case sample := <-h.ch:
			for conn := range h.clients {
				_ = conn.WriteJSON(sample)
			}
		case <-ctx.Done():
			return
		}
	}
}

func (h *StatsHub) Broadcast(sample StatsSample) {
	select {
	case h.ch <- sample:
	default:
	}
}

func (h *StatsHub) Add(conn *websocket.Conn) {
	h.clients[conn] = true
}

func (h *StatsHub) Remove(conn *websocket.Conn) {
	delete(h.clients, conn)
}
