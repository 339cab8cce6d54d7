package models

import "time"

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Profile struct {
	ID         string     `db:"id"`
	Email      string     `db:"email"`
	FirstName  *string    `db:"first_name"`
	LastName   *string    `db:"last_name"`
	MiddleName *string    `db:"middle_name"`
	Role       string     `db:"role"`
	Approved   bool       `db:"approved"`
	ApprovedAt *time.Time `db:"approved_at"`
	CreatedAt  time.Time  `db:"created_at"`
}

type Article struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Slug          string    `db:"slug"`
	Category      string    `db:"category"`
	CoverImageURL *string   `db:"cover_image_url"`
	ContentMD     string    `db:"content_md"`
	Status        string    `db:"status"`
	Views         int64     `db:"views"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type SiteVisit struct {
	ID        string    `db:"id"`
	IPAddress *string   `db:"ip_address"`
	UserAgent *string   `db:"user_agent"`
	Path      *string   `db:"path"`
	Referrer  *string   `db:"referrer"`
	CreatedAt time.Time `db:"created_at"`
}

type StatSample struct {
	ID                string    `db:"id"`
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
