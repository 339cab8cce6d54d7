package httpapi

import "github.com/alexsalminskiy/cryptoschool-sub000/internal/markup"

type ArticleCardDTO struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Category      string  `json:"category"`
	CoverImageURL *string `json:"coverImageUrl"`
	Status        string  `json:"status"`
	Views         int64   `json:"views"`
	CreatedAt     string  `json:"createdAt"`
}

type ArticleEditDTO struct {
	ArticleCardDTO
	ContentMD string `json:"contentMd"`
	UpdatedAt string `json:"updatedAt"`
}

// ArticleDetailDTO is the public read shape: the stored markup plus its
// rendered HTML and the FAQ records extracted from it.
type ArticleDetailDTO struct {
	ArticleCardDTO
	ContentMD   string           `json:"contentMd"`
	ContentHTML string           `json:"contentHtml"`
	FAQ         []markup.FAQItem `json:"faq"`
}

type ArticleListResponse struct {
	Items []ArticleCardDTO `json:"items"`
	Total int              `json:"total"`
}

type ArticleCreateRequest struct {
	Title         string  `json:"title"`
	Slug          string  `json:"slug"`
	Category      string  `json:"category"`
	CoverImageURL *string `json:"coverImageUrl"`
	ContentMD     string  `json:"contentMd"`
	Status        string  `json:"status"`
}

// ArticleUpdateRequest is a partial update: nil fields keep their value.
type ArticleUpdateRequest struct {
	ID            string  `json:"id"`
	Title         *string `json:"title"`
	Slug          *string `json:"slug"`
	Category      *string `json:"category"`
	CoverImageURL *string `json:"coverImageUrl"`
	ContentMD     *string `json:"contentMd"`
	Status        *string `json:"status"`
}
