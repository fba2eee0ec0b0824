package posts

import (
	"github.com/growly/growly-web/pkg/db/models"
	"github.com/growly/growly-web/pkg/pagination"
)

// CreatePostDTO is the admin create-post form.
type CreatePostDTO struct {
	Title    string `json:"title" validate:"required,max=200"`
	Author   string `json:"author" validate:"max=120"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
	Excerpt  string `json:"excerpt" validate:"max=500"`
	Body     string `json:"body"`
}

// ToModel maps the form onto a post row.
func (d CreatePostDTO) ToModel() *models.Post {
	return &models.Post{
		Title:    d.Title,
		Author:   d.Author,
		ImageURL: d.ImageURL,
		Excerpt:  d.Excerpt,
		Body:     d.Body,
	}
}

// ListResult is one page of posts.
type ListResult struct {
	Posts []models.Post   `json:"posts"`
	Page  pagination.Page `json:"page"`
}
