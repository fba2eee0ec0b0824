package growth

import (
	"time"

	"github.com/growly/growly-web/pkg/db/models"
)

// PointDTO is one snapshot in a chartable series.
type PointDTO struct {
	Date    time.Time `json:"date"`
	Likes   int64     `json:"likes"`
	Follows int64     `json:"follows"`
}

// SeriesDTO is a user's snapshot history, oldest first.
type SeriesDTO struct {
	UserID uint       `json:"user_id"`
	Points []PointDTO `json:"points"`
}

// NewSeries maps snapshots into a series.
func NewSeries(userID uint, ms []models.Metric) *SeriesDTO {
	points := make([]PointDTO, 0, len(ms))
	for _, m := range ms {
		points = append(points, PointDTO{Date: m.CreatedAt, Likes: m.Likes, Follows: m.Follows})
	}
	return &SeriesDTO{UserID: userID, Points: points}
}

// Labels returns the series dates formatted for chart axes.
func (s *SeriesDTO) Labels() []string {
	out := make([]string, 0, len(s.Points))
	for _, p := range s.Points {
		out = append(out, p.Date.Format("Jan 2"))
	}
	return out
}
