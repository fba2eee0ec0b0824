package growth

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/growly/growly-web/pkg/db"
	"github.com/growly/growly-web/pkg/db/models"
	pkgerrors "github.com/growly/growly-web/pkg/errors"
	"gorm.io/gorm"
)

// seedDays is how many synthetic snapshots an empty history receives.
const seedDays = 6

// Service appends and reads growth snapshots.
type Service interface {
	Append(ctx context.Context, userID uint, delta Delta) (*models.Metric, error)
	Latest(ctx context.Context, userID uint) (*models.Metric, error)
	Series(ctx context.Context, userID uint) (*SeriesDTO, error)
}

// Delta is a staff-entered increment. Negative values count as zero.
type Delta struct {
	Likes   int64
	Follows int64
}

type service struct {
	tx  db.TxRunner
	now func() time.Time
}

// NewService builds the growth service over tx.
func NewService(tx db.TxRunner) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	return &service{tx: tx, now: time.Now}, nil
}

// Append stores latest + max(delta, 0) as a new snapshot.
func (s *service) Append(ctx context.Context, userID uint, delta Delta) (*models.Metric, error) {
	var created *models.Metric
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		latest, err := repo.Latest(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load latest metric")
		}
		next := &models.Metric{
			UserID:    userID,
			Likes:     clampZero(delta.Likes),
			Follows:   clampZero(delta.Follows),
			CreatedAt: s.now().UTC(),
		}
		if latest != nil {
			next.Likes = saturatingAdd(latest.Likes, next.Likes)
			next.Follows = saturatingAdd(latest.Follows, next.Follows)
		}
		if err := repo.Create(ctx, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "append metric")
		}
		created = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Latest(ctx context.Context, userID uint) (*models.Metric, error) {
	var latest *models.Metric
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		m, err := NewRepository(tx).Latest(ctx, userID)
		latest = m
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load latest metric")
	}
	return latest, nil
}

// Series returns the user's history, seeding synthetic snapshots first when
// none exist.
func (s *service) Series(ctx context.Context, userID uint) (*SeriesDTO, error) {
	var history []models.Metric
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := NewRepository(tx)
		n, err := repo.CountByUser(ctx, userID)
		if err != nil {
			return err
		}
		if n == 0 {
			if err := repo.CreateBatch(ctx, SeedSnapshots(userID, s.now().UTC())); err != nil {
				return err
			}
		}
		history, err = repo.History(ctx, userID)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load metric history")
	}
	return NewSeries(userID, history), nil
}

// SeedSnapshots builds the synthetic history: one snapshot per day ending at
// now, likes rising by 100 and follows by 20 each day.
func SeedSnapshots(userID uint, now time.Time) []models.Metric {
	out := make([]models.Metric, 0, seedDays)
	for i := 0; i < seedDays; i++ {
		out = append(out, models.Metric{
			UserID:    userID,
			Likes:     int64(i+1) * 100,
			Follows:   int64(i+1) * 20,
			CreatedAt: now.AddDate(0, 0, i-(seedDays-1)),
		})
	}
	return out
}

func clampZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}

// saturatingAdd adds two non-negative counters, pinning at math.MaxInt64.
func saturatingAdd(a, b int64) int64 {
	if b > math.MaxInt64-a {
		return math.MaxInt64
	}
	return a + b
}
