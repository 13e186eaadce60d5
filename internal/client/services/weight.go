package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/logging"
	"github.com/dmitrijs2005/myhealth/internal/timex"
)

// DefaultWeightDays is the listing range used when none is given.
const DefaultWeightDays = 365

var now = time.Now

type WeightClient interface {
	ListWeight(ctx context.Context, from, to time.Time) ([]models.Weight, error)
	DeleteWeight(ctx context.Context, ts int64) error
}

type WeightService interface {
	// List returns entries of the last days days, newest first.
	List(ctx context.Context, days int) ([]models.Weight, error)
	Delete(ctx context.Context, ts int64) error
}

type weightService struct {
	client WeightClient
	logger logging.Logger
}

func NewWeightService(client WeightClient, logger logging.Logger) WeightService {
	return &weightService{client: client, logger: logger}
}

func (s *weightService) List(ctx context.Context, days int) ([]models.Weight, error) {
	if days <= 0 {
		days = DefaultWeightDays
	}
	to := now()
	from := timex.DayStart(to.AddDate(0, 0, -days))

	items, err := s.client.ListWeight(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list weight: %w", err)
	}

	sort.SliceStable(items, func(i, j int) bool { return items[i].Timestamp > items[j].Timestamp })
	return items, nil
}

func (s *weightService) Delete(ctx context.Context, ts int64) error {
	if err := s.client.DeleteWeight(ctx, ts); err != nil {
		return fmt.Errorf("delete weight: %w", err)
	}
	s.logger.Info(ctx, "weight deleted", "timestamp", ts)
	return nil
}
