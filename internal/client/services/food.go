package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/common"
	"github.com/dmitrijs2005/myhealth/internal/logging"
)

type FoodClient interface {
	ListFood(ctx context.Context) ([]models.Food, error)
	DeleteFood(ctx context.Context, key string) error
}

type FoodService interface {
	// List returns foods matching filter, sorted by name.
	List(ctx context.Context, filter string) ([]models.Food, error)
	Delete(ctx context.Context, key string) error
}

type foodService struct {
	client FoodClient
	logger logging.Logger
}

func NewFoodService(client FoodClient, logger logging.Logger) FoodService {
	return &foodService{client: client, logger: logger}
}

func (s *foodService) List(ctx context.Context, filter string) ([]models.Food, error) {
	items, err := s.client.ListFood(ctx)
	if err != nil {
		return nil, fmt.Errorf("list food: %w", err)
	}

	result := make([]models.Food, 0, len(items))
	for _, f := range items {
		if f.Matches(filter) {
			result = append(result, f)
		}
	}
	models.SortFoods(result)
	return result, nil
}

func (s *foodService) Delete(ctx context.Context, key string) error {
	if key == "" {
		return common.ErrEmptyKey
	}
	if err := s.client.DeleteFood(ctx, key); err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	s.logger.Info(ctx, "food deleted", "key", key)
	return nil
}
