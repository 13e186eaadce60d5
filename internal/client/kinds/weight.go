package kinds

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/common"
	"github.com/dmitrijs2005/myhealth/internal/timex"
)

var now = time.Now

type WeightStore interface {
	GetWeight(ctx context.Context, ts int64) (models.Weight, error)
	SetWeight(ctx context.Context, w models.Weight) error
}

// ParseWeightKey converts a weight key back to its timestamp.
func ParseWeightKey(key string) (int64, error) {
	ts, err := strconv.ParseInt(key, 10, 64)
	if err != nil || ts < 0 {
		return 0, fmt.Errorf("%w: %q", common.ErrInvalidKey, key)
	}
	return ts, nil
}

// Weight edits journal entries keyed by their day. A created entry is always
// for today.
func Weight(store WeightStore) *editsession.Kind[models.Weight] {
	return &editsession.Kind[models.Weight]{
		Name: WeightName,
		Fetch: func(ctx context.Context, key string) (models.Weight, error) {
			ts, err := ParseWeightKey(key)
			if err != nil {
				return models.Weight{}, err
			}
			return store.GetWeight(ctx, ts)
		},
		Upsert: func(ctx context.Context, w models.Weight) error {
			return store.SetWeight(ctx, w.Normalize())
		},
		Defaults: func(key string) models.Weight {
			ts, _ := ParseWeightKey(key)
			return models.Weight{Timestamp: ts}
		},
		NewKey: func() string {
			return strconv.FormatInt(timex.DayStart(now()).UnixMilli(), 10)
		},
		RequiresKey: true,
		Binder: forms.NewBinder(
			forms.Number("value", "Weight, kg", func(w *models.Weight) *float64 { return &w.Value }),
		),
	}
}
