package backend

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/myhealth/internal/client/models"
)

func weightPath(ts int64) string {
	return "weight/" + strconv.FormatInt(ts, 10)
}

func (c *Client) GetWeight(ctx context.Context, ts int64) (models.Weight, error) {
	return Fetch[models.Weight](ctx, c, weightPath(ts), nil)
}

// ListWeight returns entries within [from, to], newest first.
func (c *Client) ListWeight(ctx context.Context, from, to time.Time) ([]models.Weight, error) {
	q := url.Values{}
	q.Set("from", strconv.FormatInt(from.UnixMilli(), 10))
	q.Set("to", strconv.FormatInt(to.UnixMilli(), 10))
	q.Set("order", "desc")
	return List[models.Weight](ctx, c, "weight", q)
}

func (c *Client) SetWeight(ctx context.Context, w models.Weight) error {
	return Upsert(ctx, c, "weight/set", w)
}

func (c *Client) DeleteWeight(ctx context.Context, ts int64) error {
	return Delete(ctx, c, weightPath(ts))
}
