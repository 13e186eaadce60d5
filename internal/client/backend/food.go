package backend

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/dmitrijs2005/myhealth/internal/common"
)

// foodPath rejects keys that would not address a single food record once the
// request path is cleaned.
func foodPath(key string) (string, error) {
	switch key {
	case "":
		return "", common.ErrEmptyKey
	case ".", "..":
		return "", fmt.Errorf("%w: %q", common.ErrInvalidKey, key)
	}
	return "food/" + url.PathEscape(key), nil
}

func (c *Client) GetFood(ctx context.Context, key string) (models.Food, error) {
	path, err := foodPath(key)
	if err != nil {
		return models.Food{}, err
	}

	f, err := Fetch[models.Food](ctx, c, path, nil)
	if err != nil {
		return models.Food{}, err
	}
	if f.Key != "" && f.Key != key {
		return models.Food{}, &Error{Kind: KindApplication, Message: fmt.Sprintf("requested food %q, got %q", key, f.Key)}
	}
	return f, nil
}

func (c *Client) ListFood(ctx context.Context) ([]models.Food, error) {
	return List[models.Food](ctx, c, "food", nil)
}

func (c *Client) SetFood(ctx context.Context, f models.Food) error {
	return Upsert(ctx, c, "food/set", f)
}

func (c *Client) DeleteFood(ctx context.Context, key string) error {
	path, err := foodPath(key)
	if err != nil {
		return err
	}
	return Delete(ctx, c, path)
}
