package backend

import (
	"context"

	"github.com/dmitrijs2005/myhealth/internal/client/models"
)

// GetUserSettings returns a KindNotFound error when the user has not saved
// settings yet.
func (c *Client) GetUserSettings(ctx context.Context) (models.UserSettings, error) {
	return Fetch[models.UserSettings](ctx, c, "usersettings", nil)
}

func (c *Client) SetUserSettings(ctx context.Context, s models.UserSettings) error {
	return Upsert(ctx, c, "usersettings", s)
}
