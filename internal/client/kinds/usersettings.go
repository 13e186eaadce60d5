package kinds

import (
	"context"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
)

type UserSettingsStore interface {
	GetUserSettings(ctx context.Context) (models.UserSettings, error)
	SetUserSettings(ctx context.Context, s models.UserSettings) error
}

// UserSettings edits the settings singleton under common.UserSettingsKey.
// A user without saved settings starts from zero values.
func UserSettings(store UserSettingsStore) *editsession.Kind[models.UserSettings] {
	return &editsession.Kind[models.UserSettings]{
		Name: UserSettingsName,
		Fetch: func(ctx context.Context, _ string) (models.UserSettings, error) {
			return store.GetUserSettings(ctx)
		},
		Upsert: func(ctx context.Context, s models.UserSettings) error {
			return store.SetUserSettings(ctx, s.Normalize())
		},
		Defaults:          func(string) models.UserSettings { return models.UserSettings{} },
		NotFoundIsDefault: true,
		Binder: forms.NewBinder(
			forms.Number("calLimit", "Calorie limit", func(s *models.UserSettings) *float64 { return &s.CalLimit }),
		),
	}
}
