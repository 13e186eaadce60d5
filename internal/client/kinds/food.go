package kinds

import (
	"context"

	"github.com/dmitrijs2005/myhealth/internal/client/editsession"
	"github.com/dmitrijs2005/myhealth/internal/client/forms"
	"github.com/dmitrijs2005/myhealth/internal/client/models"
	"github.com/google/uuid"
)

type FoodStore interface {
	GetFood(ctx context.Context, key string) (models.Food, error)
	SetFood(ctx context.Context, f models.Food) error
}

// Food edits catalog entries. Created entries get a random UUID key.
func Food(store FoodStore) *editsession.Kind[models.Food] {
	return &editsession.Kind[models.Food]{
		Name:  FoodName,
		Fetch: store.GetFood,
		Upsert: func(ctx context.Context, f models.Food) error {
			return store.SetFood(ctx, f.Normalize())
		},
		Defaults:    func(key string) models.Food { return models.Food{Key: key} },
		NewKey:      uuid.NewString,
		RequiresKey: true,
		Binder: forms.NewBinder(
			forms.Text("name", "Name", func(f *models.Food) *string { return &f.Name }),
			forms.Text("brand", "Brand", func(f *models.Food) *string { return &f.Brand }),
			forms.Number("cal100", "Calories, 100 g", func(f *models.Food) *float64 { return &f.Cal100 }),
			forms.Number("prot100", "Protein, 100 g", func(f *models.Food) *float64 { return &f.Prot100 }),
			forms.Number("fat100", "Fat, 100 g", func(f *models.Food) *float64 { return &f.Fat100 }),
			forms.Number("carb100", "Carbohydrates, 100 g", func(f *models.Food) *float64 { return &f.Carb100 }),
			forms.Textarea("comment", "Comment", func(f *models.Food) *string { return &f.Comment }),
		),
	}
}
