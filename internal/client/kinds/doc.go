// Package kinds instantiates edit sessions for every editable record type.
//
// Each constructor takes the narrow slice of the backend it needs and returns
// an *editsession.Kind: how to fetch and upsert a record, its defaults, how a
// created record gets its key, and the form fields that are exposed.
package kinds

const (
	FoodName         = "food"
	UserSettingsName = "usersettings"
	WeightName       = "weight"
)
