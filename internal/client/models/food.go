// Package models defines the records exchanged with the myhealth backend.
package models

import (
	"fmt"
	"sort"
	"strings"
)

// Food is one entry of the food catalog. Nutrition values are per 100 g.
type Food struct {
	Key     string  `json:"key"`
	Name    string  `json:"name"`
	Brand   string  `json:"brand"`
	Cal100  float64 `json:"cal100"`
	Prot100 float64 `json:"prot100"`
	Fat100  float64 `json:"fat100"`
	Carb100 float64 `json:"carb100"`
	Comment string  `json:"comment"`
}

// Normalize clamps every numeric field to be non-negative.
func (f Food) Normalize() Food {
	f.Cal100 = NonNegative(f.Cal100)
	f.Prot100 = NonNegative(f.Prot100)
	f.Fat100 = NonNegative(f.Fat100)
	f.Carb100 = NonNegative(f.Carb100)
	return f
}

// PFC renders the protein/fat/carbohydrate triple shown in listings.
func (f Food) PFC() string {
	return fmt.Sprintf("%s/%s/%s", FormatNumber(f.Prot100), FormatNumber(f.Fat100), FormatNumber(f.Carb100))
}

// Matches reports whether the name, brand or comment contains filter,
// ignoring case. An empty filter matches everything.
func (f Food) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	filter = strings.ToLower(filter)
	for _, s := range []string{f.Name, f.Brand, f.Comment} {
		if strings.Contains(strings.ToLower(s), filter) {
			return true
		}
	}
	return false
}

// SortFoods orders foods by name, then by key.
func SortFoods(items []Food) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := strings.ToLower(items[i].Name), strings.ToLower(items[j].Name)
		if a != b {
			return a < b
		}
		return items[i].Key < items[j].Key
	})
}
