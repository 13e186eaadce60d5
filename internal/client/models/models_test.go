package models

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 0.0, NonNegative(-1))
	assert.Equal(t, 0.0, NonNegative(math.NaN()))
	assert.Equal(t, 2.5, NonNegative(2.5))
}

func TestFood_Normalize(t *testing.T) {
	f := Food{Key: "k", Cal100: -5, Prot100: 1, Fat100: -0.1, Carb100: 3}.Normalize()

	assert.Equal(t, Food{Key: "k", Cal100: 0, Prot100: 1, Fat100: 0, Carb100: 3}, f)
}

func TestFood_PFC(t *testing.T) {
	f := Food{Prot100: 12, Fat100: 1.5, Carb100: 0}
	assert.Equal(t, "12/1.5/0", f.PFC())
}

func TestFood_Matches(t *testing.T) {
	f := Food{Name: "Mms", Brand: "Mars", Comment: "chocolate"}

	assert.True(t, f.Matches(""))
	assert.True(t, f.Matches("mar"))
	assert.True(t, f.Matches("CHOCO"))
	assert.False(t, f.Matches("apple"))
}

func TestSortFoods(t *testing.T) {
	items := []Food{{Key: "2", Name: "b"}, {Key: "3", Name: "A"}, {Key: "1", Name: "b"}}
	SortFoods(items)

	require.Len(t, items, 3)
	assert.Equal(t, []string{"3", "1", "2"}, []string{items[0].Key, items[1].Key, items[2].Key})
}

func TestWeight(t *testing.T) {
	ts := time.Date(2024, 3, 5, 0, 0, 0, 0, time.Local).UnixMilli()
	w := Weight{Timestamp: ts, Value: -70}.Normalize()

	assert.Equal(t, 0.0, w.Value)
	assert.Equal(t, "2024-03-05", w.Day())
	assert.NotEmpty(t, w.Key())
}

func TestUserSettings_Normalize(t *testing.T) {
	assert.Equal(t, UserSettings{CalLimit: 0}, UserSettings{CalLimit: -10}.Normalize())
}
