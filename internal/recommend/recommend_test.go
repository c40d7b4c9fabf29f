package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmaa-dev/fmaa/internal/model"
)

func f(v float64) *float64 { return &v }

func ids(items []Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestRecommendSortsByScoreDescending(t *testing.T) {
	r := New()

	got := r.Recommend("technology", model.Preferences{})

	assert.Equal(t, []string{"tech_001", "tech_002", "tech_003"}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestRecommendFashionReordered(t *testing.T) {
	// fashion_003 has the highest score despite being listed last.
	r := New()

	got := r.Recommend("fashion", model.Preferences{})
	assert.Equal(t, []string{"fashion_003", "fashion_001", "fashion_002"}, ids(got))
}

func TestRecommendUnknownCategory(t *testing.T) {
	r := New()

	got := r.Recommend("gardening", model.Preferences{})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRecommendMaxPriceFilter(t *testing.T) {
	r := New()

	got := r.Recommend("technology", model.Preferences{MaxPrice: f(1100)})
	assert.Equal(t, []string{"tech_003"}, ids(got))

	// Boundary is inclusive.
	got = r.Recommend("technology", model.Preferences{MaxPrice: f(1099)})
	assert.Equal(t, []string{"tech_003"}, ids(got))

	got = r.Recommend("technology", model.Preferences{MaxPrice: f(1098)})
	assert.Empty(t, got)
}

func TestRecommendMinRatingFilter(t *testing.T) {
	r := New()

	got := r.Recommend("food", model.Preferences{MinRating: f(4.7)})
	assert.Equal(t, []string{"food_002", "food_003"}, ids(got))
}

func TestRecommendCombinedFilters(t *testing.T) {
	r := New()

	got := r.Recommend("entertainment", model.Preferences{MaxPrice: f(12), MinRating: f(4.4)})
	assert.Equal(t, []string{"ent_002"}, ids(got))
}

func TestRecommendNilPricePassesMaxPrice(t *testing.T) {
	catalog := map[string][]Item{
		"misc": {
			{ID: "a", Score: 10, Rating: 4.0, Price: f(50)},
			{ID: "b", Score: 5, Rating: 4.0}, // no price
		},
	}
	r := NewWithCatalog(catalog)

	got := r.Recommend("misc", model.Preferences{MaxPrice: f(10)})
	assert.Equal(t, []string{"b"}, ids(got))
}

func TestRecommendTieKeepsInsertionOrder(t *testing.T) {
	catalog := map[string][]Item{
		"misc": {
			{ID: "first", Score: 50},
			{ID: "second", Score: 50},
			{ID: "third", Score: 50},
		},
	}
	r := NewWithCatalog(catalog)

	got := r.Recommend("misc", model.Preferences{})
	assert.Equal(t, []string{"first", "second", "third"}, ids(got))
}

func TestDefaultCatalogShape(t *testing.T) {
	c := defaultCatalog()

	require.Len(t, c, 4)
	assert.Len(t, c["technology"], 3)
	assert.Len(t, c["fashion"], 3)
	assert.Len(t, c["food"], 3)
	assert.Len(t, c["entertainment"], 2)

	for category, items := range c {
		for _, item := range items {
			assert.NotEmpty(t, item.ID, "category %s", category)
			assert.NotEmpty(t, item.Name, "item %s", item.ID)
			require.NotNil(t, item.Price, "item %s", item.ID)
			assert.Positive(t, *item.Price, "item %s", item.ID)
			assert.Positive(t, item.Score, "item %s", item.ID)
		}
	}
}
