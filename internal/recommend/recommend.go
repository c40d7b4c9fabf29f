// Package recommend filters and ranks the fixed product catalog.
package recommend

import (
	"sort"

	"github.com/fmaa-dev/fmaa/internal/model"
)

// Item is one catalog entry. Price is optional; items without a price
// always pass the max_price filter.
type Item struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
	Rating      float64  `json:"rating"`
	Category    string   `json:"category"`
	Score       float64  `json:"score"`
	Features    []string `json:"features"`
}

// Recommender ranks catalog items for a category under caller preferences.
type Recommender struct {
	catalog map[string][]Item
}

// New returns a Recommender over the built-in sample catalog.
func New() *Recommender {
	return &Recommender{catalog: defaultCatalog()}
}

// NewWithCatalog returns a Recommender over a caller-supplied catalog.
// Used by tests and by deployments that swap in their own data.
func NewWithCatalog(catalog map[string][]Item) *Recommender {
	return &Recommender{catalog: catalog}
}

// Recommend returns the category's items that satisfy prefs, sorted by
// score descending. Ties keep catalog insertion order (stable sort).
// An unknown category yields an empty result, not an error.
func (r *Recommender) Recommend(category string, prefs model.Preferences) []Item {
	source := r.catalog[category]

	items := make([]Item, 0, len(source))
	for _, item := range source {
		if prefs.MaxPrice != nil && item.Price != nil && *item.Price > *prefs.MaxPrice {
			continue
		}
		if prefs.MinRating != nil && item.Rating < *prefs.MinRating {
			continue
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
	return items
}

func price(v float64) *float64 { return &v }

// defaultCatalog is the hardcoded sample inventory, keyed by category.
// Data, not logic: entries are only ever read.
func defaultCatalog() map[string][]Item {
	return map[string][]Item{
		"technology": {
			{
				ID:          "tech_001",
				Name:        "iPhone 15 Pro Max",
				Title:       "Latest iPhone with Advanced Camera",
				Description: "Experience the most advanced iPhone with pro camera system and A17 Pro chip",
				Price:       price(1199),
				Rating:      4.8,
				Category:    "smartphone",
				Score:       95,
				Features:    []string{"A17 Pro Chip", "48MP Camera", "Titanium Design"},
			},
			{
				ID:          "tech_002",
				Name:        "MacBook Air M3",
				Title:       "Ultra-thin Laptop with M3 Chip",
				Description: "Incredibly thin and powerful laptop for professionals and students",
				Price:       price(1299),
				Rating:      4.7,
				Category:    "laptop",
				Score:       92,
				Features:    []string{"M3 Chip", "18hr Battery", "Liquid Retina Display"},
			},
			{
				ID:          "tech_003",
				Name:        "iPad Pro 12.9\"",
				Title:       "Professional Tablet for Creative Work",
				Description: "The ultimate iPad for creative professionals and power users",
				Price:       price(1099),
				Rating:      4.6,
				Category:    "tablet",
				Score:       89,
				Features:    []string{"M2 Chip", "Liquid Retina XDR", "Apple Pencil Support"},
			},
		},
		"fashion": {
			{
				ID:          "fashion_001",
				Name:        "Nike Air Jordan 1",
				Title:       "Classic Basketball Shoes",
				Description: "Iconic basketball shoes with timeless style and comfort",
				Price:       price(170),
				Rating:      4.5,
				Category:    "shoes",
				Score:       88,
				Features:    []string{"Leather Upper", "Air Sole Unit", "Classic Design"},
			},
			{
				ID:          "fashion_002",
				Name:        "Levi's 501 Original",
				Title:       "Classic Straight Leg Jeans",
				Description: "The original straight leg jeans that started it all",
				Price:       price(98),
				Rating:      4.4,
				Category:    "jeans",
				Score:       85,
				Features:    []string{"100% Cotton", "Button Fly", "Classic Fit"},
			},
			{
				ID:          "fashion_003",
				Name:        "Ray-Ban Aviator",
				Title:       "Classic Aviator Sunglasses",
				Description: "Iconic sunglasses worn by pilots and style icons",
				Price:       price(154),
				Rating:      4.6,
				Category:    "accessories",
				Score:       90,
				Features:    []string{"UV Protection", "Metal Frame", "Classic Design"},
			},
		},
		"food": {
			{
				ID:          "food_001",
				Name:        "Margherita Pizza",
				Title:       "Classic Italian Pizza",
				Description: "Traditional pizza with fresh mozzarella, tomato sauce, and basil",
				Price:       price(16),
				Rating:      4.5,
				Category:    "italian",
				Score:       87,
				Features:    []string{"Fresh Mozzarella", "San Marzano Tomatoes", "Fresh Basil"},
			},
			{
				ID:          "food_002",
				Name:        "Salmon Sushi Set",
				Title:       "Premium Sushi Selection",
				Description: "Fresh salmon sushi and sashimi with wasabi and pickled ginger",
				Price:       price(32),
				Rating:      4.8,
				Category:    "japanese",
				Score:       93,
				Features:    []string{"Fresh Salmon", "Sushi Rice", "Traditional Preparation"},
			},
			{
				ID:          "food_003",
				Name:        "Wagyu Burger",
				Title:       "Premium Beef Burger",
				Description: "Gourmet burger made with premium wagyu beef and artisanal bun",
				Price:       price(28),
				Rating:      4.7,
				Category:    "american",
				Score:       91,
				Features:    []string{"Wagyu Beef", "Artisanal Bun", "Gourmet Toppings"},
			},
		},
		"entertainment": {
			{
				ID:          "ent_001",
				Name:        "Netflix Premium",
				Title:       "Unlimited Streaming Service",
				Description: "Access to thousands of movies, TV shows, and documentaries",
				Price:       price(15.99),
				Rating:      4.3,
				Category:    "streaming",
				Score:       85,
				Features:    []string{"4K Streaming", "Multiple Devices", "Original Content"},
			},
			{
				ID:          "ent_002",
				Name:        "Spotify Premium",
				Title:       "Music Streaming Service",
				Description: "Ad-free music streaming with offline downloads",
				Price:       price(9.99),
				Rating:      4.5,
				Category:    "music",
				Score:       88,
				Features:    []string{"Ad-Free", "Offline Mode", "70M+ Songs"},
			},
		},
	}
}
