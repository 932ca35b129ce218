// Package catalog holds the static gift-card catalog shown by the filter
// sheet: categories, brands and price ranges.
package catalog

// CategoryAll selects every category. It is exclusive with the others.
const CategoryAll = "all"

// MaxPrice is the upper bound used when no maximum price is given.
const MaxPrice = 999999

// Category groups brands.
type Category struct {
	ID   string
	Name string
	Icon string
}

// Brand is a gift-card issuer.
type Brand struct {
	ID       string
	Name     string
	Category string
}

// PriceRange is a preset price filter, in manat.
type PriceRange struct {
	ID    string
	Label string
	Min   float64
	Max   float64
}

var categories = []Category{
	{ID: CategoryAll, Name: "Hamısı", Icon: "grid-outline"},
	{ID: "clothing", Name: "Geyim", Icon: "shirt-outline"},
	{ID: "books", Name: "Kitab", Icon: "book-outline"},
	{ID: "electronics", Name: "Elektronika", Icon: "phone-portrait-outline"},
	{ID: "beauty", Name: "Gözəllik", Icon: "sparkles-outline"},
	{ID: "entertainment", Name: "Əyləncə", Icon: "game-controller-outline"},
	{ID: "sports", Name: "İdman", Icon: "basketball-outline"},
	{ID: "food", Name: "Yemək", Icon: "restaurant-outline"},
	{ID: "travel", Name: "Səyahət", Icon: "airplane-outline"},
}

var brands = []Brand{
	{ID: "adidas", Name: "Adidas", Category: "clothing"},
	{ID: "puma", Name: "Puma", Category: "clothing"},
	{ID: "nike", Name: "Nike", Category: "clothing"},
	{ID: "alinino", Name: "Ali & Nino", Category: "books"},
	{ID: "samsung", Name: "Samsung", Category: "electronics"},
	{ID: "apple", Name: "Apple", Category: "electronics"},
	{ID: "xiaomi", Name: "Xiaomi", Category: "electronics"},
	{ID: "loreal", Name: "L'Oréal", Category: "beauty"},
	{ID: "chanel", Name: "Chanel", Category: "beauty"},
	{ID: "maybelline", Name: "Maybelline", Category: "beauty"},
	{ID: "mcdonalds", Name: "McDonald's", Category: "food"},
	{ID: "kfc", Name: "KFC", Category: "food"},
	{ID: "starbucks", Name: "Starbucks", Category: "food"},
	{ID: "playstation", Name: "PlayStation", Category: "entertainment"},
	{ID: "netflix", Name: "Netflix", Category: "entertainment"},
	{ID: "spotify", Name: "Spotify", Category: "entertainment"},
}

var priceRanges = []PriceRange{
	{ID: "under25", Label: "25 ₼-dən aşağı", Min: 0, Max: 25},
	{ID: "25-50", Label: "25 - 50 ₼", Min: 25, Max: 50},
	{ID: "50-100", Label: "50 - 100 ₼", Min: 50, Max: 100},
	{ID: "100-200", Label: "100 - 200 ₼", Min: 100, Max: 200},
	{ID: "over200", Label: "200 ₼-dən yuxarı", Min: 200, Max: MaxPrice},
}

// Categories returns the categories in display order.
func Categories() []Category { return append([]Category(nil), categories...) }

// Brands returns every brand in display order.
func Brands() []Brand { return append([]Brand(nil), brands...) }

// PriceRanges returns the preset price ranges, cheapest first.
func PriceRanges() []PriceRange { return append([]PriceRange(nil), priceRanges...) }

// CategoryByID looks up a category.
func CategoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// BrandByID looks up a brand.
func BrandByID(id string) (Brand, bool) {
	for _, b := range brands {
		if b.ID == id {
			return b, true
		}
	}
	return Brand{}, false
}

// PriceRangeByID looks up a preset price range.
func PriceRangeByID(id string) (PriceRange, bool) {
	for _, r := range priceRanges {
		if r.ID == id {
			return r, true
		}
	}
	return PriceRange{}, false
}
