package match

// Keyword maps a product-name fragment to a category. Label is the
// canonical subcategory name proposed when no existing subcategory matches.
type Keyword struct {
	Keyword    string
	Category   string
	Label      string
	Confidence float64
}

// DefaultKeywords returns the static keyword table. Order is load-bearing:
// matching takes the first containment hit in table order, so more specific
// fragments sit above the generic ones that would shadow them.
func DefaultKeywords() []Keyword {
	return []Keyword{
		// Home and fabric care
		{Keyword: "detergent", Category: "Home Care", Label: "Detergent", Confidence: 0.9},
		{Keyword: "fabric softener", Category: "Home Care", Label: "Fabric Care", Confidence: 0.9},
		{Keyword: "dishwash", Category: "Home Care", Label: "Dishwashing", Confidence: 0.85},
		{Keyword: "floor cleaner", Category: "Home Care", Label: "Floor Cleaners", Confidence: 0.85},
		{Keyword: "toilet cleaner", Category: "Home Care", Label: "Toilet Cleaners", Confidence: 0.85},
		{Keyword: "bleach", Category: "Home Care", Label: "Bleach", Confidence: 0.8},

		// Personal care
		{Keyword: "shampoo", Category: "Personal Care", Label: "Hair Care", Confidence: 0.9},
		{Keyword: "conditioner", Category: "Personal Care", Label: "Hair Care", Confidence: 0.85},
		{Keyword: "toothpaste", Category: "Personal Care", Label: "Oral Care", Confidence: 0.9},
		{Keyword: "toothbrush", Category: "Personal Care", Label: "Oral Care", Confidence: 0.9},
		{Keyword: "soap", Category: "Personal Care", Label: "Bath & Body", Confidence: 0.85},
		{Keyword: "face wash", Category: "Personal Care", Label: "Skin Care", Confidence: 0.85},
		{Keyword: "lotion", Category: "Personal Care", Label: "Skin Care", Confidence: 0.8},
		{Keyword: "deodorant", Category: "Personal Care", Label: "Deodorants", Confidence: 0.85},

		// Beverages
		{Keyword: "green tea", Category: "Beverages", Label: "Tea", Confidence: 0.9},
		{Keyword: "tea", Category: "Beverages", Label: "Tea", Confidence: 0.85},
		{Keyword: "coffee", Category: "Beverages", Label: "Coffee", Confidence: 0.9},
		{Keyword: "juice", Category: "Beverages", Label: "Juices", Confidence: 0.85},
		{Keyword: "soda", Category: "Beverages", Label: "Soft Drinks", Confidence: 0.8},
		{Keyword: "cola", Category: "Beverages", Label: "Soft Drinks", Confidence: 0.8},
		{Keyword: "water bottle", Category: "Beverages", Label: "Water", Confidence: 0.8},

		// Dairy
		{Keyword: "milk", Category: "Dairy", Label: "Milk", Confidence: 0.9},
		{Keyword: "cheese", Category: "Dairy", Label: "Cheese", Confidence: 0.9},
		{Keyword: "butter", Category: "Dairy", Label: "Butter & Spreads", Confidence: 0.85},
		{Keyword: "yogurt", Category: "Dairy", Label: "Yogurt", Confidence: 0.85},
		{Keyword: "curd", Category: "Dairy", Label: "Yogurt", Confidence: 0.8},
		{Keyword: "paneer", Category: "Dairy", Label: "Paneer", Confidence: 0.85},

		// Staples
		{Keyword: "basmati", Category: "Grocery Staples", Label: "Rice", Confidence: 0.9},
		{Keyword: "rice", Category: "Grocery Staples", Label: "Rice", Confidence: 0.85},
		{Keyword: "flour", Category: "Grocery Staples", Label: "Flour", Confidence: 0.85},
		{Keyword: "atta", Category: "Grocery Staples", Label: "Flour", Confidence: 0.85},
		{Keyword: "sugar", Category: "Grocery Staples", Label: "Sugar", Confidence: 0.85},
		{Keyword: "salt", Category: "Grocery Staples", Label: "Salt", Confidence: 0.8},
		{Keyword: "oil", Category: "Grocery Staples", Label: "Cooking Oil", Confidence: 0.75},
		{Keyword: "lentil", Category: "Grocery Staples", Label: "Pulses", Confidence: 0.85},
		{Keyword: "dal", Category: "Grocery Staples", Label: "Pulses", Confidence: 0.8},

		// Snacks
		{Keyword: "chips", Category: "Snacks", Label: "Chips", Confidence: 0.85},
		{Keyword: "biscuit", Category: "Snacks", Label: "Biscuits", Confidence: 0.85},
		{Keyword: "cookie", Category: "Snacks", Label: "Biscuits", Confidence: 0.85},
		{Keyword: "chocolate", Category: "Snacks", Label: "Chocolates", Confidence: 0.85},
		{Keyword: "namkeen", Category: "Snacks", Label: "Namkeen", Confidence: 0.8},
		{Keyword: "noodles", Category: "Snacks", Label: "Instant Food", Confidence: 0.8},

		// Electronics
		{Keyword: "headphone", Category: "Electronics", Label: "Audio", Confidence: 0.9},
		{Keyword: "earbud", Category: "Electronics", Label: "Audio", Confidence: 0.85},
		{Keyword: "charger", Category: "Electronics", Label: "Accessories", Confidence: 0.85},
		{Keyword: "phone", Category: "Electronics", Label: "Mobile Phones", Confidence: 0.85},
		{Keyword: "laptop", Category: "Electronics", Label: "Computers", Confidence: 0.9},
		{Keyword: "battery", Category: "Electronics", Label: "Batteries", Confidence: 0.8},
		{Keyword: "bulb", Category: "Electronics", Label: "Lighting", Confidence: 0.75},
	}
}
