package categorizer

import "github.com/himynameismarvin/budget-bop/internal/model"

// DefaultRules returns the seed categorization rules shipped with the
// application. Patterns are literal substrings unless noted; a rule matches
// if any pattern matches. Categories here follow common budgeting buckets;
// the caller's known-category filter hides any the user has not defined.
func DefaultRules() []model.CategoryRule {
	seed := func(id, name, category string, confidence float64, patterns ...string) model.CategoryRule {
		return model.CategoryRule{
			ID:         "seed-" + id,
			Name:       name,
			Category:   category,
			Patterns:   patterns,
			Confidence: confidence,
			IsActive:   true,
		}
	}

	return []model.CategoryRule{
		seed("groceries", "Grocery stores", "Groceries", 0.9,
			"walmart", "kroger", "safeway", "whole foods", "trader joe", "aldi", "costco", "grocery", "supermarket"),
		seed("dining", "Restaurants and coffee", "Dining Out", 0.9,
			"starbucks", "mcdonald", "chipotle", "subway", "dunkin", "restaurant", "cafe", "coffee", "pizza", "taco"),
		seed("delivery", "Food delivery", "Dining Out", 0.85,
			"doordash", "uber eats", "grubhub", "postmates"),
		seed("transport", "Rideshare and transit", "Transportation", 0.85,
			"uber", "lyft", "transit", "metro", "parking", "toll"),
		seed("fuel", "Gas stations", "Transportation", 0.85,
			"shell", "chevron", "exxon", "mobil", "bp", "fuel", "gas station"),
		seed("streaming", "Streaming subscriptions", "Entertainment", 0.95,
			"netflix", "hulu", "spotify", "disney", "hbo", "paramount"),
		seed("entertainment", "Events and media", "Entertainment", 0.8,
			"cinema", "theater", "ticketmaster", "steam", "playstation", "xbox"),
		seed("shopping", "Online and retail shopping", "Shopping", 0.8,
			"amazon", "amzn", "target", "ebay", "etsy", "best buy"),
		seed("home", "Home improvement", "Home", 0.85,
			"home depot", "lowes", "ikea", "ace hardware"),
		seed("health", "Pharmacy and medical", "Health", 0.85,
			"walgreens", "cvs", "pharmacy", "clinic", "dental", "medical"),
		seed("utilities", "Utility bills", "Utilities", 0.9,
			"electric", "water", "gas bill", "internet", "comcast", "verizon", "t-mobile", "at&t"),
		seed("rent", "Housing payments", "Housing", 0.9,
			"rent", "mortgage", "landlord", "property management"),
		seed("income", "Salary and deposits", "Income", 0.9,
			"payroll", "direct deposit", "salary", "paycheck"),
		seed("transfers", "Account transfers", "Transfers", 0.85,
			"transfer", "zelle", "venmo", "paypal"),
		seed("fees", "Bank fees and interest", "Fees & Charges", 0.85,
			"fee", "interest charge", "overdraft", "service charge"),
		seed("travel", "Flights and lodging", "Travel", 0.85,
			"airline", "airbnb", "hotel", "delta", "united", "southwest", "expedia"),
	}
}
