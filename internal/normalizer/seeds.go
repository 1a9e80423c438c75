package normalizer

import "github.com/himynameismarvin/budget-bop/internal/model"

// DefaultRules returns the seed normalization rules shipped with the
// application. Seeds are deliberately conservative: they cover vendors whose
// statement text is noisy but unambiguous. None are user-defined, so their
// matches always carry the review flag until the user confirms them.
func DefaultRules() []model.NormalizationRule {
	seed := func(id, pattern, name string, confidence float64) model.NormalizationRule {
		return model.NormalizationRule{
			ID:             "seed-" + id,
			Pattern:        pattern,
			NormalizedName: name,
			Confidence:     confidence,
		}
	}
	seedRegex := func(id, pattern, name string, confidence float64) model.NormalizationRule {
		r := seed(id, pattern, name, confidence)
		r.IsRegex = true
		return r
	}

	return []model.NormalizationRule{
		seed("starbucks", "starbucks", "Starbucks", 0.9),
		seed("walmart", "walmart", "Walmart", 0.9),
		seed("target", "target", "Target", 0.85),
		seed("costco", "costco", "Costco", 0.9),
		seed("kroger", "kroger", "Kroger", 0.9),
		seed("whole-foods", "whole foods", "Whole Foods Market", 0.9),
		seed("trader-joes", "trader joe", "Trader Joe's", 0.9),
		seed("safeway", "safeway", "Safeway", 0.9),
		seed("mcdonalds", "mcdonald", "McDonald's", 0.9),
		seed("chipotle", "chipotle", "Chipotle", 0.9),
		seed("subway", "subway", "Subway", 0.8),
		seed("dunkin", "dunkin", "Dunkin'", 0.85),
		seed("home-depot", "home depot", "The Home Depot", 0.9),
		seed("lowes", "lowes", "Lowe's", 0.85),
		seed("walgreens", "walgreens", "Walgreens", 0.9),
		seed("cvs", "cvs", "CVS Pharmacy", 0.85),
		seed("shell", "shell", "Shell", 0.8),
		seed("chevron", "chevron", "Chevron", 0.85),
		seed("netflix", "netflix", "Netflix", 0.95),
		seed("spotify", "spotify", "Spotify", 0.95),
		seed("hulu", "hulu", "Hulu", 0.9),
		seed("apple", "apple.com", "Apple", 0.85),
		seed("google", "google", "Google", 0.8),
		seed("uber-eats", "uber eats", "Uber Eats", 0.9),
		seed("doordash", "doordash", "DoorDash", 0.9),
		seed("grubhub", "grubhub", "Grubhub", 0.9),
		seed("lyft", "lyft", "Lyft", 0.9),
		seedRegex("amazon", `^(amzn|amazon)`, "Amazon", 0.9),
		seedRegex("uber", `^uber(\s|$)`, "Uber", 0.85),
		seedRegex("paypal", `^paypal`, "PayPal", 0.75),
		seedRegex("venmo", `^venmo`, "Venmo", 0.85),
	}
}
