// Package dietary holds the pure text logic behind recipe generation:
// allergy filtering of ingredient lists, prompt assembly, and post-hoc
// scanning of generated recipes for allergen or restriction leakage.
package dietary

// allergenKeywords expands an allergy tag into the ingredient keywords it
// covers. Matching is substring containment on lowercased text, so it
// over-matches ("peanut butter" matches "peanut", and so does "peanut-free").
// Tags without an entry fall back to the tag string itself.
var allergenKeywords = map[string][]string{
	"nuts":      {"almond", "walnut", "pecan", "cashew", "pistachio", "hazelnut", "macadamia"},
	"peanuts":   {"peanut", "groundnut"},
	"dairy":     {"milk", "cheese", "butter", "cream", "yogurt", "whey", "casein"},
	"eggs":      {"egg", "mayonnaise", "meringue"},
	"shellfish": {"shrimp", "crab", "lobster", "oyster", "mussel", "clam", "scallop"},
	"fish":      {"salmon", "tuna", "cod", "bass", "trout", "mackerel", "anchovy"},
	"soy":       {"soy", "tofu", "tempeh", "miso", "edamame"},
}

var restrictionDescriptions = map[string]string{
	"vegetarian":  "vegetarian (no meat or fish)",
	"vegan":       "vegan (no animal products)",
	"gluten-free": "gluten-free (no wheat, barley, rye)",
	"keto":        "ketogenic (low carb, high fat)",
	"paleo":       "paleo (no grains, legumes, dairy)",
	"low-sodium":  "low sodium",
	"diabetic":    "diabetic-friendly (low sugar, controlled carbs)",
}

var allergyDescriptions = map[string]string{
	"nuts":      "tree nuts",
	"peanuts":   "peanuts",
	"dairy":     "dairy products",
	"eggs":      "eggs",
	"shellfish": "shellfish",
	"fish":      "fish",
	"soy":       "soy products",
}

var cuisineDescriptions = map[string]string{
	"italian":       "Italian",
	"asian":         "Asian (Chinese, Japanese, Thai, Korean)",
	"mexican":       "Mexican",
	"indian":        "Indian",
	"mediterranean": "Mediterranean",
	"american":      "American",
}

var cookingTimeDescriptions = map[int]string{
	15: "quick (15 minutes or less)",
	30: "moderate (around 30 minutes)",
	45: "standard (45 minutes)",
	60: "elaborate (about 1 hour)",
	90: "complex (1.5+ hours)",
}

var spiceDescriptions = map[string]string{
	"mild":   "mild (minimal spice)",
	"medium": "medium spice level",
	"spicy":  "spicy (high heat level)",
}

// Leakage keywords for post-generation validation of category restrictions.
var meatKeywords = []string{"chicken", "beef", "pork", "lamb", "fish", "meat"}

var animalProductKeywords = []string{"chicken", "beef", "pork", "fish", "milk", "cheese", "butter", "egg", "honey"}

func keywordsForAllergy(allergy string) []string {
	if kws, ok := allergenKeywords[allergy]; ok {
		return kws
	}
	return []string{allergy}
}
