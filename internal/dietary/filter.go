package dietary

import "strings"

// FilterIngredients partitions ingredients into safe and flagged sets for the
// declared allergies. An ingredient is flagged when its lowercased text
// contains any keyword of any declared allergy. Input order is preserved in
// both outputs. This is advisory pre-filtering, not a safety guarantee.
func FilterIngredients(ingredients, allergies []string) (safe, flagged []string) {
	safe = make([]string, 0, len(ingredients))
	flagged = make([]string, 0)

	for _, ingredient := range ingredients {
		lower := strings.ToLower(ingredient)
		isFlagged := false

		for _, allergy := range allergies {
			for _, keyword := range keywordsForAllergy(allergy) {
				if strings.Contains(lower, keyword) {
					isFlagged = true
					break
				}
			}
			if isFlagged {
				break
			}
		}

		if isFlagged {
			flagged = append(flagged, ingredient)
		} else {
			safe = append(safe, ingredient)
		}
	}

	return safe, flagged
}
