package dietary

import (
	"fmt"
	"strings"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

// ValidateRecipe scans generated recipe text for allergen keywords per
// declared allergy and for meat or animal-product leakage when vegetarian or
// vegan is among the declared restrictions. Warnings are advisory: they are
// attached to the response, never enforced.
func ValidateRecipe(recipeText string, prefs *models.UserPreferences) (bool, []string) {
	warnings := []string{}
	if prefs == nil {
		return true, warnings
	}

	lower := strings.ToLower(recipeText)

	for _, allergy := range prefs.Allergies {
		var found []string
		for _, keyword := range keywordsForAllergy(allergy) {
			if strings.Contains(lower, keyword) {
				found = append(found, keyword)
			}
		}
		if len(found) > 0 {
			warnings = append(warnings, fmt.Sprintf("Recipe may contain %s allergen: %s", allergy, strings.Join(found, ", ")))
		}
	}

	if containsTag(prefs.DietaryRestrictions, "vegetarian") {
		if found := matchKeywords(lower, meatKeywords); len(found) > 0 {
			warnings = append(warnings, fmt.Sprintf("Recipe may not be vegetarian: contains %s", strings.Join(found, ", ")))
		}
	}

	if containsTag(prefs.DietaryRestrictions, "vegan") {
		if found := matchKeywords(lower, animalProductKeywords); len(found) > 0 {
			warnings = append(warnings, fmt.Sprintf("Recipe may not be vegan: contains %s", strings.Join(found, ", ")))
		}
	}

	return len(warnings) == 0, warnings
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func matchKeywords(lowerText string, keywords []string) []string {
	var found []string
	for _, keyword := range keywords {
		if strings.Contains(lowerText, keyword) {
			found = append(found, keyword)
		}
	}
	return found
}
