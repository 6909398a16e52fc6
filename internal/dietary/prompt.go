package dietary

import (
	"fmt"
	"strings"

	"github.com/jiwpark00/what-to-cook-backend/internal/models"
)

// Canned restriction sentences for the simple tag-based prompt. Unknown tags
// fall back to the "none" sentence, so a bad tag fails open rather than
// rejecting the request.
var simpleRestrictionClauses = map[string]string{
	"none":        "There are no dietary restrictions.",
	"nut_allergy": "The dish must be completely free of nuts and peanuts.",
	"gluten":      "The dish must be gluten-free.",
	"vegetarian":  "The dish must be vegetarian with no meat or fish.",
}

const promptFormatDirective = `

Format your response with:
- Recipe name
- Brief description
- Ingredients list with quantities
- Step-by-step instructions
- Estimated cooking time
- Difficulty level (Easy/Medium/Hard)
- Any dietary notes or substitution suggestions`

// BuildSimplePrompt assembles the tag-based prompt variant: ingredients, one
// canned restriction sentence, a short practical ask, and the response
// language. Pure function; identical inputs yield identical output.
func BuildSimplePrompt(ingredients []string, language, restriction string) string {
	clause, ok := simpleRestrictionClauses[restriction]
	if !ok {
		clause = simpleRestrictionClauses["none"]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have these ingredients: %s.\n", strings.Join(ingredients, ", "))
	b.WriteString(clause + "\n")
	b.WriteString("Suggest a dish and up to 3 things I could buy easily at a local grocery store to make this dish.\n")
	fmt.Fprintf(&b, "Respond in %s. If no language is given, respond in English.\n", language)
	b.WriteString("Keep it short and practical.\n")
	b.WriteString("Begin your answer by stating which dietary restriction was honored.")
	return b.String()
}

// BuildEnhancedPrompt assembles the full-preferences prompt. Clauses are
// appended in a fixed order and any empty preference category contributes no
// clause. Pure function; identical inputs yield identical output.
func BuildEnhancedPrompt(ingredients []string, language string, prefs *models.UserPreferences) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Create a creative recipe using these ingredients: %s.", strings.Join(ingredients, ", "))

	if prefs != nil && len(prefs.DietaryRestrictions) > 0 {
		restrictions := make([]string, 0, len(prefs.DietaryRestrictions))
		for _, r := range prefs.DietaryRestrictions {
			if desc, ok := restrictionDescriptions[r]; ok {
				restrictions = append(restrictions, desc)
			} else {
				restrictions = append(restrictions, r)
			}
		}
		fmt.Fprintf(&b, " The recipe must be %s.", strings.Join(restrictions, " and "))
	}

	if prefs != nil && len(prefs.Allergies) > 0 {
		allergies := make([]string, 0, len(prefs.Allergies))
		for _, a := range prefs.Allergies {
			if desc, ok := allergyDescriptions[a]; ok {
				allergies = append(allergies, desc)
			} else {
				allergies = append(allergies, a)
			}
		}
		fmt.Fprintf(&b, " IMPORTANT: This recipe must NOT contain %s as the person is allergic.", strings.Join(allergies, ", "))
	}

	if prefs != nil && len(prefs.CuisinePreferences) > 0 {
		cuisines := make([]string, 0, len(prefs.CuisinePreferences))
		for _, c := range prefs.CuisinePreferences {
			if desc, ok := cuisineDescriptions[c]; ok {
				cuisines = append(cuisines, desc)
			} else {
				cuisines = append(cuisines, c)
			}
		}
		fmt.Fprintf(&b, " Try to incorporate flavors and cooking techniques from these cuisines: %s.", strings.Join(cuisines, ", "))
	}

	if prefs != nil && prefs.PreferredCookingTime > 0 {
		desc, ok := cookingTimeDescriptions[prefs.PreferredCookingTime]
		if !ok {
			desc = fmt.Sprintf("about %d minutes", prefs.PreferredCookingTime)
		}
		fmt.Fprintf(&b, " The recipe should take %s to prepare and cook.", desc)
	}

	if prefs != nil && prefs.SpiceLevel != "" {
		desc, ok := spiceDescriptions[prefs.SpiceLevel]
		if !ok {
			desc = prefs.SpiceLevel
		}
		fmt.Fprintf(&b, " Make the recipe %s.", desc)
	}

	fmt.Fprintf(&b, " Please provide the recipe in %s.", language)
	b.WriteString(promptFormatDirective)

	return b.String()
}
