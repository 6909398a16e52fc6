package api

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the payload for login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// PreferencesRequest is the payload for saving dietary preferences.
type PreferencesRequest struct {
	DietaryRestrictions  []string `json:"dietary_restrictions"`
	Allergies            []string `json:"allergies"`
	CuisinePreferences   []string `json:"cuisine_preferences"`
	PreferredCookingTime int      `json:"preferred_cooking_time"`
	SpiceLevel           string   `json:"spice_level"`
}

// FridgeItemRequest is the payload for adding a fridge item.
type FridgeItemRequest struct {
	Name string `json:"name" binding:"required"`
}

// GenerateRequest is the payload for the preference-aware generation endpoint.
type GenerateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Language    string   `json:"language" binding:"required"`
}

// IdeateRequest is the payload for the simple generation endpoint. The
// restriction tag replaces stored preferences.
type IdeateRequest struct {
	Ingredients []string `json:"ingredients" binding:"required"`
	Language    string   `json:"language" binding:"required"`
	Restriction string   `json:"restriction"`
}

// GenerateMetadata describes how a recipe was produced.
type GenerateMetadata struct {
	IngredientsUsed    []string `json:"ingredients_used"`
	PreferencesApplied bool     `json:"preferences_applied"`
	Warnings           []string `json:"warnings"`
	Language           string   `json:"language"`
}

// GenerateResponse is the success body for POST /generate.
type GenerateResponse struct {
	Recipe   string           `json:"recipe"`
	Metadata GenerateMetadata `json:"metadata"`
}

// FeedEntry is one redacted item in the public activity feed.
type FeedEntry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"`
	Language    string   `json:"language"`
	CreatedAt   string   `json:"created_at"`
}

// FeedResponse is the body for GET /feed.
type FeedResponse struct {
	Entries []FeedEntry `json:"entries"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
}
