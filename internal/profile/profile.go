package profile

// Profile carries the study-profile fields used to personalize prompts.
// A zero-value Profile is valid and means "no personalization".
type Profile struct {
	UserID string   `json:"user_id"`
	Majors []string `json:"majors"`
	Year   string   `json:"year"`
}
