package model

// Profile is a user account record as returned by the API.
type Profile struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// DisplayName returns the profile name, or a placeholder when the
// server record has none.
func (p *Profile) DisplayName() string {
	if p.Name == "" {
		return "Unnamed User"
	}
	return p.Name
}
