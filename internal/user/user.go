package user

import "strings"

// Profile is the cached user profile kept under the userProfile key.
type Profile struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customerId,omitempty"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"` // free text, parsed heuristically into a delivery address
	Gender     string `json:"gender,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}

// Identifier returns the customer identifier the backend expects on orders.
func (p Profile) Identifier() string {
	if id := strings.TrimSpace(p.CustomerID); id != "" {
		return id
	}
	return strings.TrimSpace(p.ID)
}

// ProfilePatch carries the fields a user may change from the settings panel.
type ProfilePatch struct {
	Name    *string `json:"name,omitempty"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	Gender  *string `json:"gender,omitempty"`
}

func (p ProfilePatch) apply(dst Profile) Profile {
	if p.Name != nil {
		dst.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		dst.Email = strings.ToLower(strings.TrimSpace(*p.Email))
	}
	if p.Phone != nil {
		dst.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.Address != nil {
		dst.Address = strings.TrimSpace(*p.Address)
	}
	if p.Gender != nil {
		dst.Gender = strings.TrimSpace(*p.Gender)
	}
	return dst
}

func (p ProfilePatch) empty() bool {
	return p.Name == nil && p.Email == nil && p.Phone == nil && p.Address == nil && p.Gender == nil
}
