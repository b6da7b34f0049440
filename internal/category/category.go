package category

// Category groups the grocery catalog.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
}
