package banner

// Banner is a promotional slide on the shopping home screen.
type Banner struct {
	ID    string `json:"id"`
	Image string `json:"image"`
	Title string `json:"title,omitempty"`
	Link  string `json:"link,omitempty"`
}
