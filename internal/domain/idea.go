package domain

// VisualElementIdea is a short visual-element suggestion for a banner topic.
// Ideas live only inside a generation session; uniqueness is by text value.
type VisualElementIdea struct {
	Text          string `json:"text"`
	Checked       bool   `json:"is_checked"`
	UserSubmitted bool   `json:"is_user_submitted"`
}
