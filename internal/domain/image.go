package domain

import "time"

// GeneratedImageRecord is the persisted outcome of one successful backend
// call. Saved flips from false to true exactly once when the user adds the
// banner to their library; unsaved records are swept after the retention age.
type GeneratedImageRecord struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	TemplateID string    `json:"template_id,omitempty"`
	URL        string    `json:"url"`
	UserPrompt string    `json:"user_prompt"`
	Seed       int       `json:"seed,omitempty"`
	Resolution string    `json:"resolution"`
	PostTopic  string    `json:"post_topic,omitempty"`
	Saved      bool      `json:"saved"`
	CreatedAt  time.Time `json:"created_at"`
}

// RetentionAge is how long an unsaved record survives before the sweeper
// deletes it.
const RetentionAge = 23 * time.Hour
