package ai

// ItemMetadata is the enrichment result persisted onto an item. Always
// complete: when the model path fails, every field is filled heuristically.
type ItemMetadata struct {
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
	// FromModel reports whether the metadata came from the model (true) or
	// the offline heuristics (false).
	FromModel bool `json:"from_model"`
}

// enrichOutput is the JSON shape the enrichment prompt asks the model for.
type enrichOutput struct {
	Summary  string   `json:"summary"`
	Tags     []string `json:"tags"`
	Category string   `json:"category"`
}

// Answer is a question-answering result with its resolved citations.
type Answer struct {
	Text    string               `json:"answer"`
	Sources []ConversationSource `json:"sources"`
}

// ConversationSource identifies a stash item an answer drew on.
type ConversationSource struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Type    string `json:"type"`
	Summary string `json:"summary,omitempty"`
}

type askDTO struct {
	Question string `json:"question" binding:"required"`
}

type enrichDTO struct {
	ItemID string `json:"item_id" binding:"required"`
}

// EnrichPayload is the task-queue payload for a background enrichment.
type EnrichPayload struct {
	ItemID string `json:"item_id"`
	UserID string `json:"user_id"`
}
