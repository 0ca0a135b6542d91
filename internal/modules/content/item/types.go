package item

// CreateItemDTO is the capture payload. Only the title is mandatory; a quick
// save should never bounce on missing metadata.
type CreateItemDTO struct {
	Title   string `json:"title" binding:"required"`
	Type    string `json:"type"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type UpdateItemDTO struct {
	Title    *string   `json:"title"`
	Type     *string   `json:"type"`
	URL      *string   `json:"url"`
	Content  *string   `json:"content"`
	Summary  *string   `json:"summary"`
	Tags     *[]string `json:"tags"`
	Category *string   `json:"category"`
	Pinned   *bool     `json:"pinned"`
}

// ListFilter narrows the item list. All fields are optional.
type ListFilter struct {
	Type     string
	Category string
	Tag      string
	Search   string
}
