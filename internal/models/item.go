package models

// ItemType classifies a captured item.
type ItemType string

const (
	ItemNote    ItemType = "note"
	ItemLink    ItemType = "link"
	ItemInsight ItemType = "insight"
)

// ItemModel is a single captured note/link/insight belonging to a user.
// Summary, Tags and Category are filled by the AI enrichment pipeline (or its
// heuristic fallback) after the row is created; the save itself never waits
// on enrichment.
type ItemModel struct {
	Base
	UserID   string      `json:"-"        gorm:"index;not null"`
	Title    string      `json:"title"    gorm:"not null"`
	Type     ItemType    `json:"type"     gorm:"index;default:'note'"`
	URL      string      `json:"url"`
	Content  string      `json:"content"  gorm:"type:longtext"`
	Summary  string      `json:"summary"  gorm:"type:text"`
	Tags     StringArray `json:"tags"     gorm:"type:longtext"`
	Category string      `json:"category" gorm:"index"`
	Enriched bool        `json:"enriched" gorm:"default:false"`
	Pinned   bool        `json:"pinned"   gorm:"default:false"`
}

func (ItemModel) TableName() string { return "items" }
