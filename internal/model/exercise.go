package model

// Exercise is one entry of the daily rotation. VideoURL is an opaque embed
// locator returned by the video CDN after upload; the backend never inspects
// the media itself. Exercises are soft-deactivated (Active=false), never
// deleted, so past completions keep a valid reference.
// swagger:model Exercise
type Exercise struct {
	BaseModel
	Title           string `gorm:"size:200;not null" json:"title"`
	Description     string `gorm:"type:text" json:"description,omitempty"`
	VideoURL        string `gorm:"size:500;not null" json:"videoUrl"`
	DurationSeconds int    `gorm:"default:0" json:"durationSeconds,omitempty"`
	Difficulty      string `gorm:"size:50" json:"difficulty,omitempty"`
	DayOrder        int    `gorm:"not null;index" json:"dayOrder"`
	Active          bool   `gorm:"default:true;index" json:"active"`
}

func (Exercise) TableName() string {
	return "exercises"
}
