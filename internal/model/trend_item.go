package model

import "time"

// Seasons recognized by the trend predictor.
const (
	SeasonWinter = "winter"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
)

// TrendItem is one recorded demand signal: a keyword observed for a season,
// tagged with where it came from. The predictor ranks keywords by how often
// they were recorded, so the same keyword may appear many times.
type TrendItem struct {
	ID        int    `gorm:"primaryKey"`
	Season    string `gorm:"not null;index"`
	Keyword   string `gorm:"not null"`
	Source    string `gorm:"not null;default:manual"`
	Score     float64
	CreatedAt time.Time
}

// TableName overrides GORM's default pluralization.
func (TrendItem) TableName() string { return "trend_items" }
