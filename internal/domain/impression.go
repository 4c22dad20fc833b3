package domain

import "time"

// Ad event kinds as published on the analytics topic.
const (
	AdEventImpression = "impression"
	AdEventClick      = "click"
)

// AdImpression is one delivered impression or click, persisted by the
// analytics consumer. EventID deduplicates redelivered messages.
type AdImpression struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	EventID    string    `json:"event_id" gorm:"uniqueIndex;size:36"`
	Kind       string    `json:"kind"`
	AdSpaceID  int64     `json:"ad_space_id" gorm:"index"`
	Page       string    `json:"page"`
	SlotKey    string    `json:"slot_key" gorm:"size:16"`
	Sponsored  bool      `json:"sponsored"`
	SponsorID  int64     `json:"sponsor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func (AdImpression) TableName() string { return "ad_impressions" }
