package events

import "time"

// AdEvent is the payload published to the ad analytics topic for every
// impression served and click received on a public page.
type AdEvent struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	AdSpaceID  int64     `json:"ad_space_id"`
	Page       string    `json:"page"`
	SlotKey    string    `json:"slot_key"`
	Sponsored  bool      `json:"sponsored"`
	SponsorID  int64     `json:"sponsor_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}
