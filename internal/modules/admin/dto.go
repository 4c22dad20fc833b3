package admin

import "panedelivery/internal/domain"

type RejectProfileRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type ReviewBookingRequest struct {
	AdSpaceID int64  `json:"ad_space_id" binding:"required"`
	SlotKey   string `json:"slot_key" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewQueueItem is one processing booking awaiting moderation.
type ReviewQueueItem struct {
	AdSpaceID int64   `json:"ad_space_id"`
	SlotKey   string  `json:"slot_key"`
	SponsorID int64   `json:"sponsor_id"`
	Price     float64 `json:"price"`
	Title     string  `json:"title"`
	Link      string  `json:"link,omitempty"`
	FileURL   string  `json:"file_url,omitempty"`
}

type VerificationQueue struct {
	Users []domain.User `json:"users"`
	Total int64         `json:"total"`
}

// SpaceStatistics aggregates delivery counters for one ad space.
type SpaceStatistics struct {
	AdSpaceID   int64 `json:"ad_space_id"`
	Impressions int64 `json:"impressions"`
	Clicks      int64 `json:"clicks"`
}
