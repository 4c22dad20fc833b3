package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// SlotStatus is the persisted state of one claimed hour slot.
//
// A "reserved" row is only authoritative while the hold is younger than
// HoldDuration; readers must recompute availability from ReservedAt and
// must not trust the stored value verbatim.
type SlotStatus string

const (
	SlotReserved   SlotStatus = "reserved"
	SlotProcessing SlotStatus = "processing"
	SlotApproved   SlotStatus = "approved"
	SlotRejected   SlotStatus = "rejected"
)

// HoldDuration is how long a reserved slot blocks other sponsors before
// it becomes claimable again. Shared by the projection, the reservation
// handler and the reaper so all three agree on expiry.
const HoldDuration = 10 * time.Minute

const slotKeyLayout = "2006-01-02_15:00"

// SlotKeyFor formats the hour slot key for the given instant (UTC).
func SlotKeyFor(t time.Time) string {
	return t.UTC().Truncate(time.Hour).Format(slotKeyLayout)
}

// ParseSlotKey validates a "<yyyy-MM-dd>_<HH:00>" key and returns its
// hour of day, used to index the ad space price table.
func ParseSlotKey(key string) (time.Time, int, error) {
	t, err := time.Parse(slotKeyLayout, key)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("invalid slot key %q: %w", key, err)
	}
	return t, t.Hour(), nil
}

// HourlyPrices is a fixed 24-entry price table, one entry per hour of
// day. Stored as a JSON array in a single column.
type HourlyPrices [24]float64

func (p HourlyPrices) Value() (driver.Value, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *HourlyPrices) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	case nil:
		*p = HourlyPrices{}
		return nil
	}
	return errors.New("unsupported source type for hourly prices")
}

// AdSpace is one bookable advertising placement on an application page.
// Identity and price table are immutable after seeding; all mutation
// happens on its slot bookings.
type AdSpace struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name" validate:"required"`
	Page         string       `json:"page" validate:"required"`
	CardIndex    int          `json:"card_index"`
	HourlyPrices HourlyPrices `json:"hourly_prices" gorm:"type:text"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (AdSpace) TableName() string { return "ad_spaces" }

// PriceForHour returns the price for the given hour of day.
func (a *AdSpace) PriceForHour(hour int) float64 {
	if hour < 0 || hour > 23 {
		return 0
	}
	return a.HourlyPrices[hour]
}

// SlotBooking is the claim record for one slot key of one ad space.
// (AdSpaceID, SlotKey) is the primary key, so at most one claim can
// exist per slot; Version guards every update with compare-and-swap.
type SlotBooking struct {
	AdSpaceID    int64      `json:"ad_space_id" gorm:"primaryKey"`
	SlotKey      string     `json:"slot_key" gorm:"primaryKey;size:16"`
	Status       SlotStatus `json:"status"`
	SponsorID    int64      `json:"sponsor_id" gorm:"index"`
	Price        float64    `json:"price"`
	ReservedAt   time.Time  `json:"reserved_at"`
	Title        string     `json:"title,omitempty"`
	Link         string     `json:"link,omitempty"`
	FileURL      string     `json:"file_url,omitempty"`
	AdminComment string     `json:"admin_comment,omitempty" gorm:"type:text"`
	ReviewedAt   *time.Time `json:"reviewed_at,omitempty"`
	ReviewedBy   *int64     `json:"reviewed_by,omitempty"`
	Version      int64      `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (SlotBooking) TableName() string { return "slot_bookings" }

// HoldExpired reports whether a reserved hold has outlived HoldDuration.
// Always false for non-reserved rows.
func (b *SlotBooking) HoldExpired(now time.Time) bool {
	if b.Status != SlotReserved {
		return false
	}
	return !now.Before(b.ReservedAt.Add(HoldDuration))
}

// HasContent reports whether creative content has been attached.
func (b *SlotBooking) HasContent() bool {
	return b.Title != ""
}
