package adslot

type ToggleSlotRequest struct {
	SlotKey string `json:"slot_key" binding:"required"`
}

// ToggleResult reports which way the toggle went.
type ToggleResult struct {
	Action  string  `json:"action"` // "reserved" or "released"
	SlotKey string  `json:"slot_key"`
	Price   float64 `json:"price,omitempty"`
}

type SubmitContentRequest struct {
	SlotKey string `json:"slot_key" binding:"required"`
	Title   string `json:"title" binding:"required"`
	Link    string `json:"link"`
	FileURL string `json:"file_url"`
}

// SlotView is one agenda cell: the derived status plus the hour price.
type SlotView struct {
	SlotKey string        `json:"slot_key"`
	Status  DisplayStatus `json:"status"`
	Price   float64       `json:"price"`
}

type AgendaResponse struct {
	AdSpaceID int64      `json:"ad_space_id"`
	Date      string     `json:"date"`
	Slots     []SlotView `json:"slots"`
}

// BookingView is the sponsor's own booking including the stored status
// (a rejected booking shows as rejected here, unlike on the agenda).
type BookingView struct {
	AdSpaceID    int64   `json:"ad_space_id"`
	SlotKey      string  `json:"slot_key"`
	Status       string  `json:"status"`
	Price        float64 `json:"price"`
	Title        string  `json:"title,omitempty"`
	Link         string  `json:"link,omitempty"`
	FileURL      string  `json:"file_url,omitempty"`
	AdminComment string  `json:"admin_comment,omitempty"`
}

// DisplayCard is the public projection of one ad space for the current
// hour.
type DisplayCard struct {
	AdSpaceID int64  `json:"ad_space_id"`
	CardIndex int    `json:"card_index"`
	Title     string `json:"title"`
	ImageURL  string `json:"image_url"`
	Link      string `json:"link"`
	Sponsored bool   `json:"sponsored"`
}
