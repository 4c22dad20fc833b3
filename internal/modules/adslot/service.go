package adslot

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"panedelivery/internal/domain"
	"panedelivery/internal/metrics"
	"panedelivery/internal/repository"
)

// Service implements the sponsor agenda workflow: claiming and
// releasing hour slots, converting holds to bookings under review, and
// attaching creative content.
type Service struct {
	slots    SlotRepository
	spaces   AdSpaceRepository
	notifier SlotNotifier
	log      *logrus.Logger
	now      Clock
}

func NewService(slots SlotRepository, spaces AdSpaceRepository, notifier SlotNotifier, log *logrus.Logger, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		slots:    slots,
		spaces:   spaces,
		notifier: notifier,
		log:      log,
		now:      now,
	}
}

func (s *Service) broadcast(adSpaceID int64, slotKey string, status DisplayStatus) {
	if s.notifier != nil {
		s.notifier.BroadcastSlot(adSpaceID, slotKey, string(status))
	}
}

func (s *Service) broadcastRefresh(adSpaceID int64) {
	if s.notifier != nil {
		s.notifier.BroadcastRefresh(adSpaceID)
	}
}

// ToggleSlot claims an available-or-expired slot for the sponsor, or
// releases the sponsor's own still-held reservation. Exactly one of
// the concurrent claimers of a slot wins; the others get
// ErrSlotConflict and must re-read the agenda.
func (s *Service) ToggleSlot(ctx context.Context, adSpaceID int64, slotKey string, sponsorID int64) (*ToggleResult, error) {
	_, hour, err := domain.ParseSlotKey(slotKey)
	if err != nil {
		return nil, ErrValidation
	}

	space, err := s.spaces.GetByID(ctx, adSpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	price := space.PriceForHour(hour)
	now := s.now()

	existing, err := s.slots.Get(ctx, adSpaceID, slotKey)
	if err != nil {
		return nil, err
	}

	switch {
	case existing == nil:
		b := &domain.SlotBooking{
			AdSpaceID:  adSpaceID,
			SlotKey:    slotKey,
			Status:     domain.SlotReserved,
			SponsorID:  sponsorID,
			Price:      price,
			ReservedAt: now,
		}
		if err := s.slots.Insert(ctx, b); err != nil {
			if errors.Is(err, repository.ErrDuplicateSlot) {
				metrics.SlotReservations.WithLabelValues("conflict").Inc()
				return nil, ErrSlotConflict
			}
			return nil, err
		}
		metrics.SlotReservations.WithLabelValues("reserved").Inc()
		s.broadcast(adSpaceID, slotKey, StatusBooked)
		return &ToggleResult{Action: "reserved", SlotKey: slotKey, Price: price}, nil

	case existing.Status == domain.SlotReserved && !existing.HoldExpired(now) && existing.SponsorID == sponsorID:
		err := s.slots.DeleteReserved(ctx, adSpaceID, slotKey, sponsorID, existing.Version)
		if err != nil {
			if errors.Is(err, repository.ErrStaleSlot) {
				return nil, ErrSlotConflict
			}
			return nil, err
		}
		metrics.SlotReservations.WithLabelValues("released").Inc()
		s.broadcast(adSpaceID, slotKey, StatusAvailable)
		return &ToggleResult{Action: "released", SlotKey: slotKey}, nil

	case existing.Status == domain.SlotReserved && existing.HoldExpired(now):
		b := &domain.SlotBooking{
			AdSpaceID:  adSpaceID,
			SlotKey:    slotKey,
			SponsorID:  sponsorID,
			Price:      price,
			ReservedAt: now,
		}
		if err := s.slots.ReclaimExpired(ctx, b, existing.Version, now); err != nil {
			if errors.Is(err, repository.ErrStaleSlot) {
				metrics.SlotReservations.WithLabelValues("conflict").Inc()
				return nil, ErrSlotConflict
			}
			return nil, err
		}
		metrics.SlotReservations.WithLabelValues("reserved").Inc()
		s.broadcast(adSpaceID, slotKey, StatusBooked)
		return &ToggleResult{Action: "reserved", SlotKey: slotKey, Price: price}, nil

	default:
		// Unexpired foreign hold, or a row already under admin control
		// (processing, approved, rejected).
		metrics.SlotReservations.WithLabelValues("conflict").Inc()
		return nil, ErrSlotConflict
	}
}

// Purchase converts every unexpired hold the sponsor has on one ad
// space to processing, handing it to the admin review queue. No
// payment is taken; this is a workflow transition only.
func (s *Service) Purchase(ctx context.Context, adSpaceID, sponsorID int64) (int64, error) {
	if _, err := s.spaces.GetByID(ctx, adSpaceID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	count, err := s.slots.ConvertReserved(ctx, adSpaceID, sponsorID, s.now())
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, ErrNoValidSlots
	}

	metrics.SlotPurchases.Add(float64(count))
	s.log.WithFields(logrus.Fields{
		"ad_space_id": adSpaceID,
		"sponsor_id":  sponsorID,
		"slots":       count,
	}).Info("slots purchased")

	// Individual keys are not known after the bulk update; subscribers
	// re-read the day on a refresh.
	s.broadcastRefresh(adSpaceID)
	return count, nil
}

// SubmitContent overwrites the creative content of a booking the
// sponsor owns and moves it (back) into the review queue, discarding
// any previous admin feedback.
func (s *Service) SubmitContent(ctx context.Context, adSpaceID int64, sponsorID int64, req SubmitContentRequest) error {
	if err := validateContent(req); err != nil {
		return err
	}

	b, err := s.slots.Get(ctx, adSpaceID, req.SlotKey)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if b.SponsorID != sponsorID {
		return ErrForbidden
	}
	if b.Status != domain.SlotProcessing && b.Status != domain.SlotRejected {
		return ErrSlotState
	}

	updated := &domain.SlotBooking{
		AdSpaceID: adSpaceID,
		SlotKey:   req.SlotKey,
		Title:     strings.TrimSpace(req.Title),
		Link:      req.Link,
		FileURL:   req.FileURL,
	}
	if err := s.slots.UpdateContent(ctx, updated, b.Version, s.now()); err != nil {
		if errors.Is(err, repository.ErrStaleSlot) {
			return ErrSlotConflict
		}
		return err
	}

	s.broadcast(adSpaceID, req.SlotKey, StatusProcessing)
	return nil
}

func validateContent(req SubmitContentRequest) error {
	title := strings.TrimSpace(req.Title)
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		return ErrValidation
	}
	if !validOptionalURL(req.Link) || !validOptionalURL(req.FileURL) {
		return ErrValidation
	}
	return nil
}

func validOptionalURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Agenda projects one calendar day of one ad space for the viewer: all
// 24 slot keys with derived status and hour price.
func (s *Service) Agenda(ctx context.Context, adSpaceID int64, date string, viewerID int64) (*AgendaResponse, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, ErrValidation
	}

	space, err := s.spaces.GetByID(ctx, adSpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	bookings, err := s.slots.ListBySpaceDay(ctx, adSpaceID, date)
	if err != nil {
		return nil, err
	}
	byKey := make(map[string]*domain.SlotBooking, len(bookings))
	for i := range bookings {
		byKey[bookings[i].SlotKey] = &bookings[i]
	}

	now := s.now()
	slots := make([]SlotView, 0, 24)
	for hour := 0; hour < 24; hour++ {
		key := domain.SlotKeyFor(time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC))
		slots = append(slots, SlotView{
			SlotKey: key,
			Status:  DeriveStatus(byKey[key], now, viewerID),
			Price:   space.PriceForHour(hour),
		})
	}

	return &AgendaResponse{AdSpaceID: adSpaceID, Date: date, Slots: slots}, nil
}

// MyBookings lists the sponsor's bookings across all ad spaces with
// their stored status, including rejections and admin comments.
func (s *Service) MyBookings(ctx context.Context, sponsorID int64) ([]BookingView, error) {
	bookings, err := s.slots.ListBySponsor(ctx, sponsorID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]BookingView, 0, len(bookings))
	for _, b := range bookings {
		if b.HoldExpired(now) {
			// An expired hold is dead inventory, not a booking.
			continue
		}
		out = append(out, BookingView{
			AdSpaceID:    b.AdSpaceID,
			SlotKey:      b.SlotKey,
			Status:       string(b.Status),
			Price:        b.Price,
			Title:        b.Title,
			Link:         b.Link,
			FileURL:      b.FileURL,
			AdminComment: b.AdminComment,
		})
	}
	return out, nil
}

// ListSpaces exposes the ad space catalog to sponsors.
func (s *Service) ListSpaces(ctx context.Context) ([]domain.AdSpace, error) {
	return s.spaces.List(ctx)
}
