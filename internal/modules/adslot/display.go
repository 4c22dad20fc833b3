package adslot

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"panedelivery/internal/cache"
	"panedelivery/internal/domain"
	"panedelivery/internal/events"
	"panedelivery/internal/metrics"
)

const (
	placeholderTitle = "Your ad could be here"
	placeholderImage = "/static/img/ad-placeholder.png"
	placeholderLink  = "/sponsoring"
)

// DisplayService resolves what each ad card on a public page shows for
// the current hour: the approved sponsor creative when one exists, the
// house placeholder otherwise.
type DisplayService struct {
	slots    SlotRepository
	spaces   AdSpaceRepository
	cache    *cache.DisplayCache
	producer *events.Producer
	log      *logrus.Logger
	now      Clock
}

func NewDisplayService(slots SlotRepository, spaces AdSpaceRepository, c *cache.DisplayCache, producer *events.Producer, log *logrus.Logger, now Clock) *DisplayService {
	if now == nil {
		now = time.Now
	}
	return &DisplayService{
		slots:    slots,
		spaces:   spaces,
		cache:    c,
		producer: producer,
		log:      log,
		now:      now,
	}
}

// ResolveDisplay returns the cards for one page at the current hour.
// The projection is cached until the hour boundary; impression events
// are published on every call, cache hit or not.
func (s *DisplayService) ResolveDisplay(ctx context.Context, page string) ([]DisplayCard, error) {
	now := s.now()
	hourKey := domain.SlotKeyFor(now)

	var cards []DisplayCard
	hit, err := s.cache.Get(ctx, page, hourKey, &cards)
	if err != nil {
		s.log.WithError(err).Warn("display cache read failed")
	}
	if !hit {
		cards, err = s.computeCards(ctx, page, hourKey)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(ctx, page, hourKey, cards, now); err != nil {
			s.log.WithError(err).Warn("display cache write failed")
		}
	}

	for _, card := range cards {
		metrics.ImpressionsServed.WithLabelValues(page, strconv.FormatBool(card.Sponsored)).Inc()
		s.producer.Publish(ctx, events.AdEvent{
			ID:         uuid.NewString(),
			Kind:       domain.AdEventImpression,
			AdSpaceID:  card.AdSpaceID,
			Page:       page,
			SlotKey:    hourKey,
			Sponsored:  card.Sponsored,
			OccurredAt: now,
		})
	}
	return cards, nil
}

func (s *DisplayService) computeCards(ctx context.Context, page, hourKey string) ([]DisplayCard, error) {
	spaces, err := s.spaces.ListByPage(ctx, page)
	if err != nil {
		return nil, err
	}

	cards := make([]DisplayCard, 0, len(spaces))
	for _, space := range spaces {
		card := DisplayCard{
			AdSpaceID: space.ID,
			CardIndex: space.CardIndex,
			Title:     placeholderTitle,
			ImageURL:  placeholderImage,
			Link:      placeholderLink,
		}

		b, err := s.slots.GetApproved(ctx, space.ID, hourKey)
		if err != nil {
			return nil, err
		}
		if b != nil && b.HasContent() {
			card.Title = b.Title
			card.ImageURL = b.FileURL
			card.Link = b.Link
			card.Sponsored = true
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// RecordClick publishes a click event for one ad space. Unknown spaces
// are rejected so the topic never carries fabricated ids.
func (s *DisplayService) RecordClick(ctx context.Context, adSpaceID int64) error {
	space, err := s.spaces.GetByID(ctx, adSpaceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	now := s.now()
	hourKey := domain.SlotKeyFor(now)

	ev := events.AdEvent{
		ID:         uuid.NewString(),
		Kind:       domain.AdEventClick,
		AdSpaceID:  space.ID,
		Page:       space.Page,
		SlotKey:    hourKey,
		OccurredAt: now,
	}
	if b, err := s.slots.GetApproved(ctx, space.ID, hourKey); err == nil && b != nil {
		ev.Sponsored = true
		ev.SponsorID = b.SponsorID
	}

	metrics.ClicksReceived.WithLabelValues(strconv.FormatInt(space.ID, 10)).Inc()
	s.producer.Publish(ctx, ev)
	return nil
}
