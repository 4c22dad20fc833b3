package adslot

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"panedelivery/internal/domain"
)

func TestResolveDisplay_ApprovedContentWins(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	spaces := new(MockAdSpaceRepository)
	spaces.On("ListByPage", mock.Anything, "home").Return([]domain.AdSpace{
		{ID: 1, Page: "home", CardIndex: 0},
		{ID: 2, Page: "home", CardIndex: 1},
	}, nil)

	slots := new(MockSlotRepository)
	slots.On("GetApproved", mock.Anything, int64(1), "2026-03-14_09:00").Return(&domain.SlotBooking{
		AdSpaceID: 1,
		SlotKey:   "2026-03-14_09:00",
		Status:    domain.SlotApproved,
		SponsorID: 7,
		Title:     "Fresh sourdough",
		Link:      "https://bakery.example",
		FileURL:   "https://cdn.example/sourdough.png",
	}, nil)
	slots.On("GetApproved", mock.Anything, int64(2), "2026-03-14_09:00").Return(nil, nil)

	svc := NewDisplayService(slots, spaces, nil, nil, logrus.New(), fixedClock(now))

	cards, err := svc.ResolveDisplay(context.Background(), "home")

	assert.NoError(t, err)
	assert.Len(t, cards, 2)

	assert.True(t, cards[0].Sponsored)
	assert.Equal(t, "Fresh sourdough", cards[0].Title)
	assert.Equal(t, "https://cdn.example/sourdough.png", cards[0].ImageURL)

	assert.False(t, cards[1].Sponsored)
	assert.Equal(t, placeholderTitle, cards[1].Title)
	assert.Equal(t, placeholderLink, cards[1].Link)
}

func TestResolveDisplay_ApprovedWithoutContentStaysPlaceholder(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	spaces := new(MockAdSpaceRepository)
	spaces.On("ListByPage", mock.Anything, "home").Return([]domain.AdSpace{
		{ID: 1, Page: "home"},
	}, nil)

	slots := new(MockSlotRepository)
	slots.On("GetApproved", mock.Anything, int64(1), "2026-03-14_09:00").Return(&domain.SlotBooking{
		AdSpaceID: 1,
		Status:    domain.SlotApproved,
		SponsorID: 7,
	}, nil)

	svc := NewDisplayService(slots, spaces, nil, nil, logrus.New(), fixedClock(now))

	cards, err := svc.ResolveDisplay(context.Background(), "home")

	assert.NoError(t, err)
	assert.False(t, cards[0].Sponsored)
	assert.Equal(t, placeholderTitle, cards[0].Title)
}

func TestResolveDisplay_HourRollover(t *testing.T) {
	spaces := new(MockAdSpaceRepository)
	spaces.On("ListByPage", mock.Anything, "home").Return([]domain.AdSpace{
		{ID: 1, Page: "home"},
	}, nil)

	slots := new(MockSlotRepository)
	slots.On("GetApproved", mock.Anything, int64(1), "2026-03-14_09:00").Return(&domain.SlotBooking{
		AdSpaceID: 1,
		Status:    domain.SlotApproved,
		SponsorID: 7,
		Title:     "Nine o'clock special",
	}, nil)
	slots.On("GetApproved", mock.Anything, int64(1), "2026-03-14_10:00").Return(nil, nil)

	at959 := time.Date(2026, 3, 14, 9, 59, 0, 0, time.UTC)
	svc := NewDisplayService(slots, spaces, nil, nil, logrus.New(), fixedClock(at959))
	cards, err := svc.ResolveDisplay(context.Background(), "home")
	assert.NoError(t, err)
	assert.True(t, cards[0].Sponsored)

	at1000 := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	svc = NewDisplayService(slots, spaces, nil, nil, logrus.New(), fixedClock(at1000))
	cards, err = svc.ResolveDisplay(context.Background(), "home")
	assert.NoError(t, err)
	assert.False(t, cards[0].Sponsored)
}

func TestRecordClick_UnknownSpace(t *testing.T) {
	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	svc := NewDisplayService(new(MockSlotRepository), spaces, nil, nil, logrus.New(), nil)

	err := svc.RecordClick(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
}
