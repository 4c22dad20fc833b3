package adslot

import (
	"context"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"panedelivery/internal/domain"
	"panedelivery/internal/repository"
)

type MockSlotRepository struct {
	mock.Mock
}

func (m *MockSlotRepository) Get(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error) {
	args := m.Called(ctx, adSpaceID, slotKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotBooking), args.Error(1)
}

func (m *MockSlotRepository) Insert(ctx context.Context, b *domain.SlotBooking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockSlotRepository) ReclaimExpired(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error {
	args := m.Called(ctx, b, prevVersion, now)
	return args.Error(0)
}

func (m *MockSlotRepository) DeleteReserved(ctx context.Context, adSpaceID int64, slotKey string, sponsorID, prevVersion int64) error {
	args := m.Called(ctx, adSpaceID, slotKey, sponsorID, prevVersion)
	return args.Error(0)
}

func (m *MockSlotRepository) ConvertReserved(ctx context.Context, adSpaceID, sponsorID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, adSpaceID, sponsorID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSlotRepository) UpdateContent(ctx context.Context, b *domain.SlotBooking, prevVersion int64, now time.Time) error {
	args := m.Called(ctx, b, prevVersion, now)
	return args.Error(0)
}

func (m *MockSlotRepository) ListBySpaceDay(ctx context.Context, adSpaceID int64, day string) ([]domain.SlotBooking, error) {
	args := m.Called(ctx, adSpaceID, day)
	return args.Get(0).([]domain.SlotBooking), args.Error(1)
}

func (m *MockSlotRepository) ListBySponsor(ctx context.Context, sponsorID int64) ([]domain.SlotBooking, error) {
	args := m.Called(ctx, sponsorID)
	return args.Get(0).([]domain.SlotBooking), args.Error(1)
}

func (m *MockSlotRepository) GetApproved(ctx context.Context, adSpaceID int64, slotKey string) (*domain.SlotBooking, error) {
	args := m.Called(ctx, adSpaceID, slotKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SlotBooking), args.Error(1)
}

type MockAdSpaceRepository struct {
	mock.Mock
}

func (m *MockAdSpaceRepository) GetByID(ctx context.Context, id int64) (*domain.AdSpace, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AdSpace), args.Error(1)
}

func (m *MockAdSpaceRepository) List(ctx context.Context) ([]domain.AdSpace, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.AdSpace), args.Error(1)
}

func (m *MockAdSpaceRepository) ListByPage(ctx context.Context, page string) ([]domain.AdSpace, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]domain.AdSpace), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BroadcastSlot(adSpaceID int64, slotKey, status string) {
	m.Called(adSpaceID, slotKey, status)
}

func (m *MockNotifier) BroadcastRefresh(adSpaceID int64) {
	m.Called(adSpaceID)
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func testSpace() *domain.AdSpace {
	prices := domain.HourlyPrices{}
	for i := range prices {
		prices[i] = 10
	}
	prices[9] = 25
	return &domain.AdSpace{ID: 1, Name: "Home hero", Page: "home", HourlyPrices: prices}
}

func TestToggleSlot_ClaimsFreeSlot(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(nil, nil)
	slots.On("Insert", mock.Anything, mock.MatchedBy(func(b *domain.SlotBooking) bool {
		return b.Status == domain.SlotReserved && b.SponsorID == 7 && b.Price == 25 && b.ReservedAt.Equal(now)
	})).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("BroadcastSlot", int64(1), key, "booked").Return()

	svc := NewService(slots, spaces, notifier, logrus.New(), fixedClock(now))

	result, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.NoError(t, err)
	assert.Equal(t, "reserved", result.Action)
	assert.Equal(t, 25.0, result.Price)
	notifier.AssertExpectations(t)
}

func TestToggleSlot_ReleasesOwnHold(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(&domain.SlotBooking{
		AdSpaceID:  1,
		SlotKey:    key,
		Status:     domain.SlotReserved,
		SponsorID:  7,
		ReservedAt: now.Add(-3 * time.Minute),
		Version:    2,
	}, nil)
	slots.On("DeleteReserved", mock.Anything, int64(1), key, int64(7), int64(2)).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("BroadcastSlot", int64(1), key, "available").Return()

	svc := NewService(slots, spaces, notifier, logrus.New(), fixedClock(now))

	result, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.NoError(t, err)
	assert.Equal(t, "released", result.Action)
	slots.AssertExpectations(t)
}

func TestToggleSlot_ReclaimsExpiredForeignHold(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(&domain.SlotBooking{
		AdSpaceID:  1,
		SlotKey:    key,
		Status:     domain.SlotReserved,
		SponsorID:  8,
		ReservedAt: now.Add(-11 * time.Minute),
		Version:    3,
	}, nil)
	slots.On("ReclaimExpired", mock.Anything, mock.MatchedBy(func(b *domain.SlotBooking) bool {
		return b.SponsorID == 7 && b.Price == 25
	}), int64(3), now).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("BroadcastSlot", int64(1), key, "booked").Return()

	svc := NewService(slots, spaces, notifier, logrus.New(), fixedClock(now))

	result, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.NoError(t, err)
	assert.Equal(t, "reserved", result.Action)
	slots.AssertExpectations(t)
}

func TestToggleSlot_ForeignHoldConflicts(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(&domain.SlotBooking{
		Status:     domain.SlotReserved,
		SponsorID:  8,
		ReservedAt: now.Add(-2 * time.Minute),
	}, nil)

	svc := NewService(slots, spaces, new(MockNotifier), logrus.New(), fixedClock(now))

	_, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestToggleSlot_ProcessingSlotConflicts(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(&domain.SlotBooking{
		Status:     domain.SlotProcessing,
		SponsorID:  7,
		ReservedAt: now.Add(-24 * time.Hour),
	}, nil)

	svc := NewService(slots, spaces, new(MockNotifier), logrus.New(), fixedClock(now))

	// Even the owner cannot toggle once the admin queue owns the row.
	_, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestToggleSlot_LostInsertRaceIsConflict(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(nil, nil)
	slots.On("Insert", mock.Anything, mock.Anything).Return(repository.ErrDuplicateSlot)

	svc := NewService(slots, spaces, new(MockNotifier), logrus.New(), fixedClock(now))

	_, err := svc.ToggleSlot(context.Background(), 1, key, 7)

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestToggleSlot_RejectsBadKey(t *testing.T) {
	svc := NewService(new(MockSlotRepository), new(MockAdSpaceRepository), new(MockNotifier), logrus.New(), nil)

	_, err := svc.ToggleSlot(context.Background(), 1, "2026-03-14 09:30", 7)

	assert.ErrorIs(t, err, ErrValidation)
}

func TestPurchase_NoHoldsToConvert(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("ConvertReserved", mock.Anything, int64(1), int64(7), now).Return(int64(0), nil)

	svc := NewService(slots, spaces, new(MockNotifier), logrus.New(), fixedClock(now))

	_, err := svc.Purchase(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrNoValidSlots)
}

func TestPurchase_ConvertsHeldSlots(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("ConvertReserved", mock.Anything, int64(1), int64(7), now).Return(int64(3), nil)

	notifier := new(MockNotifier)
	notifier.On("BroadcastRefresh", int64(1)).Return()

	svc := NewService(slots, spaces, notifier, logrus.New(), fixedClock(now))

	count, err := svc.Purchase(context.Background(), 1, 7)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	notifier.AssertExpectations(t)
}

func TestSubmitContent_ValidatesTitleAndLinks(t *testing.T) {
	svc := NewService(new(MockSlotRepository), new(MockAdSpaceRepository), new(MockNotifier), logrus.New(), nil)

	err := svc.SubmitContent(context.Background(), 1, 7, SubmitContentRequest{
		SlotKey: "2026-03-14_09:00",
		Title:   "ab",
	})
	assert.ErrorIs(t, err, ErrValidation)

	err = svc.SubmitContent(context.Background(), 1, 7, SubmitContentRequest{
		SlotKey: "2026-03-14_09:00",
		Title:   "Fresh sourdough",
		Link:    "ftp://bakery.example",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitContent_OnlyOwner(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), "2026-03-14_09:00").Return(&domain.SlotBooking{
		Status:    domain.SlotProcessing,
		SponsorID: 8,
	}, nil)

	svc := NewService(slots, new(MockAdSpaceRepository), new(MockNotifier), logrus.New(), nil)

	err := svc.SubmitContent(context.Background(), 1, 7, SubmitContentRequest{
		SlotKey: "2026-03-14_09:00",
		Title:   "Fresh sourdough",
	})

	assert.ErrorIs(t, err, ErrForbidden)
}

func TestSubmitContent_ReservedRowNotEditable(t *testing.T) {
	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), "2026-03-14_09:00").Return(&domain.SlotBooking{
		Status:    domain.SlotReserved,
		SponsorID: 7,
	}, nil)

	svc := NewService(slots, new(MockAdSpaceRepository), new(MockNotifier), logrus.New(), nil)

	err := svc.SubmitContent(context.Background(), 1, 7, SubmitContentRequest{
		SlotKey: "2026-03-14_09:00",
		Title:   "Fresh sourdough",
	})

	assert.ErrorIs(t, err, ErrSlotState)
}

func TestSubmitContent_ResubmitAfterRejection(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)
	key := "2026-03-14_09:00"

	slots := new(MockSlotRepository)
	slots.On("Get", mock.Anything, int64(1), key).Return(&domain.SlotBooking{
		AdSpaceID:    1,
		SlotKey:      key,
		Status:       domain.SlotRejected,
		SponsorID:    7,
		AdminComment: "image too small",
		Version:      4,
	}, nil)
	slots.On("UpdateContent", mock.Anything, mock.MatchedBy(func(b *domain.SlotBooking) bool {
		return b.Title == "Fresh sourdough" && b.Link == "https://bakery.example"
	}), int64(4), now).Return(nil)

	notifier := new(MockNotifier)
	notifier.On("BroadcastSlot", int64(1), key, "processing").Return()

	svc := NewService(slots, new(MockAdSpaceRepository), notifier, logrus.New(), fixedClock(now))

	err := svc.SubmitContent(context.Background(), 1, 7, SubmitContentRequest{
		SlotKey: key,
		Title:   "Fresh sourdough",
		Link:    "https://bakery.example",
	})

	assert.NoError(t, err)
	slots.AssertExpectations(t)
}

func TestAgenda_ProjectsFullDay(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

	spaces := new(MockAdSpaceRepository)
	spaces.On("GetByID", mock.Anything, int64(1)).Return(testSpace(), nil)

	slots := new(MockSlotRepository)
	slots.On("ListBySpaceDay", mock.Anything, int64(1), "2026-03-14").Return([]domain.SlotBooking{
		{AdSpaceID: 1, SlotKey: "2026-03-14_09:00", Status: domain.SlotReserved, SponsorID: 7, ReservedAt: now.Add(-time.Minute)},
		{AdSpaceID: 1, SlotKey: "2026-03-14_10:00", Status: domain.SlotApproved, SponsorID: 8},
		{AdSpaceID: 1, SlotKey: "2026-03-14_11:00", Status: domain.SlotReserved, SponsorID: 8, ReservedAt: now.Add(-20 * time.Minute)},
	}, nil)

	svc := NewService(slots, spaces, new(MockNotifier), logrus.New(), fixedClock(now))

	agenda, err := svc.Agenda(context.Background(), 1, "2026-03-14", 7)

	assert.NoError(t, err)
	assert.Len(t, agenda.Slots, 24)
	assert.Equal(t, StatusAvailable, agenda.Slots[0].Status)
	assert.Equal(t, StatusSelected, agenda.Slots[9].Status)
	assert.Equal(t, 25.0, agenda.Slots[9].Price)
	assert.Equal(t, StatusApproved, agenda.Slots[10].Status)
	assert.Equal(t, StatusAvailable, agenda.Slots[11].Status)
}

func TestMyBookings_SkipsExpiredHolds(t *testing.T) {
	now := time.Date(2026, 3, 14, 8, 30, 0, 0, time.UTC)

	slots := new(MockSlotRepository)
	slots.On("ListBySponsor", mock.Anything, int64(7)).Return([]domain.SlotBooking{
		{AdSpaceID: 1, SlotKey: "2026-03-14_09:00", Status: domain.SlotReserved, SponsorID: 7, ReservedAt: now.Add(-time.Minute)},
		{AdSpaceID: 1, SlotKey: "2026-03-14_10:00", Status: domain.SlotReserved, SponsorID: 7, ReservedAt: now.Add(-time.Hour)},
		{AdSpaceID: 2, SlotKey: "2026-03-14_09:00", Status: domain.SlotRejected, SponsorID: 7, AdminComment: "off brand"},
	}, nil)

	svc := NewService(slots, new(MockAdSpaceRepository), new(MockNotifier), logrus.New(), fixedClock(now))

	bookings, err := svc.MyBookings(context.Background(), 7)

	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.Equal(t, "off brand", bookings[1].AdminComment)
}
