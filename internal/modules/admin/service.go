package admin

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"panedelivery/internal/domain"
	"panedelivery/internal/repository"
)

// Service covers the two admin queues: baker/sponsor profile
// verification and ad content review.
type Service struct {
	users       UserRepository
	slots       SlotRepository
	impressions ImpressionReader
	stats       StatsReader
	notifier    SlotNotifier
	log         *logrus.Logger
	now         Clock
}

func NewService(users UserRepository, slots SlotRepository, impressions ImpressionReader, stats StatsReader, notifier SlotNotifier, log *logrus.Logger, now Clock) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		users:       users,
		slots:       slots,
		impressions: impressions,
		stats:       stats,
		notifier:    notifier,
		log:         log,
		now:         now,
	}
}

func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return limit, (page - 1) * limit
}

// PendingVerifications lists baker and sponsor profiles waiting for a
// decision.
func (s *Service) PendingVerifications(ctx context.Context, page, limit int) (*VerificationQueue, error) {
	l, offset := clampPaging(page, limit)
	roles := []string{string(domain.RoleBaker), string(domain.RoleSponsor)}

	users, total, err := s.users.ListPendingByRoles(ctx, roles, l, offset)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return &VerificationQueue{Users: users, Total: total}, nil
}

func (s *Service) VerifyProfile(ctx context.Context, userID int64) error {
	return s.setProfileStatus(ctx, userID, domain.StatusVerified, "")
}

// RejectProfile requires a reason so the applicant knows what to fix.
func (s *Service) RejectProfile(ctx context.Context, userID int64, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrValidation
	}
	return s.setProfileStatus(ctx, userID, domain.StatusRejected, reason)
}

func (s *Service) setProfileStatus(ctx context.Context, userID int64, status domain.ProfileStatus, reason string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !user.NeedsVerification() {
		return ErrValidation
	}

	if err := s.users.UpdateProfileStatus(ctx, userID, status, reason); err != nil {
		return err
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"role":    user.Role,
		"status":  status,
	}).Info("profile verification decided")
	return nil
}

// ReviewQueue lists processing bookings, oldest submission first.
func (s *Service) ReviewQueue(ctx context.Context, page, limit int) ([]ReviewQueueItem, int64, error) {
	l, offset := clampPaging(page, limit)

	bookings, total, err := s.slots.ListProcessing(ctx, l, offset)
	if err != nil {
		return nil, 0, err
	}

	items := make([]ReviewQueueItem, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, ReviewQueueItem{
			AdSpaceID: b.AdSpaceID,
			SlotKey:   b.SlotKey,
			SponsorID: b.SponsorID,
			Price:     b.Price,
			Title:     b.Title,
			Link:      b.Link,
			FileURL:   b.FileURL,
		})
	}
	return items, total, nil
}

func (s *Service) ApproveBooking(ctx context.Context, adminID int64, req ReviewBookingRequest) error {
	return s.reviewBooking(ctx, adminID, req, domain.SlotApproved)
}

// RejectBooking requires a comment; the sponsor resubmits against it.
func (s *Service) RejectBooking(ctx context.Context, adminID int64, req ReviewBookingRequest) error {
	if strings.TrimSpace(req.Comment) == "" {
		return ErrValidation
	}
	return s.reviewBooking(ctx, adminID, req, domain.SlotRejected)
}

func (s *Service) reviewBooking(ctx context.Context, adminID int64, req ReviewBookingRequest, status domain.SlotStatus) error {
	b, err := s.slots.Get(ctx, req.AdSpaceID, req.SlotKey)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrNotFound
	}
	if b.Status != domain.SlotProcessing {
		return ErrSlotState
	}

	err = s.slots.Review(ctx, req.AdSpaceID, req.SlotKey, status, req.Comment, adminID, b.Version, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrStaleSlot) {
			return ErrSlotConflict
		}
		return err
	}

	if s.notifier != nil {
		// Rejections read as booked on the agenda; only the sponsor's
		// own list shows the real state.
		display := "booked"
		if status == domain.SlotApproved {
			display = "approved"
		}
		s.notifier.BroadcastSlot(req.AdSpaceID, req.SlotKey, display)
	}

	s.log.WithFields(logrus.Fields{
		"ad_space_id": req.AdSpaceID,
		"slot_key":    req.SlotKey,
		"status":      status,
		"admin_id":    adminID,
	}).Info("booking reviewed")
	return nil
}

// PlatformStatistics summarizes the marketplace for the dashboard.
func (s *Service) PlatformStatistics(ctx context.Context) (*repository.PlatformCounts, error) {
	return s.stats.PlatformCounts(ctx)
}

// SpaceStatistics reads the analytics counters for one ad space.
func (s *Service) SpaceStatistics(ctx context.Context, adSpaceID int64) (*SpaceStatistics, error) {
	impressions, clicks, err := s.impressions.CountBySpace(ctx, adSpaceID)
	if err != nil {
		return nil, err
	}
	return &SpaceStatistics{
		AdSpaceID:   adSpaceID,
		Impressions: impressions,
		Clicks:      clicks,
	}, nil
}
