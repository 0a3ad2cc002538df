package handler

import (
	"context"
	"database/sql"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/middleware"
	"github.com/iliyamo/wedding-hall-booking/internal/model"
	"github.com/iliyamo/wedding-hall-booking/internal/queue"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
	"github.com/iliyamo/wedding-hall-booking/internal/utils"
)

// Shared in-memory fakes for the store interfaces. They reproduce the error
// contracts of the real repositories (sentinel errors, idempotent writes,
// the overlap rule) so handler tests exercise the same branches the MySQL
// implementations trigger.

func newTestCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func asUser(c echo.Context, id uint64, role model.Role) {
	c.Set(middleware.CtxUserID, id)
	c.Set(middleware.CtxRole, role)
}

// ----- users -----

type fakeUserStore struct {
	byEmail map[string]*model.User
	nextID  uint64
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: make(map[string]*model.User)}
}

func (s *fakeUserStore) Create(_ context.Context, name, email, password string, role model.Role, cost int) (*model.User, error) {
	if _, ok := s.byEmail[email]; ok {
		return nil, repository.ErrEmailExists
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	s.nextID++
	u := &model.User{
		ID:           s.nextID,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	s.byEmail[email] = u
	return u, nil
}

func (s *fakeUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if u, ok := s.byEmail[email]; ok {
		return u, nil
	}
	return nil, sql.ErrNoRows
}

func (s *fakeUserStore) GetByID(_ context.Context, id uint64) (*model.User, error) {
	for _, u := range s.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *fakeUserStore) UpdateName(ctx context.Context, id uint64, name string) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = name
	return u, nil
}

func (s *fakeUserStore) UpdateProfilePicture(ctx context.Context, id uint64, url string) (*model.User, error) {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.ProfilePicture = &url
	return u, nil
}

// ----- halls -----

type fakeHallStore struct {
	byID   map[uint64]*model.Hall
	nextID uint64
}

func newFakeHallStore() *fakeHallStore {
	return &fakeHallStore{byID: make(map[uint64]*model.Hall)}
}

func (s *fakeHallStore) seed(ownerID uint64, name string) *model.Hall {
	s.nextID++
	h := &model.Hall{
		ID: s.nextID, Name: name, Description: "d", Location: "l",
		Price: 100, Capacity: 50, OwnerID: ownerID,
		Images: []string{}, Services: []string{},
	}
	s.byID[h.ID] = h
	return h
}

func (s *fakeHallStore) List(context.Context) ([]*model.Hall, error) {
	var out []*model.Hall
	for _, h := range s.byID {
		out = append(out, h)
	}
	return out, nil
}

func (s *fakeHallStore) ListByOwner(_ context.Context, ownerID uint64) ([]*model.Hall, error) {
	var out []*model.Hall
	for _, h := range s.byID {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

func (s *fakeHallStore) GetByID(_ context.Context, id uint64) (*model.Hall, error) {
	if h, ok := s.byID[id]; ok {
		return h, nil
	}
	return nil, repository.ErrHallNotFound
}

func (s *fakeHallStore) Create(_ context.Context, h *model.Hall) error {
	s.nextID++
	h.ID = s.nextID
	h.CreatedAt = time.Now().UTC()
	s.byID[h.ID] = h
	return nil
}

func (s *fakeHallStore) Update(_ context.Context, h *model.Hall) error {
	cur, ok := s.byID[h.ID]
	if !ok || cur.OwnerID != h.OwnerID {
		return repository.ErrHallNotFound
	}
	s.byID[h.ID] = h
	return nil
}

func (s *fakeHallStore) Delete(_ context.Context, id, ownerID uint64) error {
	cur, ok := s.byID[id]
	if !ok || cur.OwnerID != ownerID {
		return repository.ErrHallNotFound
	}
	delete(s.byID, id)
	return nil
}

// ----- bookings -----

type fakeBookingStore struct {
	halls    *fakeHallStore
	bookings []*model.Booking
	nextID   uint64
}

func newFakeBookingStore(halls *fakeHallStore) *fakeBookingStore {
	return &fakeBookingStore{halls: halls}
}

// overlaps uses plain string comparison, which orders YYYY-MM-DD dates
// chronologically.
func overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return bStart <= aEnd && bEnd >= aStart
}

func (s *fakeBookingStore) hasApprovedOverlap(hallID uint64, start, end string, excludeID uint64) bool {
	for _, b := range s.bookings {
		if b.HallID == hallID && b.ID != excludeID && b.Status == model.StatusApproved &&
			overlaps(start, end, b.StartDate, b.EndDate) {
			return true
		}
	}
	return false
}

func (s *fakeBookingStore) Create(_ context.Context, b *model.Booking) error {
	if s.hasApprovedOverlap(b.HallID, b.StartDate, b.EndDate, 0) {
		return repository.ErrBookingConflict
	}
	s.nextID++
	b.ID = s.nextID
	b.Status = model.StatusPending
	b.CreatedAt = time.Now().UTC()
	s.bookings = append(s.bookings, b)
	return nil
}

func (s *fakeBookingStore) UpdateStatus(_ context.Context, bookingID, ownerID uint64, status model.BookingStatus) (*model.Booking, error) {
	for _, b := range s.bookings {
		if b.ID != bookingID {
			continue
		}
		hall, ok := s.halls.byID[b.HallID]
		if !ok || hall.OwnerID != ownerID {
			return nil, repository.ErrBookingNotFound
		}
		if status == model.StatusApproved && b.Status != model.StatusApproved &&
			s.hasApprovedOverlap(b.HallID, b.StartDate, b.EndDate, b.ID) {
			return nil, repository.ErrBookingConflict
		}
		b.Status = status
		return b, nil
	}
	return nil, repository.ErrBookingNotFound
}

func (s *fakeBookingStore) HasApproved(_ context.Context, userID, hallID uint64) (bool, error) {
	for _, b := range s.bookings {
		if b.UserID == userID && b.HallID == hallID && b.Status == model.StatusApproved {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeBookingStore) ListForClient(_ context.Context, userID uint64) ([]*model.BookingDetail, error) {
	var out []*model.BookingDetail
	for _, b := range s.bookings {
		if b.UserID == userID {
			out = append(out, s.detail(b))
		}
	}
	return out, nil
}

func (s *fakeBookingStore) ListForOwner(_ context.Context, ownerID uint64) ([]*model.BookingDetail, error) {
	var out []*model.BookingDetail
	for _, b := range s.bookings {
		if hall, ok := s.halls.byID[b.HallID]; ok && hall.OwnerID == ownerID {
			out = append(out, s.detail(b))
		}
	}
	return out, nil
}

func (s *fakeBookingStore) detail(b *model.Booking) *model.BookingDetail {
	d := &model.BookingDetail{Booking: *b}
	if hall, ok := s.halls.byID[b.HallID]; ok {
		d.HallName = hall.Name
	}
	return d
}

// ----- favorites -----

type fakeFavoriteStore struct {
	pairs map[[2]uint64]bool // (userID, hallID)
	halls *fakeHallStore
}

func newFakeFavoriteStore(halls *fakeHallStore) *fakeFavoriteStore {
	return &fakeFavoriteStore{pairs: make(map[[2]uint64]bool), halls: halls}
}

func (s *fakeFavoriteStore) Add(_ context.Context, userID, hallID uint64) error {
	s.pairs[[2]uint64{userID, hallID}] = true
	return nil
}

func (s *fakeFavoriteStore) Remove(_ context.Context, userID, hallID uint64) error {
	delete(s.pairs, [2]uint64{userID, hallID})
	return nil
}

func (s *fakeFavoriteStore) ListByUser(_ context.Context, userID uint64) ([]*model.FavoriteHall, error) {
	var out []*model.FavoriteHall
	for pair := range s.pairs {
		if pair[0] != userID {
			continue
		}
		if h, ok := s.halls.byID[pair[1]]; ok {
			out = append(out, &model.FavoriteHall{
				HallID: h.ID, Name: h.Name, Description: h.Description,
				Location: h.Location, Price: h.Price, Capacity: h.Capacity,
				Images: h.Images, OwnerID: h.OwnerID,
			})
		}
	}
	return out, nil
}

// ----- ratings -----

type fakeRatingStore struct {
	values map[[2]uint64]int // (userID, hallID) -> rating
}

func newFakeRatingStore() *fakeRatingStore {
	return &fakeRatingStore{values: make(map[[2]uint64]int)}
}

func (s *fakeRatingStore) Upsert(_ context.Context, userID, hallID uint64, value int) error {
	s.values[[2]uint64{userID, hallID}] = value
	return nil
}

func (s *fakeRatingStore) StatsByHall(_ context.Context, hallID uint64) (model.RatingStats, error) {
	var sum, n int
	for pair, v := range s.values {
		if pair[1] == hallID {
			sum += v
			n++
		}
	}
	if n == 0 {
		return model.RatingStats{}, nil
	}
	avg := math.Round(float64(sum)/float64(n)*10) / 10
	return model.RatingStats{Average: avg, Count: n}, nil
}

func (s *fakeRatingStore) UserRating(_ context.Context, userID, hallID uint64) (*model.Rating, error) {
	if v, ok := s.values[[2]uint64{userID, hallID}]; ok {
		return &model.Rating{UserID: userID, HallID: hallID, Rating: v}, nil
	}
	return nil, nil
}

// ----- events -----

type fakePublisher struct {
	events []queue.BookingStatusEvent
}

func (p *fakePublisher) BookingStatusChanged(_ context.Context, event queue.BookingStatusEvent) error {
	p.events = append(p.events, event)
	return nil
}
