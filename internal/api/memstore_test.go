package api

import (
	"context"
	"sort"
	"sync"

	"homehero/internal/database"
	"homehero/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory stand-in for the three MongoDB collections.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	services map[primitive.ObjectID]*models.Service
	bookings map[primitive.ObjectID]*models.Booking
	err      error
	pingErr  error
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*models.User{},
		services: map[primitive.ObjectID]*models.Service{},
		bookings: map[primitive.ObjectID]*models.Booking{},
	}
}

func applySet(doc any, fields map[string]any) error {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	m := bson.M{}
	if err := bson.Unmarshal(raw, &m); err != nil {
		return err
	}
	for k, v := range fields {
		m[k] = v
	}
	if raw, err = bson.Marshal(m); err != nil {
		return err
	}
	return bson.Unmarshal(raw, doc)
}

func (s *memStore) Ping(context.Context) error { return s.pingErr }

func (s *memStore) UpsertUser(_ context.Context, email string, fields map[string]any) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}

	res := &models.UpdateResult{Acknowledged: true}
	user, ok := s.users[email]
	if ok {
		res.MatchedCount, res.ModifiedCount = 1, 1
	} else {
		user = &models.User{ID: primitive.NewObjectID()}
		id := user.ID.Hex()
		res.UpsertedCount, res.UpsertedID = 1, &id
	}
	if err := applySet(user, fields); err != nil {
		return nil, err
	}
	s.users[email] = user
	return res, nil
}

func (s *memStore) ListUsers(context.Context) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	return out, nil
}

func (s *memStore) GetUser(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return u, nil
}

func (s *memStore) CreateService(_ context.Context, service *models.Service) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	service.ID = primitive.NewObjectID()
	s.services[service.ID] = service
	return &models.InsertResult{Acknowledged: true, InsertedID: service.ID.Hex()}, nil
}

func (s *memStore) ListServices(_ context.Context, limit int64) ([]*models.Service, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.Service, 0, len(s.services))
	for _, svc := range s.services {
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	if limit > 0 && int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memStore) GetService(_ context.Context, id string) (*models.Service, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	svc, ok := s.services[oid]
	if !ok {
		return nil, database.ErrNotFound
	}
	return svc, nil
}

func (s *memStore) UpdateService(_ context.Context, id string, fields map[string]any) (*models.UpdateResult, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	svc, ok := s.services[oid]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	if err := applySet(svc, fields); err != nil {
		return nil, err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *memStore) DeleteService(_ context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.services[oid]; !ok {
		return database.ErrNotFound
	}
	delete(s.services, oid)
	return nil
}

func (s *memStore) CreateBooking(_ context.Context, booking *models.Booking) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	booking.ID = primitive.NewObjectID()
	s.bookings[booking.ID] = booking
	return &models.InsertResult{Acknowledged: true, InsertedID: booking.ID.Hex()}, nil
}

func (s *memStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	return s.ListBookingsByUser(ctx, "")
}

func (s *memStore) ListBookingsByUser(_ context.Context, email string) ([]*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	out := make([]*models.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		if email == "" || b.UserEmail == email {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.Hex() > out[j].ID.Hex()
	})
	return out, nil
}

func (s *memStore) GetBooking(_ context.Context, id string) (*models.Booking, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.bookings[oid]
	if !ok {
		return nil, database.ErrNotFound
	}
	return b, nil
}

func (s *memStore) UpdateBooking(_ context.Context, id string, fields map[string]any) (*models.UpdateResult, error) {
	oid, err := database.ParseID(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	b, ok := s.bookings[oid]
	if !ok {
		return &models.UpdateResult{Acknowledged: true}, nil
	}
	if err := applySet(b, fields); err != nil {
		return nil, err
	}
	return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

func (s *memStore) DeleteBooking(_ context.Context, id string) error {
	oid, err := database.ParseID(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if _, ok := s.bookings[oid]; !ok {
		return database.ErrNotFound
	}
	delete(s.bookings, oid)
	return nil
}
