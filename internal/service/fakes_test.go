package service

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/deppfellow/lightbnb/internal/lib/job"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

type fakeUsers struct {
	mu    sync.Mutex
	users []model.User
	err   error
}

func (f *fakeUsers) GetUserWithEmail(_ context.Context, email string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, sqlerr.Wrap(pgx.ErrNoRows, "users")
}

func (f *fakeUsers) GetUserWithID(_ context.Context, id int64) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, sqlerr.Wrap(pgx.ErrNoRows, "users")
}

func (f *fakeUsers) AddUser(_ context.Context, user model.NewUser) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return model.User{}, f.err
	}

	created := model.User{
		ID:       int64(len(f.users) + 1),
		Name:     user.Name,
		Email:    user.Email,
		Password: user.Password,
	}
	f.users = append(f.users, created)
	return created, nil
}

type fakeProperties struct {
	rows      []model.PropertyRow
	property  model.Property
	lastOpts  model.PropertySearchOptions
	lastLimit int
	searchErr error
	lookupErr error
}

func (f *fakeProperties) GetAllProperties(_ context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error) {
	f.lastOpts = opts
	f.lastLimit = limit
	return f.rows, f.searchErr
}

func (f *fakeProperties) GetPropertyWithID(_ context.Context, id int64) (model.Property, error) {
	if f.lookupErr != nil {
		return model.Property{}, f.lookupErr
	}
	p := f.property
	p.ID = id
	return p, nil
}

func (f *fakeProperties) AddProperty(_ context.Context, property model.NewProperty) (model.Property, error) {
	return model.Property{ID: 1, OwnerID: property.OwnerID, Title: property.Title, CostPerNight: property.CostPerNight}, nil
}

type fakeReservations struct {
	added []model.NewReservation
	rows  []model.ReservationRow
}

func (f *fakeReservations) GetAllReservations(context.Context, int64, int) ([]model.ReservationRow, error) {
	return f.rows, nil
}

func (f *fakeReservations) AddReservation(_ context.Context, r model.NewReservation) (model.Reservation, error) {
	f.added = append(f.added, r)
	return model.Reservation{
		ID:         int64(len(f.added)),
		StartDate:  r.StartDate,
		EndDate:    r.EndDate,
		PropertyID: r.PropertyID,
		GuestID:    r.GuestID,
	}, nil
}

type fakeReviews struct {
	rows []model.Review
}

func (f *fakeReviews) ListReviewsByProperty(context.Context, int64, int) ([]model.Review, error) {
	return f.rows, nil
}

func (f *fakeReviews) AddReview(_ context.Context, r model.NewReview) (model.Review, error) {
	return model.Review{ID: 1, GuestID: r.GuestID, PropertyID: r.PropertyID, ReservationID: r.ReservationID, Rating: r.Rating, Message: r.Message}, nil
}

type fakeQueue struct {
	welcome   []string
	confirmed []job.ReservationConfirmedPayload
	err       error
}

func (f *fakeQueue) EnqueueWelcomeEmail(_ context.Context, to, _ string) error {
	f.welcome = append(f.welcome, to)
	return f.err
}

func (f *fakeQueue) EnqueueReservationConfirmed(_ context.Context, p job.ReservationConfirmedPayload) error {
	f.confirmed = append(f.confirmed, p)
	return f.err
}
