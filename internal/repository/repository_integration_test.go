//go:build integration

package repository

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/database"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

const schema = `
CREATE TABLE users (
	id SERIAL PRIMARY KEY NOT NULL,
	name VARCHAR(255) NOT NULL,
	email VARCHAR(255) NOT NULL UNIQUE,
	password VARCHAR(255) NOT NULL
);

CREATE TABLE properties (
	id SERIAL PRIMARY KEY NOT NULL,
	owner_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title VARCHAR(255) NOT NULL,
	description TEXT,
	thumbnail_photo_url VARCHAR(255) NOT NULL,
	cover_photo_url VARCHAR(255) NOT NULL,
	cost_per_night INTEGER NOT NULL DEFAULT 0,
	parking_spaces INTEGER NOT NULL DEFAULT 0,
	number_of_bathrooms INTEGER NOT NULL DEFAULT 0,
	number_of_bedrooms INTEGER NOT NULL DEFAULT 0,
	country VARCHAR(255) NOT NULL,
	street VARCHAR(255) NOT NULL,
	city VARCHAR(255) NOT NULL,
	province VARCHAR(255) NOT NULL,
	post_code VARCHAR(255) NOT NULL,
	active BOOLEAN NOT NULL DEFAULT TRUE
);

CREATE TABLE reservations (
	id SERIAL PRIMARY KEY NOT NULL,
	start_date DATE NOT NULL,
	end_date DATE NOT NULL,
	property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	guest_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE
);

CREATE TABLE property_reviews (
	id SERIAL PRIMARY KEY NOT NULL,
	guest_id INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	property_id INTEGER NOT NULL REFERENCES properties(id) ON DELETE CASCADE,
	reservation_id INTEGER NOT NULL REFERENCES reservations(id) ON DELETE CASCADE,
	rating SMALLINT NOT NULL DEFAULT 0,
	message TEXT NOT NULL DEFAULT ''
);
`

func skipIfNoDocker(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if exec.CommandContext(ctx, "docker", "info").Run() != nil {
		t.Skip("Skipping test: Docker not available")
	}
}

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	skipIfNoDocker(t)

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "vagrant",
				"POSTGRES_PASSWORD": "123",
				"POSTGRES_DB":       "lightbnb",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, fmt.Sprintf("postgres://vagrant:123@%s:%s/lightbnb?sslmode=disable", host, port.Port()))
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, schema)
	require.NoError(t, err)

	return pool
}

func TestRepositories_Postgres(t *testing.T) {
	pool := startPostgres(t)
	ctx := context.Background()

	logger := zerolog.Nop()
	repos := newRepositories(database.NewExecutor(pool, config.BreakerConfig{}, &logger))

	owner, err := repos.Users.AddUser(ctx, model.NewUser{Name: "Owner", Email: "owner@example.com", Password: "hash"})
	require.NoError(t, err)
	guest, err := repos.Users.AddUser(ctx, model.NewUser{Name: "Guest", Email: "guest@example.com", Password: "hash"})
	require.NoError(t, err)

	_, err = repos.Users.AddUser(ctx, model.NewUser{Name: "Again", Email: "guest@example.com", Password: "hash"})
	assert.Equal(t, sqlerr.UniqueViolation, sqlerr.ErrCode(err))

	found, err := repos.Users.GetUserWithEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.Equal(t, guest.ID, found.ID)

	newProperty := func(title, city string, cost int64) model.Property {
		p, err := repos.Properties.AddProperty(ctx, model.NewProperty{
			OwnerID:           owner.ID,
			Title:             title,
			Description:       "description",
			ThumbnailPhotoURL: "https://img/thumb.jpg",
			CoverPhotoURL:     "https://img/cover.jpg",
			CostPerNight:      cost,
			Street:            "1 Main St",
			City:              city,
			Province:          "BC",
			PostCode:          "V5K",
			Country:           "Canada",
			ParkingSpaces:     1,
			NumberOfBathrooms: 1,
			NumberOfBedrooms:  2,
		})
		require.NoError(t, err)
		return p
	}

	loft := newProperty("Loft", "Vancouver", 9300)
	house := newProperty("House", "North Vancouver", 15000)
	newProperty("Cabin", "Whistler", 5000)

	day := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	review := func(property model.Property, rating int16) {
		reservation, err := repos.Reservations.AddReservation(ctx, model.NewReservation{
			StartDate:  day,
			EndDate:    day.AddDate(0, 0, 3),
			PropertyID: property.ID,
			GuestID:    guest.ID,
		})
		require.NoError(t, err)

		_, err = repos.Reviews.AddReview(ctx, model.NewReview{
			GuestID:       guest.ID,
			PropertyID:    property.ID,
			ReservationID: reservation.ID,
			Rating:        rating,
			Message:       "ok",
		})
		require.NoError(t, err)
	}
	review(loft, 4)
	review(loft, 5)
	review(house, 3)

	t.Run("city matches substrings, cheapest first", func(t *testing.T) {
		rows, err := repos.Properties.GetAllProperties(ctx, model.PropertySearchOptions{City: "Vancouver"}, 10)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, loft.ID, rows[0].ID)
		assert.Equal(t, house.ID, rows[1].ID)
		assert.InDelta(t, 4.5, rows[0].AverageRating, 0.0001)
	})

	t.Run("properties without reviews are not listed", func(t *testing.T) {
		rows, err := repos.Properties.GetAllProperties(ctx, model.PropertySearchOptions{City: "Whistler"}, 10)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("rating and price filters", func(t *testing.T) {
		rows, err := repos.Properties.GetAllProperties(ctx, model.PropertySearchOptions{MinimumRating: "4"}, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, loft.ID, rows[0].ID)

		rows, err = repos.Properties.GetAllProperties(ctx, model.PropertySearchOptions{
			MinimumPricePerNight: "100",
			MaximumPricePerNight: "200",
		}, 10)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, house.ID, rows[0].ID)
	})

	t.Run("owner filter and limit", func(t *testing.T) {
		rows, err := repos.Properties.GetAllProperties(ctx, model.PropertySearchOptions{
			OwnerID: fmt.Sprint(owner.ID),
		}, 1)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, loft.ID, rows[0].ID)
	})

	t.Run("guest reservations", func(t *testing.T) {
		rows, err := repos.Reservations.GetAllReservations(ctx, guest.ID, 0)
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("missing property", func(t *testing.T) {
		_, err := repos.Properties.GetPropertyWithID(ctx, 9999)
		assert.True(t, sqlerr.IsNotFound(err))
	})

	t.Run("reservation for unknown property", func(t *testing.T) {
		_, err := repos.Reservations.AddReservation(ctx, model.NewReservation{
			StartDate:  day,
			EndDate:    day.AddDate(0, 0, 1),
			PropertyID: 9999,
			GuestID:    guest.ID,
		})
		assert.Equal(t, sqlerr.ForeignKeyViolation, sqlerr.ErrCode(err))
	})
}
