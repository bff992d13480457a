package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
	"github.com/deppfellow/lightbnb/internal/sqlerr"
)

type stubProperties struct {
	rows      []model.PropertyRow
	lastOpts  model.PropertySearchOptions
	lastLimit int
}

func (s *stubProperties) Search(_ context.Context, opts model.PropertySearchOptions, limit int) ([]model.PropertyRow, error) {
	s.lastOpts = opts
	s.lastLimit = limit
	if _, err := repository.BuildPropertySearchQuery(opts, limit); err != nil {
		return nil, err
	}
	return s.rows, nil
}

func (s *stubProperties) Get(_ context.Context, id int64) (model.Property, error) {
	return model.Property{}, sqlerr.Wrap(pgx.ErrNoRows, "properties")
}

func (s *stubProperties) Create(_ context.Context, p model.NewProperty) (model.Property, error) {
	return model.Property{ID: 1, OwnerID: p.OwnerID, Title: p.Title, CostPerNight: p.CostPerNight, Active: true}, nil
}

type stubUsers struct{}

func (stubUsers) Register(_ context.Context, name, email, _ string) (model.User, error) {
	return model.User{ID: 12, Name: name, Email: email, Password: "$2a$10$secret"}, nil
}

func (stubUsers) Login(context.Context, string, string) (model.User, error) {
	return model.User{}, errs.NewUnauthorizedError("Invalid email or password", true)
}

func (stubUsers) Get(_ context.Context, id int64) (model.User, error) {
	return model.User{ID: id, Name: "Ann"}, nil
}

type stubReservations struct {
	created []model.NewReservation
	guestID int64
}

func (s *stubReservations) Create(_ context.Context, r model.NewReservation) (model.Reservation, error) {
	s.created = append(s.created, r)
	return model.Reservation{ID: 1, StartDate: r.StartDate, EndDate: r.EndDate, PropertyID: r.PropertyID, GuestID: r.GuestID}, nil
}

func (s *stubReservations) ListForGuest(_ context.Context, guestID int64, _ int) ([]model.ReservationRow, error) {
	s.guestID = guestID
	return []model.ReservationRow{{ID: 1, GuestID: guestID, Title: "Speed lamp"}}, nil
}

type stubReviews struct {
	created model.NewReview
}

func (s *stubReviews) ListForProperty(context.Context, int64, int) ([]model.Review, error) {
	return []model.Review{}, nil
}

func (s *stubReviews) Create(_ context.Context, r model.NewReview) (model.Review, error) {
	s.created = r
	return model.Review{ID: 3, GuestID: r.GuestID, PropertyID: r.PropertyID, ReservationID: r.ReservationID, Rating: r.Rating}, nil
}

type testAPI struct {
	echo         *echo.Echo
	properties   *stubProperties
	reservations *stubReservations
	reviews      *stubReviews
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	api := &testAPI{
		echo:         echo.New(),
		properties:   &stubProperties{},
		reservations: &stubReservations{},
		reviews:      &stubReviews{},
	}

	base := Handler{}
	properties := NewPropertyHandler(base, api.properties)
	users := NewUserHandler(base, stubUsers{}, api.reservations)
	reservations := NewReservationHandler(base, api.reservations)
	reviews := NewReviewHandler(base, api.reviews)

	e := api.echo
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(&server.Server{}).GlobalErrorHandler

	e.GET("/properties", Handle(base, properties.SearchProperties, http.StatusOK, &SearchPropertiesRequest{}))
	e.POST("/properties", Handle(base, properties.CreateProperty, http.StatusCreated, &CreatePropertyRequest{}))
	e.GET("/properties/:id", Handle(base, properties.GetProperty, http.StatusOK, &GetPropertyRequest{}))
	e.POST("/properties/:id/reviews", Handle(base, reviews.CreateReview, http.StatusCreated, &CreateReviewRequest{}))
	e.POST("/users", Handle(base, users.Register, http.StatusCreated, &RegisterRequest{}))
	e.POST("/users/login", Handle(base, users.Login, http.StatusOK, &LoginRequest{}))
	e.GET("/users/:id/reservations", Handle(base, users.ListReservations, http.StatusOK, &ListReservationsRequest{}))
	e.POST("/reservations", Handle(base, reservations.CreateReservation, http.StatusCreated, &CreateReservationRequest{}))

	return api
}

func (api *testAPI) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	api.echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errs.HTTPError {
	t.Helper()

	var body errs.HTTPError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSearchProperties(t *testing.T) {
	api := newTestAPI(t)
	api.properties.rows = []model.PropertyRow{
		{Property: model.Property{ID: 1, City: "Vancouver", CostPerNight: 9300}, AverageRating: 4.5},
	}

	rec := api.do(http.MethodGet, "/properties?city=Vancouver&minimum_rating=4&limit=5", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, model.PropertySearchOptions{City: "Vancouver", MinimumRating: "4"}, api.properties.lastOpts)
	assert.Equal(t, 5, api.properties.lastLimit)

	var body PropertiesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Properties, 1)
	assert.Equal(t, "Vancouver", body.Properties[0].City)
	assert.InDelta(t, 4.5, body.Properties[0].AverageRating, 0.0001)
}

func TestSearchProperties_InvalidFilter(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/properties?owner_id=abc", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, "PROPERTY_FILTER_INVALID", body.Code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "owner_id", body.Errors[0].Field)
}

func TestSearchProperties_LimitOutOfRange(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/properties?limit=500", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeError(t, rec)
	assert.Equal(t, []errs.FieldError{{Field: "limit", Error: "must not exceed 100"}}, body.Errors)
}

func TestGetProperty_NotFound(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/properties/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "PROPERTY_NOT_FOUND", decodeError(t, rec).Code)
}

func TestCreateProperty_RequiresFields(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/properties", `{"owner_id": 1, "title": "Loft"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	fields := map[string]bool{}
	for _, fe := range decodeError(t, rec).Errors {
		fields[fe.Field] = true
	}
	assert.True(t, fields["cost_per_night"])
	assert.True(t, fields["city"])
	assert.False(t, fields["title"])
}

func TestRegister_HidesPassword(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/users", `{"name":"Ann","email":"ann@example.com","password":"password1"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestLogin_Unauthorized(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/users/login", `{"email":"ann@example.com","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", decodeError(t, rec).Message)
}

func TestListReservations_BindsPathParam(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/users/7/reservations", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(7), api.reservations.guestID)

	var body ReservationsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Len())
}

func TestCreateReservation(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/reservations",
		`{"guest_id":2,"property_id":4,"start_date":"2024-01-02","end_date":"2024-01-05"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, api.reservations.created, 1)
	created := api.reservations.created[0]
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), created.StartDate)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), created.EndDate)
}

func TestCreateReservation_ReversedDates(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/reservations",
		`{"guest_id":2,"property_id":4,"start_date":"2024-01-05","end_date":"2024-01-02"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []errs.FieldError{{Field: "end_date", Error: "must be after start_date"}}, decodeError(t, rec).Errors)
	assert.Empty(t, api.reservations.created)
}

func TestCreateReview_BindsPathAndBody(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodPost, "/properties/9/reviews",
		`{"guest_id":2,"reservation_id":5,"rating":4,"message":"tidy"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.NewReview{
		GuestID:       2,
		PropertyID:    9,
		ReservationID: 5,
		Rating:        4,
		Message:       "tidy",
	}, api.reviews.created)
}

func TestUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(http.MethodGet, "/nowhere", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Route not found", decodeError(t, rec).Message)
}

func TestNewRequest_AllocatesFreshValue(t *testing.T) {
	template := &SearchPropertiesRequest{City: "Vancouver"}

	first := newRequest(template)
	second := newRequest(template)

	assert.NotSame(t, template, first)
	assert.NotSame(t, first, second)
	assert.Empty(t, first.City)
}

func TestHandle_LogsThroughServerLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	base := NewHandler(&server.Server{Logger: &logger})
	properties := NewPropertyHandler(base, &stubProperties{})

	e := echo.New()
	e.GET("/properties", Handle(base, properties.SearchProperties, http.StatusOK, &SearchPropertiesRequest{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/properties", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, buf.String(), "request completed successfully")
	assert.Contains(t, buf.String(), `"route":"/properties"`)
}

func TestHandle_PrefersRequestLogger(t *testing.T) {
	var serverBuf, requestBuf bytes.Buffer
	serverLogger := zerolog.New(&serverBuf)
	requestLogger := zerolog.New(&requestBuf)

	base := NewHandler(&server.Server{Logger: &serverLogger})
	properties := NewPropertyHandler(base, &stubProperties{})

	e := echo.New()
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.LoggerKey, &requestLogger)
			return next(c)
		}
	})
	e.GET("/properties", Handle(base, properties.SearchProperties, http.StatusOK, &SearchPropertiesRequest{}))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/properties", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Contains(t, requestBuf.String(), "request completed successfully")
	assert.Empty(t, serverBuf.String())
}
