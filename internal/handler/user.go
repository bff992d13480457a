package handler

import (
	"context"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/lightbnb/internal/middleware"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
)

type userService interface {
	Register(ctx context.Context, name, email, password string) (model.User, error)
	Login(ctx context.Context, email, password string) (model.User, error)
	Get(ctx context.Context, id int64) (model.User, error)
}

type reservationLister interface {
	ListForGuest(ctx context.Context, guestID int64, limit int) ([]model.ReservationRow, error)
}

type UserHandler struct {
	Handler
	users        userService
	reservations reservationLister
}

func NewUserHandler(h Handler, users userService, reservations reservationLister) *UserHandler {
	return &UserHandler{Handler: h, users: users, reservations: reservations}
}

// RegisterRequest is bounded at 72 password bytes, the bcrypt input limit.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

func (r *RegisterRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) Register(c echo.Context, req *RegisterRequest) (model.User, error) {
	user, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return model.User{}, err
	}

	c.Set(middleware.UserIDKey, strconv.FormatInt(user.ID, 10))
	return user, nil
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) Login(c echo.Context, req *LoginRequest) (model.User, error) {
	user, err := h.users.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return model.User{}, err
	}

	c.Set(middleware.UserIDKey, strconv.FormatInt(user.ID, 10))
	return user, nil
}

type GetUserRequest struct {
	ID int64 `param:"id" json:"-" validate:"gt=0"`
}

func (r *GetUserRequest) Validate() error {
	return validation.Struct(r)
}

func (h *UserHandler) GetUser(c echo.Context, req *GetUserRequest) (model.User, error) {
	return h.users.Get(c.Request().Context(), req.ID)
}

type ListReservationsRequest struct {
	GuestID int64 `param:"id" json:"-" validate:"gt=0"`
	Limit   int   `query:"limit" validate:"min=0,max=100"`
}

func (r *ListReservationsRequest) Validate() error {
	return validation.Struct(r)
}

type ReservationsResponse struct {
	Reservations []model.ReservationRow `json:"reservations"`
}

func (r ReservationsResponse) Len() int { return len(r.Reservations) }

func (h *UserHandler) ListReservations(c echo.Context, req *ListReservationsRequest) (ReservationsResponse, error) {
	reservations, err := h.reservations.ListForGuest(c.Request().Context(), req.GuestID, req.Limit)
	if err != nil {
		return ReservationsResponse{}, err
	}

	return ReservationsResponse{Reservations: reservations}, nil
}
