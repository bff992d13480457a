package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

// Task type names stored in Redis; asynq routes on them.
const (
	TaskWelcome              = "email:welcome"
	TaskReservationConfirmed = "email:reservation_confirmed"
)

// WelcomeEmailPayload is the payload of TaskWelcome.
type WelcomeEmailPayload struct {
	To   string `json:"to"`
	Name string `json:"name"`
}

// ReservationConfirmedPayload is the payload of TaskReservationConfirmed.
type ReservationConfirmedPayload struct {
	To            string `json:"to"`
	GuestName     string `json:"guest_name"`
	PropertyTitle string `json:"property_title"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
}

// NewWelcomeEmailTask builds a welcome email task: three retries on the
// default queue, 30s per attempt.
func NewWelcomeEmailTask(to, name string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{
		To:   to,
		Name: name,
	})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// NewReservationConfirmedTask builds a confirmation email task. Guests are
// waiting on it, so it goes to the critical queue.
func NewReservationConfirmedTask(p ReservationConfirmedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskReservationConfirmed,
		payload,
		asynq.MaxRetry(5),
		asynq.Queue("critical"),
		asynq.Timeout(30*time.Second),
	), nil
}
