package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/deppfellow/lightbnb/internal/lib/email"
)

// Mailer sends the emails job handlers are responsible for.
type Mailer interface {
	SendWelcomeEmail(to, name string) error
	SendReservationConfirmedEmail(to string, details email.ReservationDetails) error
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w", err)
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("processing welcome email task")

	if err := j.mailer.SendWelcomeEmail(p.To, p.Name); err != nil {
		j.logger.Error().
			Str("type", "welcome").
			Str("to", p.To).
			Err(err).
			Msg("failed to send welcome email")
		return err
	}

	j.logger.Info().
		Str("type", "welcome").
		Str("to", p.To).
		Msg("sent welcome email")

	return nil
}

func (j *JobService) handleReservationConfirmedTask(ctx context.Context, t *asynq.Task) error {
	var p ReservationConfirmedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal reservation payload: %w", err)
	}

	logger := j.logger.With().
		Str("type", "reservation_confirmed").
		Str("to", p.To).
		Logger()

	err := j.mailer.SendReservationConfirmedEmail(p.To, email.ReservationDetails{
		GuestName:     p.GuestName,
		PropertyTitle: p.PropertyTitle,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send reservation confirmation")
		return err
	}

	logger.Info().Msg("sent reservation confirmation")
	return nil
}

// mux routes task types to their handlers.
func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
	mux.HandleFunc(TaskReservationConfirmed, j.handleReservationConfirmedTask)
	return mux
}
