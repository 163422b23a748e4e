// Package jobs runs the background reminder dispatcher.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"myhealth-server/internal/events"
	"myhealth-server/internal/models"
)

// DefaultSchedule checks reminders every minute.
const DefaultSchedule = "* * * * *"

// ReminderSource lists active reminders set at a time of day.
type ReminderSource interface {
	ListActiveAt(ctx context.Context, timeOfDay string) ([]models.Reminder, error)
}

// ReminderDispatcher publishes a reminder.due event for every reminder that
// fires at the current minute.
type ReminderDispatcher struct {
	reminders ReminderSource
	publisher events.Publisher
	logger    zerolog.Logger
	location  *time.Location
}

func NewReminderDispatcher(reminders ReminderSource, publisher events.Publisher, logger zerolog.Logger, location *time.Location) *ReminderDispatcher {
	if location == nil {
		location = time.Local
	}
	return &ReminderDispatcher{
		reminders: reminders,
		publisher: publisher,
		logger:    logger.With().Str("component", "reminders").Logger(),
		location:  location,
	}
}

// RunAt dispatches the reminders due at now and returns how many fired.
func (d *ReminderDispatcher) RunAt(ctx context.Context, now time.Time) (int, error) {
	now = now.In(d.location)
	hhmm := now.Format(models.TimeOfDayLayout)
	reminders, err := d.reminders.ListActiveAt(ctx, hhmm)
	if err != nil {
		return 0, err
	}
	fired := 0
	for _, r := range reminders {
		if !DueOn(r.Days, now.Weekday()) {
			continue
		}
		events.Emit(ctx, d.publisher, d.logger, events.New(events.TypeReminderDue, r.SubjectID, events.ReminderDue{
			ReminderID: r.ID,
			SubjectID:  r.SubjectID,
			Title:      r.Title,
			Time:       r.TimeOfDay,
		}))
		fired++
	}
	return fired, nil
}

// Start schedules the dispatcher and returns the running cron. The caller
// stops it on shutdown.
func (d *ReminderDispatcher) Start(schedule string) (*cron.Cron, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	c := cron.New(cron.WithLocation(d.location))
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		fired, err := d.RunAt(ctx, time.Now())
		if err != nil {
			d.logger.Error().Err(err).Msg("dispatch reminders")
			return
		}
		if fired > 0 {
			d.logger.Info().Int("fired", fired).Msg("reminders dispatched")
		}
	})
	if err != nil {
		return nil, err
	}
	c.Start()
	d.logger.Info().Str("schedule", schedule).Msg("reminder dispatcher started")
	return c, nil
}
