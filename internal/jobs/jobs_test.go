package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myhealth-server/internal/events"
	"myhealth-server/internal/models"
)

func TestDueOn(t *testing.T) {
	tests := []struct {
		days string
		day  time.Weekday
		want bool
	}{
		{"", time.Sunday, true},
		{"Tous les jours", time.Wednesday, true},
		{"every day", time.Monday, true},
		{"Lun-Ven", time.Monday, true},
		{"Lun-Ven", time.Friday, true},
		{"Lun-Ven", time.Saturday, false},
		{"Ven-Lun", time.Sunday, true},
		{"Ven-Lun", time.Wednesday, false},
		{"Lundi, Mercredi", time.Wednesday, true},
		{"Lundi, Mercredi", time.Tuesday, false},
		{"mon wed fri", time.Friday, true},
		{"Sat/Sun", time.Thursday, false},
		{"sam.", time.Saturday, true},
		{"après le repas", time.Tuesday, true},
	}
	for _, tt := range tests {
		t.Run(tt.days+"/"+tt.day.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, DueOn(tt.days, tt.day))
		})
	}
}

type fakeReminders struct {
	byTime map[string][]models.Reminder
	err    error
	asked  []string
}

func (f *fakeReminders) ListActiveAt(_ context.Context, hhmm string) ([]models.Reminder, error) {
	f.asked = append(f.asked, hhmm)
	return f.byTime[hhmm], f.err
}

func TestReminderDispatcher_RunAt(t *testing.T) {
	src := &fakeReminders{byTime: map[string][]models.Reminder{
		"08:00": {
			{SubjectID: "u1", Title: "Metformine", TimeOfDay: "08:00", Days: "Lun-Ven", IsActive: true},
			{SubjectID: "u2", Title: "Tension", TimeOfDay: "08:00", Days: "Sam", IsActive: true},
			{SubjectID: "u3", Title: "Vitamine D", TimeOfDay: "08:00", IsActive: true},
		},
	}}
	rec := events.NewRecorder()
	d := NewReminderDispatcher(src, rec, zerolog.Nop(), time.UTC)

	// 2024-06-17 is a Monday.
	fired, err := d.RunAt(context.Background(), time.Date(2024, 6, 17, 8, 0, 30, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, fired)
	assert.Equal(t, []string{"08:00"}, src.asked)

	due := rec.OfType(events.TypeReminderDue)
	require.Len(t, due, 2)
	assert.Equal(t, "u1", due[0].Key)
	assert.Equal(t, "Metformine", due[0].Payload.(events.ReminderDue).Title)
}

func TestReminderDispatcher_UsesLocation(t *testing.T) {
	src := &fakeReminders{}
	paris := time.FixedZone("CEST", 2*3600)
	d := NewReminderDispatcher(src, events.NewRecorder(), zerolog.Nop(), paris)

	_, err := d.RunAt(context.Background(), time.Date(2024, 6, 17, 6, 15, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, []string{"08:15"}, src.asked)
}

func TestReminderDispatcher_Error(t *testing.T) {
	src := &fakeReminders{err: errors.New("db down")}
	d := NewReminderDispatcher(src, events.NewRecorder(), zerolog.Nop(), time.UTC)
	_, err := d.RunAt(context.Background(), time.Now())
	assert.Error(t, err)
}

func TestReminderDispatcher_StartRejectsBadSchedule(t *testing.T) {
	d := NewReminderDispatcher(&fakeReminders{}, events.NewRecorder(), zerolog.Nop(), time.UTC)
	_, err := d.Start("not a schedule")
	assert.Error(t, err)

	c, err := d.Start("")
	require.NoError(t, err)
	c.Stop()
}
