package agenda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myhealth-server/internal/apperr"
	"myhealth-server/internal/i18n"
)

func TestCanTransition(t *testing.T) {
	allowed := [][2]Status{
		{StatusFree, StatusPending},
		{StatusFree, StatusCancelled},
		{StatusPending, StatusConfirmed},
		{StatusPending, StatusCancelled},
		{StatusConfirmed, StatusCancelled},
		{StatusConfirmed, StatusDone},
	}
	for _, p := range allowed {
		assert.True(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}

	denied := [][2]Status{
		{StatusFree, StatusConfirmed},
		{StatusFree, StatusDone},
		{StatusPending, StatusDone},
		{StatusConfirmed, StatusPending},
		{StatusCancelled, StatusFree},
		{StatusCancelled, StatusPending},
		{StatusDone, StatusCancelled},
	}
	for _, p := range denied {
		assert.False(t, CanTransition(p[0], p[1]), "%s -> %s", p[0], p[1])
	}
}

func TestTransition_ReturnsConflict(t *testing.T) {
	assert.NoError(t, Transition(StatusPending, StatusConfirmed))
	err := Transition(StatusConfirmed, StatusConfirmed)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestTerminalAndSources(t *testing.T) {
	assert.True(t, Terminal(StatusDone))
	assert.True(t, Terminal(StatusCancelled))
	assert.False(t, Terminal(StatusFree))
	assert.Equal(t, []Status{StatusFree, StatusPending, StatusConfirmed}, SourcesOf(StatusCancelled))
	assert.Equal(t, []Status{StatusPending}, SourcesOf(StatusConfirmed))
}

func TestNewSlot(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

	s, err := NewSlot(SlotRequest{Start: start})
	require.NoError(t, err)
	assert.Equal(t, 30, s.DurationMinutes)
	assert.Equal(t, start.Add(30*time.Minute), s.End)
	assert.Equal(t, KindInPerson, s.Kind)

	s, err = NewSlot(SlotRequest{Start: start, Duration: 45 * time.Minute, Kind: KindVideo})
	require.NoError(t, err)
	assert.Equal(t, 45, s.DurationMinutes)
	assert.Equal(t, KindVideo, s.Kind)

	end := start.Add(time.Hour)
	s, err = NewSlot(SlotRequest{Start: start, End: &end, Duration: 10 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, 60, s.DurationMinutes)
	assert.Equal(t, end, s.End)

	// End always matches the stored whole-minute duration.
	end = start.Add(90 * time.Second)
	s, err = NewSlot(SlotRequest{Start: start, End: &end})
	require.NoError(t, err)
	assert.Equal(t, 1, s.DurationMinutes)
	assert.Equal(t, start.Add(time.Minute), s.End)

	_, err = NewSlot(SlotRequest{Start: start, Duration: 40 * time.Second})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDuration))
}

func TestNewSlot_InvalidDuration(t *testing.T) {
	start := time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)
	for _, end := range []time.Time{start, start.Add(-time.Minute)} {
		end := end
		_, err := NewSlot(SlotRequest{Start: start, End: &end})
		assert.True(t, errors.Is(err, apperr.ErrInvalidDuration))
	}
	_, err := NewSlot(SlotRequest{Start: start, Duration: -5 * time.Minute})
	assert.True(t, errors.Is(err, apperr.ErrInvalidDuration))

	_, err = NewSlot(SlotRequest{Start: start, Kind: Kind("teleport")})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestWeekStrip(t *testing.T) {
	target := time.Date(2024, 6, 15, 14, 30, 0, 0, time.UTC)
	days := WeekStrip(target, i18n.French)
	require.Len(t, days, 7)
	assert.Equal(t, "2024-06-14", days[0].Date)
	assert.Equal(t, "2024-06-20", days[6].Date)
	assert.Equal(t, "Ven", days[0].DayName)
	assert.Equal(t, "Sam", days[1].DayName)
	assert.Equal(t, "15", days[1].DayNum)

	active := 0
	for i, d := range days {
		if d.IsActive {
			active++
			assert.Equal(t, 1, i)
			assert.Equal(t, "2024-06-15", d.Date)
		}
	}
	assert.Equal(t, 1, active)

	en := WeekStrip(target, i18n.English)
	assert.Equal(t, "Sat", en[1].DayName)
}

func TestNowOffsetPercent(t *testing.T) {
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return time.Date(2024, 6, 15, h, m, 0, 0, time.UTC) }

	assert.Equal(t, 0.0, NowOffsetPercent(day, at(8, 0)))
	assert.Equal(t, 50.0, NowOffsetPercent(day, at(13, 30)))
	assert.Equal(t, 100.0, NowOffsetPercent(day, at(19, 0)))
	assert.Equal(t, NoIndicator, NowOffsetPercent(day, at(7, 59)))
	assert.Equal(t, NoIndicator, NowOffsetPercent(day, at(19, 1)))
	assert.Equal(t, NoIndicator, NowOffsetPercent(day.AddDate(0, 0, 1), at(10, 0)))
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC), ParseDate("2024-06-20", now))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), ParseDate("garbage", now))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), ParseDate("", now))
}

func TestDayBounds(t *testing.T) {
	start, end := DayBounds(time.Date(2024, 6, 15, 14, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC), end)
}
