package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myhealth-server/internal/agenda"
	"myhealth-server/internal/apperr"
	"myhealth-server/internal/models"
	"myhealth-server/internal/store"
	"myhealth-server/internal/store/storetest"
	"myhealth-server/internal/vitals"
)

var base = time.Date(2024, 6, 15, 9, 0, 0, 0, time.UTC)

func TestMeasurementStore(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	patient := storetest.User(t, db, models.RolePatient, "p@example.com")

	latest, err := st.Measurements.LatestByKind(ctx, patient.ID, vitals.KindBloodSugar)
	require.NoError(t, err)
	assert.Nil(t, latest)

	for i, v := range []float64{100, 110, 120} {
		m, err := models.NewMeasurement(patient.ID, vitals.KindBloodSugar, v, nil, "", base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, err)
		require.NoError(t, st.Measurements.Create(ctx, m))
	}
	w, err := models.NewMeasurement(patient.ID, vitals.KindWeight, 70, nil, "", base.Add(5*time.Hour))
	require.NoError(t, err)
	require.NoError(t, st.Measurements.Create(ctx, w))

	latest, err = st.Measurements.LatestByKind(ctx, patient.ID, vitals.KindBloodSugar)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 120.0, latest.PrimaryValue)

	sugar, err := st.Measurements.ListBySubject(ctx, patient.ID, vitals.KindBloodSugar, 2)
	require.NoError(t, err)
	require.Len(t, sugar, 2)
	assert.Equal(t, 120.0, sugar[0].PrimaryValue)
	assert.Equal(t, 110.0, sugar[1].PrimaryValue)

	all, err := st.Measurements.ListBySubject(ctx, patient.ID, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, vitals.KindWeight, all[0].Kind)

	latest.PrimaryValue = 115
	require.NoError(t, st.Measurements.Save(ctx, latest))
	again, err := st.Measurements.LatestByKind(ctx, patient.ID, vitals.KindBloodSugar)
	require.NoError(t, err)
	assert.Equal(t, 115.0, again.PrimaryValue)
	assert.Equal(t, latest.ID, again.ID)

	require.NoError(t, st.Measurements.Delete(ctx, w.ID, patient.ID))
	err = st.Measurements.Delete(ctx, w.ID, patient.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAppointmentStore_ClaimIsConditional(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	doctor := storetest.User(t, db, models.RoleDoctor, "d@example.com")
	p1 := storetest.User(t, db, models.RolePatient, "p1@example.com")
	p2 := storetest.User(t, db, models.RolePatient, "p2@example.com")

	slot := &models.Appointment{
		DoctorID:        doctor.ID,
		StartTime:       base,
		EndTime:         base.Add(30 * time.Minute),
		DurationMinutes: 30,
		Kind:            agenda.KindInPerson,
		Status:          agenda.StatusFree,
	}
	require.NoError(t, st.Appointments.Create(ctx, slot))

	ok, err := st.Appointments.Claim(ctx, slot.ID, p1.ID, "first")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Appointments.Claim(ctx, slot.ID, p2.ID, "second")
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := st.Appointments.FindByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, agenda.StatusPending, got.Status)
	assert.True(t, got.IsBookedBy(p1.ID))
	require.NotNil(t, got.Patient)
	assert.Equal(t, "p1@example.com", got.Patient.Email)
	assert.Equal(t, "first", got.Notes)
}

func TestAppointmentStore_Transition(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	doctor := storetest.User(t, db, models.RoleDoctor, "d@example.com")

	slot := &models.Appointment{DoctorID: doctor.ID, StartTime: base, EndTime: base.Add(time.Hour), DurationMinutes: 60, Status: agenda.StatusPending}
	require.NoError(t, st.Appointments.Create(ctx, slot))

	ok, err := st.Appointments.Transition(ctx, slot.ID, []agenda.Status{agenda.StatusPending}, agenda.StatusConfirmed, map[string]any{"video_link": "https://meet.example/x"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = st.Appointments.Transition(ctx, slot.ID, []agenda.Status{agenda.StatusPending}, agenda.StatusConfirmed, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := st.Appointments.FindByID(ctx, slot.ID)
	require.NoError(t, err)
	assert.Equal(t, agenda.StatusConfirmed, got.Status)
	assert.Equal(t, "https://meet.example/x", got.VideoLink)

	ok, err = st.Appointments.Transition(ctx, slot.ID, nil, agenda.StatusDone, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = st.Appointments.FindByID(ctx, "missing")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestAppointmentStore_Listings(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	doctor := storetest.User(t, db, models.RoleDoctor, "d@example.com")
	other := storetest.User(t, db, models.RoleDoctor, "d2@example.com")
	patient := storetest.User(t, db, models.RolePatient, "p@example.com")
	pid := patient.ID

	mk := func(doc string, start time.Time, status agenda.Status, patientID *string) *models.Appointment {
		a := &models.Appointment{DoctorID: doc, PatientID: patientID, StartTime: start, EndTime: start.Add(30 * time.Minute), DurationMinutes: 30, Status: status}
		require.NoError(t, st.Appointments.Create(ctx, a))
		return a
	}
	mk(doctor.ID, base.Add(2*time.Hour), agenda.StatusConfirmed, &pid)
	mk(doctor.ID, base, agenda.StatusFree, nil)
	mk(doctor.ID, base.Add(time.Hour), agenda.StatusCancelled, nil)
	mk(doctor.ID, base.Add(24*time.Hour), agenda.StatusPending, &pid)
	mk(other.ID, base.Add(3*time.Hour), agenda.StatusFree, nil)

	day, err := st.Appointments.ListForDoctorBetween(ctx, doctor.ID, base.Add(-9*time.Hour), base.Add(15*time.Hour))
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, agenda.StatusFree, day[0].Status)
	assert.Equal(t, agenda.StatusConfirmed, day[1].Status)
	require.NotNil(t, day[1].Patient)

	next, err := st.Appointments.NextForDoctor(ctx, doctor.ID, base, 3)
	require.NoError(t, err)
	require.Len(t, next, 3)
	assert.Equal(t, agenda.StatusFree, next[0].Status)
	assert.Equal(t, agenda.StatusConfirmed, next[1].Status)

	next, err = st.Appointments.NextForDoctor(ctx, doctor.ID, base, 1)
	require.NoError(t, err)
	assert.Len(t, next, 1)

	free, err := st.Appointments.ListFreeAfter(ctx, "", base)
	require.NoError(t, err)
	assert.Len(t, free, 2)
	free, err = st.Appointments.ListFreeAfter(ctx, other.ID, base)
	require.NoError(t, err)
	require.Len(t, free, 1)
	require.NotNil(t, free[0].Doctor)
	assert.Equal(t, "d2@example.com", free[0].Doctor.Email)

	mine, err := st.Appointments.ListForPatient(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, agenda.StatusPending, mine[0].Status)

	all, err := st.Appointments.ListForDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAlertStore(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	patient := storetest.User(t, db, models.RolePatient, "p@example.com")
	doctor := storetest.User(t, db, models.RoleDoctor, "d@example.com")

	m, err := models.NewMeasurement(patient.ID, vitals.KindBloodSugar, 200, nil, "", base)
	require.NoError(t, err)
	require.NoError(t, st.Measurements.Create(ctx, m))

	alert := models.AlertFor(m)
	created, err := st.Alerts.Upsert(ctx, alert)
	require.NoError(t, err)
	assert.True(t, created)
	firstID := alert.ID

	m.PrimaryValue = 220
	again := models.AlertFor(m)
	created, err = st.Alerts.Upsert(ctx, again)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, firstID, again.ID)

	open, err := st.Alerts.ListOpen(ctx, 50)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, 220.0, open[0].PrimaryValue)
	require.NotNil(t, open[0].Subject)
	assert.Equal(t, patient.ID, open[0].Subject.ID)

	ok, err := st.Alerts.Acknowledge(ctx, firstID, doctor.ID, base.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = st.Alerts.Acknowledge(ctx, firstID, doctor.ID, base.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, ok)

	acked, err := st.Alerts.FindByID(ctx, firstID)
	require.NoError(t, err)
	assert.Equal(t, models.AlertStatusAcknowledged, acked.Status)
	require.NotNil(t, acked.AcknowledgedBy)
	assert.Equal(t, doctor.ID, *acked.AcknowledgedBy)

	// Acknowledged alerts survive a cleanup of open ones.
	require.NoError(t, st.Alerts.DeleteOpenForMeasurement(ctx, m.ID))
	_, err = st.Alerts.FindByID(ctx, firstID)
	require.NoError(t, err)

	open, err = st.Alerts.ListOpen(ctx, 50)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestReminderStore(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	patient := storetest.User(t, db, models.RolePatient, "p@example.com")

	evening, err := models.NewReminder(patient.ID, "Insuline", "20:00", "")
	require.NoError(t, err)
	morning, err := models.NewReminder(patient.ID, "Metformine", "08:00", "Lun-Ven")
	require.NoError(t, err)
	require.NoError(t, st.Reminders.Create(ctx, evening))
	require.NoError(t, st.Reminders.Create(ctx, morning))

	list, err := st.Reminders.ListBySubject(ctx, patient.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Metformine", list[0].Title)

	morning.IsActive = false
	require.NoError(t, st.Reminders.Save(ctx, morning))
	got, err := st.Reminders.FindByID(ctx, morning.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	due, err := st.Reminders.ListActiveAt(ctx, "08:00")
	require.NoError(t, err)
	assert.Empty(t, due)
	due, err = st.Reminders.ListActiveAt(ctx, "20:00")
	require.NoError(t, err)
	assert.Len(t, due, 1)

	require.NoError(t, st.Reminders.Delete(ctx, evening.ID))
	_, err = st.Reminders.FindByID(ctx, evening.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestUserStore_RefreshTokens(t *testing.T) {
	ctx := context.Background()
	db := storetest.NewDB(t)
	st := store.New(db)
	u := storetest.User(t, db, models.RolePatient, "p@example.com")

	found, err := st.Users.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = st.Users.FindByEmail(ctx, "p@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, u.ID, found.ID)

	tok := &models.RefreshToken{UserID: u.ID, Token: "tok-1", ExpiresAt: base.Add(time.Hour)}
	require.NoError(t, st.Users.CreateRefreshToken(ctx, tok))

	_, err = st.Users.FindActiveRefreshToken(ctx, "tok-1", u.ID, base)
	require.NoError(t, err)
	_, err = st.Users.FindActiveRefreshToken(ctx, "tok-1", u.ID, base.Add(2*time.Hour))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	require.NoError(t, st.Users.RevokeRefreshToken(ctx, "tok-1", base))
	_, err = st.Users.FindActiveRefreshToken(ctx, "tok-1", u.ID, base.Add(-time.Minute))
	assert.True(t, errors.Is(err, apperr.ErrNotFound))

	doctors, err := st.Users.ListByRole(ctx, models.RoleDoctor)
	require.NoError(t, err)
	assert.Empty(t, doctors)
}
