package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/auth"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := principal(env.owner)

	day1, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Kickoff", StartTime: "09:00", EndTime: "12:00"})
	require.NoError(t, err)
	_, err = env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Again"})
	assertAppError(t, err, apperrors.ErrConflict, MsgSessionDayExists)

	_, err = env.svc.Session.Create(ctx, principal(env.other), env.bootcamp.ID, &dto.CreateSessionRequest{Day: 2, Title: "Hijack"})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
	_, err = env.svc.Session.Create(ctx, principal(env.admin), uuid.New(), &dto.CreateSessionRequest{Day: 1, Title: "Nowhere"})
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgBootcampNotFound)
	_, err = env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 3, Title: "Backwards", StartTime: "12:00", EndTime: "09:00"})
	assertAppError(t, err, apperrors.ErrValidation, "Validation failed")

	day2, err := env.svc.Session.Create(ctx, principal(env.admin), env.bootcamp.ID, &dto.CreateSessionRequest{Day: 2, Title: "Build"})
	require.NoError(t, err)

	_, err = env.svc.Session.Update(ctx, owner, day2.ID, &dto.UpdateSessionRequest{Day: ptr(1)})
	assertAppError(t, err, apperrors.ErrConflict, MsgSessionDayExists)
	// keeping its own day is not a conflict
	updated, err := env.svc.Session.Update(ctx, owner, day1.ID, &dto.UpdateSessionRequest{Day: ptr(1), Title: ptr("Welcome")})
	require.NoError(t, err)
	assert.Equal(t, "Welcome", updated.Title)

	sessions, err := env.svc.Session.ListByBootcamp(ctx, env.bootcamp.ID)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, 1, sessions[0].Day)
	assert.Equal(t, 2, sessions[1].Day)

	require.NoError(t, env.svc.Session.Delete(ctx, owner, day2.ID))
	_, err = env.svc.Session.Get(ctx, day2.ID)
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgSessionNotFound)
}

func TestActivities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := principal(env.owner)

	session, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Kickoff"})
	require.NoError(t, err)
	other, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 2, Title: "Build"})
	require.NoError(t, err)

	warmup, err := env.svc.Activity.Create(ctx, owner, session.ID, &dto.CreateActivityRequest{Time: "09:30", Title: "Warmup", DurationMinutes: 15})
	require.NoError(t, err)
	_, err = env.svc.Activity.Create(ctx, owner, session.ID, &dto.CreateActivityRequest{Time: "08:00", Title: "Coffee"})
	require.NoError(t, err)
	_, err = env.svc.Activity.Create(ctx, owner, session.ID, &dto.CreateActivityRequest{Time: "09:30", Title: "Clash"})
	assertAppError(t, err, apperrors.ErrConflict, MsgActivityTimeExists)
	_, err = env.svc.Activity.Create(ctx, principal(env.other), session.ID, &dto.CreateActivityRequest{Time: "11:00", Title: "Hijack"})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	activities, err := env.svc.Activity.ListBySession(ctx, session.ID)
	require.NoError(t, err)
	require.Len(t, activities, 2)
	assert.Equal(t, "08:00", activities[0].Time)

	withActivities, err := env.svc.Session.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Len(t, withActivities.Activities, 2)

	_, err = env.svc.Activity.Update(ctx, owner, other.ID, warmup.ID, &dto.UpdateActivityRequest{Title: ptr("Moved")})
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgActivityNotFound)
	moved, err := env.svc.Activity.Update(ctx, owner, session.ID, warmup.ID, &dto.UpdateActivityRequest{Time: ptr("10:00")})
	require.NoError(t, err)
	assert.Equal(t, "10:00", moved.Time)

	require.NoError(t, env.svc.Activity.Delete(ctx, principal(env.admin), session.ID, warmup.ID))
	err = env.svc.Activity.Delete(ctx, owner, session.ID, warmup.ID)
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgActivityNotFound)
}

func TestAttendance(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := principal(env.owner)

	session, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Kickoff"})
	require.NoError(t, err)
	studentID := env.student.Profile.ProfileID()
	record := &dto.RecordAttendanceRequest{StudentID: studentID, Status: models.AttendancePresent}

	_, err = env.svc.Attendance.Record(ctx, owner, session.ID, record)
	assertAppError(t, err, apperrors.ErrConflict, MsgNotEnrolled)

	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.student), env.bootcamp.ID)
	require.NoError(t, err)
	created, err := env.svc.Attendance.Record(ctx, owner, session.ID, record)
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, created.RecordedBy)

	_, err = env.svc.Attendance.Record(ctx, owner, session.ID, record)
	assertAppError(t, err, apperrors.ErrConflict, MsgAttendanceRecorded)
	_, err = env.svc.Attendance.Record(ctx, principal(env.other), session.ID, record)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
	_, err = env.svc.Attendance.Record(ctx, owner, session.ID, &dto.RecordAttendanceRequest{StudentID: uuid.New(), Status: models.AttendanceLate})
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgStudentNotFound)

	updated, err := env.svc.Attendance.Update(ctx, principal(env.admin), session.ID, studentID, &dto.UpdateAttendanceRequest{Status: ptr(models.AttendanceExcused), Notes: ptr("doctor")})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceExcused, updated.Status)
	assert.Equal(t, env.admin.ID, updated.RecordedBy)

	_, err = env.svc.Attendance.Update(ctx, owner, session.ID, env.peer.Profile.ProfileID(), &dto.UpdateAttendanceRequest{Notes: ptr("x")})
	assertAppError(t, err, apperrors.ErrNotFound, MsgAttendanceNotFound)

	records, err := env.svc.Attendance.List(ctx, owner, session.ID)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AttendanceExcused, records[0].Status)
}

func TestNonOwnerCannotModifySessionsOrActivities(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := principal(env.owner)
	intruder := principal(env.other)

	session, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Kickoff"})
	require.NoError(t, err)
	activity, err := env.svc.Activity.Create(ctx, owner, session.ID, &dto.CreateActivityRequest{Time: "09:30", Title: "Warmup"})
	require.NoError(t, err)

	_, err = env.svc.Session.Update(ctx, intruder, session.ID, &dto.UpdateSessionRequest{Title: ptr("Hijacked")})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
	err = env.svc.Session.Delete(ctx, intruder, session.ID)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	_, err = env.svc.Activity.Update(ctx, intruder, session.ID, activity.ID, &dto.UpdateActivityRequest{Title: ptr("Hijacked")})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
	err = env.svc.Activity.Delete(ctx, intruder, session.ID, activity.ID)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	unchanged, err := env.svc.Session.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kickoff", unchanged.Title)
	require.Len(t, unchanged.Activities, 1)
	assert.Equal(t, "Warmup", unchanged.Activities[0].Title)
}
