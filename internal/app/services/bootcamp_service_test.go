package services

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/auth"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReq() *dto.CreateBootcampRequest {
	return &dto.CreateBootcampRequest{Title: "AI Basics", Description: "Intro", Subject: "STEM", Format: models.FormatHybrid, Capacity: 2}
}

func TestCreateBootcamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	b, err := env.svc.Bootcamp.Create(ctx, principal(env.owner), createReq())
	require.NoError(t, err)
	assert.Equal(t, models.BootcampDraft, b.Status)
	assert.Equal(t, env.owner.Profile.ProfileID(), b.FacilitatorID)

	_, err = env.svc.Bootcamp.Create(ctx, principal(env.student), createReq())
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgFacilitatorOrAdmin)

	_, err = env.svc.Bootcamp.Create(ctx, principal(env.admin), createReq())
	assertAppError(t, err, apperrors.ErrValidation, MsgFacilitatorRequired)

	req := createReq()
	req.FacilitatorID = ptr(env.other.Profile.ProfileID())
	req.Status = ptr(models.BootcampPublished)
	b, err = env.svc.Bootcamp.Create(ctx, principal(env.admin), req)
	require.NoError(t, err)
	assert.Equal(t, env.other.Profile.ProfileID(), b.FacilitatorID)
	assert.Equal(t, models.BootcampPublished, b.Status)

	req.FacilitatorID = ptr(uuid.New())
	_, err = env.svc.Bootcamp.Create(ctx, principal(env.admin), req)
	assertAppError(t, err, apperrors.ErrNotFound, MsgFacilitatorNotFound)
}

func TestUpdateAndDeleteBootcamp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.svc.Bootcamp.Update(ctx, principal(env.other), env.bootcamp.ID, &dto.UpdateBootcampRequest{Title: ptr("Mine now")})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	updated, err := env.svc.Bootcamp.Update(ctx, principal(env.owner), env.bootcamp.ID, &dto.UpdateBootcampRequest{Title: ptr("Robotics II")})
	require.NoError(t, err)
	assert.Equal(t, "Robotics II", updated.Title)

	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.student), env.bootcamp.ID)
	require.NoError(t, err)
	_, err = env.svc.Bootcamp.Update(ctx, principal(env.admin), env.bootcamp.ID, &dto.UpdateBootcampRequest{Capacity: ptr(0)})
	assertAppError(t, err, apperrors.ErrConflict, MsgCapacityTooLow)

	_, err = env.svc.Bootcamp.Update(ctx, principal(env.admin), uuid.New(), &dto.UpdateBootcampRequest{Title: ptr("x")})
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgBootcampNotFound)

	require.NoError(t, env.svc.Bootcamp.Delete(ctx, principal(env.admin), env.bootcamp.ID))
	_, err = env.svc.Bootcamp.Get(ctx, env.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgBootcampNotFound)
}

func TestEnrollRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	draft, err := env.svc.Bootcamp.Create(ctx, principal(env.owner), createReq())
	require.NoError(t, err)
	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.student), draft.ID)
	assertAppError(t, err, apperrors.ErrConflict, MsgBootcampNotAvailable)

	resp, err := env.svc.Bootcamp.Enroll(ctx, principal(env.student), env.bootcamp.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Bootcamp.EnrollmentCount)
	assert.Equal(t, models.EnrollmentActive, resp.Enrollment.Status)

	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.student), env.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrConflict, MsgAlreadyEnrolled)

	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.owner), env.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgStudentsOnly)

	_, err = env.svc.Bootcamp.Enroll(ctx, principal(env.student), uuid.New())
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgBootcampNotFound)

	enrollments, err := env.svc.Bootcamp.ListEnrollments(ctx, principal(env.owner), env.bootcamp.ID)
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
	_, err = env.svc.Bootcamp.ListEnrollments(ctx, principal(env.other), env.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
}

func TestConcurrentEnrollForLastSeat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	req := createReq()
	req.Capacity = 1
	req.Status = ptr(models.BootcampPublished)
	b, err := env.svc.Bootcamp.Create(ctx, principal(env.owner), req)
	require.NoError(t, err)

	racers := []*models.User{env.student, env.peer}
	errs := make([]error, len(racers))
	var wg sync.WaitGroup
	for i, u := range racers {
		wg.Add(1)
		go func(i int, u *models.User) {
			defer wg.Done()
			_, errs[i] = env.svc.Bootcamp.Enroll(ctx, principal(u), b.ID)
		}(i, u)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assertAppError(t, err, apperrors.ErrConflict, MsgBootcampFull)
	}
	assert.Equal(t, 1, succeeded)

	got, err := env.svc.Bootcamp.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EnrollmentCount)
}

func TestListBootcamps(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.svc.Bootcamp.Create(ctx, principal(env.owner), createReq())
	require.NoError(t, err)

	page := helpers.Pagination{Page: 1, Limit: 10}
	all, total, err := env.svc.Bootcamp.List(ctx, models.BootcampFilter{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	published, total, err := env.svc.Bootcamp.List(ctx, models.BootcampFilter{Status: models.BootcampPublished}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, env.bootcamp.ID, published[0].ID)
}
