package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageTo(status models.CommunicationStatus, recipients ...*models.User) *dto.CreateCommunicationRequest {
	req := &dto.CreateCommunicationRequest{Subject: "Welcome", Content: "See you on day one", Status: &status}
	for _, u := range recipients {
		req.RecipientIDs = append(req.RecipientIDs, u.ID)
	}
	return req
}

func TestCreateCommunication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := principal(env.owner)

	draft, err := env.svc.Communication.Create(ctx, sender, &dto.CreateCommunicationRequest{
		Subject: "Hi", Content: "Draft", RecipientIDs: []uuid.UUID{env.student.ID, env.parent.ID, env.student.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationDraft, draft.Status)
	assert.Equal(t, models.CommunicationMessage, draft.Type)
	assert.Equal(t, []uuid.UUID{env.student.ID, env.parent.ID}, draft.RecipientIDs)
	assert.Nil(t, draft.SentAt)
	assert.Zero(t, env.notifier.count())

	sent, err := env.svc.Communication.Create(ctx, sender, messageTo(models.CommunicationSent, env.student))
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, fixedNow, *sent.SentAt)
	assert.Equal(t, 1, env.notifier.count())

	req := messageTo(models.CommunicationScheduled, env.student)
	_, err = env.svc.Communication.Create(ctx, sender, req)
	assertAppError(t, err, apperrors.ErrValidation, "Validation failed")
	req.ScheduledFor = ptr(fixedNow.Add(-time.Hour))
	_, err = env.svc.Communication.Create(ctx, sender, req)
	assertAppError(t, err, apperrors.ErrValidation, "Validation failed")
	req.ScheduledFor = ptr(fixedNow.Add(time.Hour))
	scheduled, err := env.svc.Communication.Create(ctx, sender, req)
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationScheduled, scheduled.Status)

	req = messageTo(models.CommunicationDraft)
	ghost := uuid.New()
	req.RecipientIDs = []uuid.UUID{env.student.ID, ghost}
	_, err = env.svc.Communication.Create(ctx, sender, req)
	assertAppError(t, err, apperrors.ErrValidation, MsgUnknownRecipients)
	fields := apperrors.Fields(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "recipientIds", fields[0].Field)
	assert.Equal(t, "unknown user ids: "+ghost.String(), fields[0].Message)
}

func TestCommunicationVisibility(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := principal(env.owner)

	draft, err := env.svc.Communication.Create(ctx, sender, messageTo(models.CommunicationDraft, env.student))
	require.NoError(t, err)

	_, err = env.svc.Communication.Get(ctx, sender, draft.ID)
	require.NoError(t, err)
	_, err = env.svc.Communication.Get(ctx, principal(env.student), draft.ID)
	assertAppError(t, err, apperrors.ErrNotFound, MsgCommunicationNotFound)
	_, err = env.svc.Communication.Get(ctx, principal(env.peer), draft.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgCommunicationNoAccess)

	sent, err := env.svc.Communication.Update(ctx, sender, draft.ID, &dto.UpdateCommunicationRequest{Status: ptr(models.CommunicationSent)})
	require.NoError(t, err)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, 1, env.notifier.count())

	got, err := env.svc.Communication.Get(ctx, principal(env.student), draft.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationSent, got.Status)

	inbox, total, err := env.svc.Communication.Inbox(ctx, principal(env.student), helpers.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.False(t, inbox[0].IsRead)

	outbox, total, err := env.svc.Communication.Outbox(ctx, sender, helpers.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, draft.ID, outbox[0].ID)
}

func TestUpdateSentCommunicationFails(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	sender := principal(env.owner)

	sent, err := env.svc.Communication.Create(ctx, sender, messageTo(models.CommunicationSent, env.student))
	require.NoError(t, err)

	_, err = env.svc.Communication.Update(ctx, sender, sent.ID, &dto.UpdateCommunicationRequest{Subject: ptr("Edited")})
	assertAppError(t, err, apperrors.ErrConflict, MsgCommunicationSent)
	assert.Equal(t, 400, apperrors.StatusCode(err))

	draft, err := env.svc.Communication.Create(ctx, sender, messageTo(models.CommunicationDraft, env.student))
	require.NoError(t, err)
	_, err = env.svc.Communication.Update(ctx, principal(env.student), draft.ID, &dto.UpdateCommunicationRequest{Subject: ptr("Mine")})
	assertAppError(t, err, apperrors.ErrForbidden, MsgCommunicationSenderOnly)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	reader := principal(env.student)

	sent, err := env.svc.Communication.Create(ctx, principal(env.owner), messageTo(models.CommunicationSent, env.student, env.parent))
	require.NoError(t, err)

	unread, err := env.svc.Communication.Unread(ctx, reader)
	require.NoError(t, err)
	assert.Equal(t, 1, unread.Count)

	first, created, err := env.svc.Communication.MarkRead(ctx, reader, sent.ID)
	require.NoError(t, err)
	assert.True(t, created)
	second, created, err := env.svc.Communication.MarkRead(ctx, reader, sent.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	unread, err = env.svc.Communication.Unread(ctx, reader)
	require.NoError(t, err)
	assert.Zero(t, unread.Count)
	assert.Empty(t, unread.Communications)

	_, _, err = env.svc.Communication.MarkRead(ctx, principal(env.peer), sent.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgRecipientsOnly)
}

func TestDeleteCommunication(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	comm, err := env.svc.Communication.Create(ctx, principal(env.owner), messageTo(models.CommunicationSent, env.student))
	require.NoError(t, err)

	err = env.svc.Communication.Delete(ctx, principal(env.student), comm.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgCommunicationSenderOnly)

	require.NoError(t, env.svc.Communication.Delete(ctx, principal(env.admin), comm.ID))
	_, err = env.svc.Communication.Get(ctx, principal(env.owner), comm.ID)
	assertAppError(t, err, apperrors.ErrNotFound, MsgCommunicationNotFound)
}
