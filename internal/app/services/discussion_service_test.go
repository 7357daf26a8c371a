package services

import (
	"context"
	"testing"

	"github.com/mindforge/mindforge-api/internal/app/auth"
	"github.com/mindforge/mindforge-api/internal/app/models/dto"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/mindforge/mindforge-api/internal/pkg/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscussions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := principal(env.owner)

	topic, err := env.svc.Discussion.Create(ctx, owner, env.bootcamp.ID, &dto.CreateDiscussionRequest{Day: 2, Title: "Ethics"})
	require.NoError(t, err)
	assert.NotNil(t, topic.Prompts)

	_, err = env.svc.Discussion.Create(ctx, owner, env.bootcamp.ID, &dto.CreateDiscussionRequest{Day: 2, Title: "Again"})
	assertAppError(t, err, apperrors.ErrConflict, MsgDiscussionDayExists)
	_, err = env.svc.Discussion.Create(ctx, principal(env.other), env.bootcamp.ID, &dto.CreateDiscussionRequest{Day: 3, Title: "Hijack"})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	_, err = env.svc.Discussion.Update(ctx, principal(env.other), topic.ID, &dto.UpdateDiscussionRequest{Title: ptr("Mine")})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)
	updated, err := env.svc.Discussion.Update(ctx, principal(env.admin), topic.ID, &dto.UpdateDiscussionRequest{Prompts: []string{"Is AI fair?"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Is AI fair?"}, updated.Prompts)

	_, err = env.svc.Discussion.Create(ctx, owner, env.bootcamp.ID, &dto.CreateDiscussionRequest{Day: 1, Title: "Intro"})
	require.NoError(t, err)
	topics, total, err := env.svc.Discussion.ListByBootcamp(ctx, env.bootcamp.ID, helpers.Pagination{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, topics, 1)

	require.NoError(t, env.svc.Discussion.Delete(ctx, owner, topic.ID))
	_, err = env.svc.Discussion.Get(ctx, topic.ID)
	assertAppError(t, err, apperrors.ErrNotFound, auth.MsgDiscussionNotFound)
}
