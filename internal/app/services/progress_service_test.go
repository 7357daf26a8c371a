package services

import (
	"context"
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

func seedRubric(t *testing.T, env *testEnv) {
	t.Helper()
	require.NoError(t, env.repos.RubricRepository.Upsert(context.Background(), &models.Rubric{
		Skill:       "collaboration",
		Description: "Works with others",
		Levels: []models.RubricLevel{
			{Level: 1, Label: "Beginning"}, {Level: 2, Label: "Developing"},
			{Level: 3, Label: "Proficient"}, {Level: 4, Label: "Advanced"},
		},
	}))
}

func TestRecordProgress(t *testing.T) {
	env := newTestEnv(t)
	seedRubric(t, env)
	ctx := context.Background()
	owner := principal(env.owner)
	studentID := env.student.Profile.ProfileID()

	session, err := env.svc.Session.Create(ctx, owner, env.bootcamp.ID, &dto.CreateSessionRequest{Day: 1, Title: "Kickoff"})
	require.NoError(t, err)

	rec, err := env.svc.Progress.Create(ctx, owner, &dto.CreateProgressRequest{StudentID: studentID, SessionID: &session.ID, Skill: "collaboration", Level: 3})
	require.NoError(t, err)
	assert.Equal(t, env.owner.Profile.ProfileID(), rec.FacilitatorID)
	require.NotNil(t, rec.BootcampID)
	assert.Equal(t, env.bootcamp.ID, *rec.BootcampID)
	assert.False(t, rec.AssessedAt.IsZero())

	_, err = env.svc.Progress.Create(ctx, owner, &dto.CreateProgressRequest{StudentID: studentID, Skill: "juggling", Level: 2})
	assertAppError(t, err, apperrors.ErrNotFound, MsgRubricNotFound)

	_, err = env.svc.Progress.Create(ctx, principal(env.other), &dto.CreateProgressRequest{StudentID: studentID, BootcampID: &env.bootcamp.ID, Skill: "collaboration", Level: 2})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	_, err = env.svc.Progress.Create(ctx, owner, &dto.CreateProgressRequest{StudentID: studentID, BootcampID: ptr(uuid.New()), SessionID: &session.ID, Skill: "collaboration", Level: 2})
	assertAppError(t, err, apperrors.ErrValidation, MsgSessionOutsideBootcamp)

	_, err = env.svc.Progress.Create(ctx, principal(env.admin), &dto.CreateProgressRequest{StudentID: studentID, Skill: "collaboration", Level: 1})
	assertAppError(t, err, apperrors.ErrValidation, MsgAssessorRequired)

	rec, err = env.svc.Progress.Create(ctx, principal(env.admin), &dto.CreateProgressRequest{
		StudentID: studentID, FacilitatorID: ptr(env.other.Profile.ProfileID()), Skill: "collaboration", Level: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, env.other.Profile.ProfileID(), rec.FacilitatorID)
	assert.Nil(t, rec.BootcampID)

	_, err = env.svc.Progress.Create(ctx, principal(env.student), &dto.CreateProgressRequest{StudentID: studentID, Skill: "collaboration", Level: 4})
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgFacilitatorOrAdmin)
}

func TestProgressReadRules(t *testing.T) {
	env := newTestEnv(t)
	seedRubric(t, env)
	ctx := context.Background()
	studentID := env.student.Profile.ProfileID()
	page := helpers.Pagination{Page: 1, Limit: 10}

	_, err := env.svc.Progress.Create(ctx, principal(env.owner), &dto.CreateProgressRequest{StudentID: studentID, BootcampID: &env.bootcamp.ID, Skill: "collaboration", Level: 2})
	require.NoError(t, err)

	for _, u := range []*models.User{env.student, env.parent, env.other, env.admin} {
		records, total, err := env.svc.Progress.ListByStudent(ctx, principal(u), studentID, page)
		require.NoError(t, err, u.Email)
		assert.Equal(t, int64(1), total)
		assert.Len(t, records, 1)
	}

	_, _, err = env.svc.Progress.ListByStudent(ctx, principal(env.peer), studentID, page)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgOwnRecordsOnly)
	_, _, err = env.svc.Progress.ListByStudent(ctx, principal(env.parent), env.peer.Profile.ProfileID(), page)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgChildrenRecordsOnly)

	records, _, err := env.svc.Progress.ListByBootcamp(ctx, principal(env.owner), env.bootcamp.ID, page)
	require.NoError(t, err)
	assert.Len(t, records, 1)
	_, _, err = env.svc.Progress.ListByBootcamp(ctx, principal(env.other), env.bootcamp.ID, page)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgNotBootcampOwner)

	rubrics, err := env.svc.Progress.ListRubrics(ctx)
	require.NoError(t, err)
	assert.Len(t, rubrics, 1)
}

func TestRubricHasLevel(t *testing.T) {
	partial := &models.Rubric{Levels: []models.RubricLevel{{Level: 1}, {Level: 2}}}
	assert.True(t, partial.HasLevel(2))
	assert.False(t, partial.HasLevel(3))
	assert.True(t, (&models.Rubric{}).HasLevel(4))
	assert.False(t, (&models.Rubric{}).HasLevel(5))
}

func TestKnowledgeStreams(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	studentID := env.student.Profile.ProfileID()

	stream, err := env.svc.KnowledgeStream.Create(ctx, principal(env.owner), &dto.CreateKnowledgeStreamRequest{Name: "Creative Coding"})
	require.NoError(t, err)
	assert.Equal(t, env.owner.ID, stream.CreatedBy)
	_, err = env.svc.KnowledgeStream.Create(ctx, principal(env.admin), &dto.CreateKnowledgeStreamRequest{Name: "Creative Coding"})
	assertAppError(t, err, apperrors.ErrConflict, MsgKnowledgeStreamExists)

	assignment, err := env.svc.KnowledgeStream.Assign(ctx, principal(env.owner), studentID, &dto.AssignKnowledgeStreamRequest{KnowledgeStreamID: stream.ID})
	require.NoError(t, err)
	assert.Equal(t, stream.ID, assignment.KnowledgeStream.ID)
	_, err = env.svc.KnowledgeStream.Assign(ctx, principal(env.owner), studentID, &dto.AssignKnowledgeStreamRequest{KnowledgeStreamID: stream.ID})
	assertAppError(t, err, apperrors.ErrConflict, MsgStreamAlreadyAssigned)
	_, err = env.svc.KnowledgeStream.Assign(ctx, principal(env.owner), studentID, &dto.AssignKnowledgeStreamRequest{KnowledgeStreamID: uuid.New()})
	assertAppError(t, err, apperrors.ErrNotFound, MsgKnowledgeStreamNotFound)

	mine, err := env.svc.KnowledgeStream.ListForStudent(ctx, principal(env.student), studentID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Creative Coding", mine[0].KnowledgeStream.Name)

	_, err = env.svc.KnowledgeStream.ListForStudent(ctx, principal(env.peer), studentID)
	assertAppError(t, err, apperrors.ErrForbidden, auth.MsgOwnRecordsOnly)

	streams, total, err := env.svc.KnowledgeStream.List(ctx, helpers.Pagination{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, streams, 1)
}
