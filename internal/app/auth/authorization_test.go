package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/app/repositories/inmem"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	repos    *repositories.Repositories
	svc      *AuthorizationService
	owner    *models.User
	other    *models.User
	admin    *models.User
	student  *models.User
	parent   *models.User
	bootcamp *models.Bootcamp
	session  *models.Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	f := &fixture{repos: inmem.NewRepositories()}
	f.svc = NewAuthorizationService(f.repos)

	mk := func(email string, p models.Profile) *models.User {
		u, err := models.NewUser(email, "hash", "T", "U", p)
		require.NoError(t, err)
		require.NoError(t, f.repos.UserRepository.Create(ctx, u))
		return u
	}
	f.owner = mk("owner@mf.dev", &models.FacilitatorProfile{})
	f.other = mk("other@mf.dev", &models.FacilitatorProfile{})
	f.admin = mk("admin@mf.dev", &models.AdminProfile{})
	f.parent = mk("parent@mf.dev", &models.ParentProfile{})
	parentID := f.parent.Profile.ProfileID()
	f.student = mk("kid@mf.dev", &models.StudentProfile{ParentID: &parentID})

	f.bootcamp = &models.Bootcamp{FacilitatorID: f.owner.Profile.ProfileID(), Title: "AI", Capacity: 3, Status: models.BootcampPublished}
	require.NoError(t, f.repos.BootcampRepository.Create(ctx, f.bootcamp))
	f.session = &models.Session{BootcampID: f.bootcamp.ID, Day: 1, Title: "Day 1"}
	require.NoError(t, f.repos.SessionRepository.Create(ctx, f.session))
	return f
}

func assertAppError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	assert.Equal(t, message, apperrors.Message(err))
}

func TestResolveCapabilities(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	caps, err := f.svc.ResolveCapabilities(ctx, f.owner.ID)
	require.NoError(t, err)
	assert.True(t, caps.HasAccess)
	assert.False(t, caps.IsAdmin)
	require.NotNil(t, caps.Facilitator)
	assert.Equal(t, f.owner.Profile.ProfileID(), caps.Facilitator.ID)

	caps, err = f.svc.ResolveCapabilities(ctx, f.admin.ID)
	require.NoError(t, err)
	assert.True(t, caps.IsAdmin)
	assert.Nil(t, caps.Facilitator)

	caps, err = f.svc.ResolveCapabilities(ctx, f.student.ID)
	require.NoError(t, err)
	assert.False(t, caps.HasAccess)
}

func TestVerifyBootcampOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.VerifyBootcampOwnership(ctx, f.owner.ID, f.bootcamp.ID)
	assert.NoError(t, err)

	_, err = f.svc.VerifyBootcampOwnership(ctx, f.other.ID, f.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgNotBootcampOwner)

	_, err = f.svc.VerifyBootcampOwnership(ctx, f.student.ID, f.bootcamp.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgFacilitatorOrAdmin)

	_, err = f.svc.VerifyBootcampOwnership(ctx, f.owner.ID, uuid.New())
	assertAppError(t, err, apperrors.ErrNotFound, MsgBootcampNotFound)

	// admins skip the bootcamp lookup entirely
	_, err = f.svc.VerifyBootcampOwnership(ctx, f.admin.ID, uuid.New())
	assert.NoError(t, err)
}

func TestEntityOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	activity := &models.SessionActivity{SessionID: f.session.ID, Time: "09:30", Title: "Warmup"}
	require.NoError(t, f.repos.ActivityRepository.Create(ctx, activity))
	topic := &models.DiscussionTopic{BootcampID: f.bootcamp.ID, Day: 1, Title: "Ethics"}
	require.NoError(t, f.repos.DiscussionRepository.Create(ctx, topic))

	s, err := f.svc.VerifySessionOwnership(ctx, f.owner.ID, f.session.ID)
	require.NoError(t, err)
	assert.Equal(t, f.session.ID, s.ID)

	_, err = f.svc.VerifySessionOwnership(ctx, f.other.ID, f.session.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgNotBootcampOwner)
	_, err = f.svc.VerifySessionOwnership(ctx, f.owner.ID, uuid.New())
	assertAppError(t, err, apperrors.ErrNotFound, MsgSessionNotFound)

	_, err = f.svc.VerifyActivityOwnership(ctx, f.other.ID, activity.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgNotBootcampOwner)
	_, err = f.svc.VerifyActivityOwnership(ctx, f.admin.ID, activity.ID)
	assert.NoError(t, err)
	_, err = f.svc.VerifyActivityOwnership(ctx, f.admin.ID, uuid.New())
	assertAppError(t, err, apperrors.ErrNotFound, MsgActivityNotFound)

	_, err = f.svc.VerifyDiscussionOwnership(ctx, f.other.ID, topic.ID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgNotBootcampOwner)
	_, err = f.svc.VerifyDiscussionOwnership(ctx, f.owner.ID, topic.ID)
	assert.NoError(t, err)
}

func TestVerifyStudentAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	studentID := f.student.Profile.ProfileID()

	assert.NoError(t, f.svc.VerifyStudentAccess(ctx, f.student.ID, models.RoleStudent, studentID))
	assert.NoError(t, f.svc.VerifyStudentAccess(ctx, f.parent.ID, models.RoleParent, studentID))
	assert.NoError(t, f.svc.VerifyStudentAccess(ctx, f.other.ID, models.RoleFacilitator, studentID))

	strangerParent, _ := models.NewUser("p2@mf.dev", "hash", "P", "Two", &models.ParentProfile{})
	require.NoError(t, f.repos.UserRepository.Create(ctx, strangerParent))
	err := f.svc.VerifyStudentAccess(ctx, strangerParent.ID, models.RoleParent, studentID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgChildrenRecordsOnly)

	sibling, _ := models.NewUser("s2@mf.dev", "hash", "S", "Two", &models.StudentProfile{})
	require.NoError(t, f.repos.UserRepository.Create(ctx, sibling))
	err = f.svc.VerifyStudentAccess(ctx, sibling.ID, models.RoleStudent, studentID)
	assertAppError(t, err, apperrors.ErrForbidden, MsgOwnRecordsOnly)

	err = f.svc.VerifyStudentAccess(ctx, f.admin.ID, models.RoleAdmin, uuid.New())
	assertAppError(t, err, apperrors.ErrNotFound, MsgStudentNotFound)
}

type brokenUsers struct {
	repositories.IUserRepository
}

func (brokenUsers) GetFacilitatorByUserID(context.Context, uuid.UUID) (*models.FacilitatorProfile, error) {
	return nil, errors.New("connection refused")
}

func TestResolveCapabilities_StorageFailure(t *testing.T) {
	repos := inmem.NewRepositories()
	repos.UserRepository = brokenUsers{repos.UserRepository}
	svc := NewAuthorizationService(repos)

	_, err := svc.ResolveCapabilities(context.Background(), uuid.New())
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavailable)
	assert.False(t, apperrors.IsOperational(err))
}
