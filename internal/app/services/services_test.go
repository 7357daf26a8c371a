package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/app/repositories/inmem"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	pkgauth "github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	mu   sync.Mutex
	sent []*models.Communication
}

func (n *recordingNotifier) CommunicationSent(comm *models.Communication) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, comm)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.sent)
}

type testEnv struct {
	repos    *repositories.Repositories
	svc      *Services
	notifier *recordingNotifier

	owner, other, admin, student, peer, parent *models.User
	bootcamp                                   *models.Bootcamp
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	env := &testEnv{repos: inmem.NewRepositories(), notifier: &recordingNotifier{}}
	env.svc = NewServices(Dependencies{
		Repos:    env.repos,
		JWT:      pkgauth.NewJWTService(pkgauth.JWTConfig{SecretKey: "test-secret", AccessTokenExp: time.Hour}),
		Hasher:   pkgauth.NewPasswordHasher(bcrypt.MinCost),
		Notifier: env.notifier,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return fixedNow },
	})

	mk := func(email string, p models.Profile) *models.User {
		u, err := models.NewUser(email, "hash", "Test", "User", p)
		require.NoError(t, err)
		require.NoError(t, env.repos.UserRepository.Create(ctx, u))
		return u
	}
	env.owner = mk("owner@mf.dev", &models.FacilitatorProfile{})
	env.other = mk("other@mf.dev", &models.FacilitatorProfile{})
	env.admin = mk("admin@mf.dev", &models.AdminProfile{})
	env.parent = mk("parent@mf.dev", &models.ParentProfile{})
	parentID := env.parent.Profile.ProfileID()
	env.student = mk("kid@mf.dev", &models.StudentProfile{ParentID: &parentID})
	env.peer = mk("peer@mf.dev", &models.StudentProfile{})

	env.bootcamp = &models.Bootcamp{
		FacilitatorID: env.owner.Profile.ProfileID(),
		Title:         "Robotics",
		Subject:       "STEM",
		Format:        models.FormatOnline,
		Status:        models.BootcampPublished,
		Capacity:      5,
	}
	require.NoError(t, env.repos.BootcampRepository.Create(ctx, env.bootcamp))
	return env
}

func principal(u *models.User) models.Principal {
	return models.Principal{UserID: u.ID, Email: u.Email, Role: u.RoleType}
}

func assertAppError(t *testing.T, err error, kind error, message string) {
	t.Helper()
	require.Error(t, err)
	assert.ErrorIs(t, err, kind)
	assert.Equal(t, message, apperrors.Message(err))
}

func ptr[T any](v T) *T { return &v }
