//go:build integration

package repositories

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/mindforge/mindforge-api/internal/app/migrations"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startPostgres(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pg, err := postgres.RunContainer(ctx,
		tc.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("mindforge"),
		postgres.WithUsername("mindforge"),
		postgres.WithPassword("mindforge"),
		tc.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(time.Minute)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(context.Background()) })

	uri, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, uri)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(stdlib.OpenDBFromPool(pool), zerolog.Nop()).Up(ctx))
	return pool
}

func TestPostgresEnrollmentNeverExceedsCapacity(t *testing.T) {
	pool := startPostgres(t)
	repos := NewRepositories(pool)
	ctx := context.Background()

	facilitator, err := models.NewUser("fac@mindforge.dev", "hash", "Fa", "Cilitator", &models.FacilitatorProfile{})
	require.NoError(t, err)
	require.NoError(t, repos.UserRepository.Create(ctx, facilitator))
	fp, _ := facilitator.Facilitator()

	const capacity, racers = 3, 12
	bootcamp := &models.Bootcamp{
		FacilitatorID: fp.ID,
		Title:         "Robotics",
		Description:   "Build a robot",
		Subject:       "STEM",
		Format:        models.FormatOnline,
		Status:        models.BootcampPublished,
		Capacity:      capacity,
	}
	require.NoError(t, repos.BootcampRepository.Create(ctx, bootcamp))

	students := make([]*models.StudentProfile, racers)
	for i := range students {
		u, err := models.NewUser(fmt.Sprintf("kid%d@mindforge.dev", i), "hash", "Kid", "Student", &models.StudentProfile{})
		require.NoError(t, err)
		require.NoError(t, repos.UserRepository.Create(ctx, u))
		students[i], _ = u.Student()
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		enrolled int
		full     int
	)
	for _, s := range students {
		wg.Add(1)
		go func(studentID uuid.UUID) {
			defer wg.Done()
			_, err := repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: studentID, BootcampID: bootcamp.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				enrolled++
			case errors.Is(err, ErrBootcampFull):
				full++
			default:
				t.Errorf("unexpected enroll error: %v", err)
			}
		}(s.ID)
	}
	wg.Wait()

	assert.Equal(t, capacity, enrolled)
	assert.Equal(t, racers-capacity, full)

	got, err := repos.BootcampRepository.GetByID(ctx, bootcamp.ID)
	require.NoError(t, err)
	assert.Equal(t, capacity, got.EnrollmentCount)

	list, err := repos.BootcampRepository.ListEnrollments(ctx, bootcamp.ID)
	require.NoError(t, err)
	assert.Len(t, list, capacity)
}

func TestPostgresUniquenessConstraints(t *testing.T) {
	pool := startPostgres(t)
	repos := NewRepositories(pool)
	ctx := context.Background()

	facilitator, err := models.NewUser("fac@mindforge.dev", "hash", "Fa", "Cilitator", &models.FacilitatorProfile{})
	require.NoError(t, err)
	require.NoError(t, repos.UserRepository.Create(ctx, facilitator))

	dup, err := models.NewUser("fac@mindforge.dev", "hash", "Du", "Plicate", &models.ParentProfile{})
	require.NoError(t, err)
	assert.ErrorIs(t, repos.UserRepository.Create(ctx, dup), ErrEmailTaken)

	fp, _ := facilitator.Facilitator()
	bootcamp := &models.Bootcamp{
		FacilitatorID: fp.ID, Title: "Art", Description: "Paint", Subject: "ART",
		Format: models.FormatHybrid, Status: models.BootcampDraft, Capacity: 5,
	}
	require.NoError(t, repos.BootcampRepository.Create(ctx, bootcamp))

	first := &models.Session{BootcampID: bootcamp.ID, Day: 1, Title: "Colour", StartTime: "09:00", EndTime: "11:00"}
	require.NoError(t, repos.SessionRepository.Create(ctx, first))
	again := &models.Session{BootcampID: bootcamp.ID, Day: 1, Title: "Shape", StartTime: "09:00", EndTime: "11:00"}
	assert.ErrorIs(t, repos.SessionRepository.Create(ctx, again), ErrDuplicateDay)
}

func TestPostgresCommunicationLifecycle(t *testing.T) {
	pool := startPostgres(t)
	repos := NewRepositories(pool)
	comms := repos.CommunicationRepository
	ctx := context.Background()

	mk := func(email string, p models.Profile) *models.User {
		u, err := models.NewUser(email, "hash", "Test", "User", p)
		require.NoError(t, err)
		require.NoError(t, repos.UserRepository.Create(ctx, u))
		return u
	}
	sender := mk("fac@mindforge.dev", &models.FacilitatorProfile{})
	kid := mk("kid@mindforge.dev", &models.StudentProfile{})
	parent := mk("parent@mindforge.dev", &models.ParentProfile{})

	ghost := &models.Communication{
		SenderID: sender.ID, Subject: "Ghost", Content: "x",
		Type: models.CommunicationMessage, Status: models.CommunicationDraft,
		RecipientIDs: []uuid.UUID{uuid.New()},
	}
	assert.ErrorIs(t, comms.Create(ctx, ghost), ErrUnknownReference)

	welcome := &models.Communication{
		SenderID: sender.ID, Subject: "Welcome", Content: "Draft",
		Type: models.CommunicationAnnouncement, Status: models.CommunicationDraft,
		RecipientIDs: []uuid.UUID{kid.ID},
	}
	require.NoError(t, comms.Create(ctx, welcome))

	sentAt := time.Now().UTC().Truncate(time.Second)
	welcome.Content = "Final"
	welcome.Status = models.CommunicationSent
	welcome.SentAt = &sentAt
	welcome.RecipientIDs = []uuid.UUID{parent.ID, kid.ID}
	require.NoError(t, comms.Update(ctx, welcome))

	stored, err := comms.GetByID(ctx, welcome.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CommunicationSent, stored.Status)
	assert.Equal(t, []uuid.UUID{parent.ID, kid.ID}, stored.RecipientIDs)

	// a sent row is frozen
	welcome.Subject = "Rewritten"
	assert.ErrorIs(t, comms.Update(ctx, welcome), ErrAlreadySent)
	stored, err = comms.GetByID(ctx, welcome.ID)
	require.NoError(t, err)
	assert.Equal(t, "Welcome", stored.Subject)

	missing := &models.Communication{ID: uuid.New(), Subject: "x", Content: "x", Type: models.CommunicationMessage, Status: models.CommunicationDraft}
	assert.ErrorIs(t, comms.Update(ctx, missing), ErrNotFound)

	laterAt := sentAt.Add(time.Minute)
	reminder := &models.Communication{
		SenderID: sender.ID, Subject: "Reminder", Content: "Tomorrow",
		Type: models.CommunicationReminder, Status: models.CommunicationSent, SentAt: &laterAt,
		RecipientIDs: []uuid.UUID{kid.ID},
	}
	require.NoError(t, comms.Create(ctx, reminder))
	require.NoError(t, comms.Create(ctx, &models.Communication{
		SenderID: sender.ID, Subject: "Unsent", Content: "x",
		Type: models.CommunicationMessage, Status: models.CommunicationDraft,
		RecipientIDs: []uuid.UUID{kid.ID},
	}))

	unread, err := comms.ListUnread(ctx, kid.ID)
	require.NoError(t, err)
	require.Len(t, unread, 2)
	assert.Equal(t, reminder.ID, unread[0].ID)

	first, created, err := comms.MarkRead(ctx, welcome.ID, kid.ID)
	require.NoError(t, err)
	assert.True(t, created)
	again, created, err := comms.MarkRead(ctx, welcome.ID, kid.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, first.ReadAt.Equal(again.ReadAt))

	_, _, err = comms.MarkRead(ctx, uuid.New(), kid.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	inbox, total, err := comms.ListInbox(ctx, kid.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, inbox, 2)
	assert.Equal(t, reminder.ID, inbox[0].ID)
	assert.False(t, inbox[0].IsRead)
	assert.Equal(t, welcome.ID, inbox[1].ID)
	assert.True(t, inbox[1].IsRead)

	page, total, err := comms.ListInbox(ctx, kid.ID, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, page, 1)
	assert.Equal(t, welcome.ID, page[0].ID)

	unread, err = comms.ListUnread(ctx, kid.ID)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, reminder.ID, unread[0].ID)

	parentInbox, total, err := comms.ListInbox(ctx, parent.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, parentInbox, 1)
	assert.False(t, parentInbox[0].IsRead)

	sent, total, err := comms.ListSent(ctx, sender.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, sent, 3)
}
