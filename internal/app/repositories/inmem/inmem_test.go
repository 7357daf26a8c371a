package inmem

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, repos *repositories.Repositories, email string, profile models.Profile) *models.User {
	t.Helper()
	u, err := models.NewUser(email, "hash", "Test", "User", profile)
	require.NoError(t, err)
	require.NoError(t, repos.UserRepository.Create(context.Background(), u))
	return u
}

func seedBootcamp(t *testing.T, repos *repositories.Repositories, capacity int, status models.BootcampStatus) *models.Bootcamp {
	t.Helper()
	f := seedUser(t, repos, uuid.NewString()+"@f.dev", &models.FacilitatorProfile{})
	b := &models.Bootcamp{
		FacilitatorID: f.Profile.ProfileID(),
		Title:         "Robotics",
		Format:        models.FormatOnline,
		Status:        status,
		Capacity:      capacity,
	}
	require.NoError(t, repos.BootcampRepository.Create(context.Background(), b))
	return b
}

func TestUserRepository_CreateAssignsProfile(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()

	u := seedUser(t, repos, "kid@mindforge.dev", &models.StudentProfile{})
	sp, ok := u.Student()
	require.True(t, ok)
	assert.NotEqual(t, uuid.Nil, sp.ID)
	assert.Equal(t, u.ID, sp.UserID)

	got, err := repos.UserRepository.GetStudentByUserID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, sp.ID, got.ID)

	dup, _ := models.NewUser("kid@mindforge.dev", "hash", "A", "B", &models.ParentProfile{})
	assert.ErrorIs(t, repos.UserRepository.Create(ctx, dup), repositories.ErrEmailTaken)

	_, err = repos.UserRepository.GetFacilitatorByUserID(ctx, u.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestBootcampRepository_EnrollRules(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	b := seedBootcamp(t, repos, 1, models.BootcampDraft)
	s1 := seedUser(t, repos, "s1@mindforge.dev", &models.StudentProfile{})
	s2 := seedUser(t, repos, "s2@mindforge.dev", &models.StudentProfile{})

	_, err := repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: s1.Profile.ProfileID(), BootcampID: b.ID})
	assert.ErrorIs(t, err, repositories.ErrBootcampNotOpen)

	b.Status = models.BootcampPublished
	require.NoError(t, repos.BootcampRepository.Update(ctx, b))

	updated, err := repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: s1.Profile.ProfileID(), BootcampID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.EnrollmentCount)

	_, err = repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: s1.Profile.ProfileID(), BootcampID: b.ID})
	assert.ErrorIs(t, err, repositories.ErrAlreadyEnrolled)

	_, err = repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: s2.Profile.ProfileID(), BootcampID: b.ID})
	assert.ErrorIs(t, err, repositories.ErrBootcampFull)

	b.Capacity = 0
	assert.ErrorIs(t, repos.BootcampRepository.Update(ctx, b), repositories.ErrCapacityTooLow)
}

func TestBootcampRepository_ConcurrentLastSeat(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	b := seedBootcamp(t, repos, 1, models.BootcampPublished)

	const racers = 8
	students := make([]uuid.UUID, racers)
	for i := range students {
		students[i] = seedUser(t, repos, uuid.NewString()+"@s.dev", &models.StudentProfile{}).Profile.ProfileID()
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)
	for _, id := range students {
		wg.Add(1)
		go func(studentID uuid.UUID) {
			defer wg.Done()
			_, err := repos.BootcampRepository.Enroll(ctx, &models.Enrollment{StudentID: studentID, BootcampID: b.ID})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, repositories.ErrBootcampFull):
				full++
			}
		}(id)
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, racers-1, full)
	got, err := repos.BootcampRepository.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.EnrollmentCount)
}

func TestBootcampRepository_DeleteCascades(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	b := seedBootcamp(t, repos, 5, models.BootcampPublished)

	s := &models.Session{BootcampID: b.ID, Day: 1, Title: "Kickoff"}
	require.NoError(t, repos.SessionRepository.Create(ctx, s))
	a := &models.SessionActivity{SessionID: s.ID, Time: "09:00", Title: "Warmup"}
	require.NoError(t, repos.ActivityRepository.Create(ctx, a))

	require.NoError(t, repos.BootcampRepository.Delete(ctx, b.ID))

	_, err := repos.SessionRepository.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	_, err = repos.ActivityRepository.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repos.BootcampRepository.Delete(ctx, b.ID), repositories.ErrNotFound)
}

func TestSessionRepository_UniqueDayAndTime(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	b := seedBootcamp(t, repos, 5, models.BootcampPublished)

	require.NoError(t, repos.SessionRepository.Create(ctx, &models.Session{BootcampID: b.ID, Day: 2, Title: "B"}))
	first := &models.Session{BootcampID: b.ID, Day: 1, Title: "A"}
	require.NoError(t, repos.SessionRepository.Create(ctx, first))
	assert.ErrorIs(t, repos.SessionRepository.Create(ctx, &models.Session{BootcampID: b.ID, Day: 1}), repositories.ErrDuplicateDay)

	list, err := repos.SessionRepository.ListByBootcamp(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Day)

	first.Day = 2
	assert.ErrorIs(t, repos.SessionRepository.Update(ctx, first), repositories.ErrDuplicateDay)

	require.NoError(t, repos.ActivityRepository.Create(ctx, &models.SessionActivity{SessionID: first.ID, Time: "10:00"}))
	assert.ErrorIs(t, repos.ActivityRepository.Create(ctx, &models.SessionActivity{SessionID: first.ID, Time: "10:00"}), repositories.ErrDuplicateTime)
}

func TestCommunicationRepository_SendLockAndReceipts(t *testing.T) {
	repos := NewRepositories()
	ctx := context.Background()
	sender := seedUser(t, repos, "f@mindforge.dev", &models.FacilitatorProfile{})
	reader := seedUser(t, repos, "p@mindforge.dev", &models.ParentProfile{})

	c := &models.Communication{
		SenderID:     sender.ID,
		Subject:      "Welcome",
		Content:      "Hello",
		Type:         models.CommunicationAnnouncement,
		Status:       models.CommunicationDraft,
		RecipientIDs: []uuid.UUID{reader.ID, reader.ID},
	}
	require.NoError(t, repos.CommunicationRepository.Create(ctx, c))
	assert.Len(t, c.RecipientIDs, 1)

	inbox, total, err := repos.CommunicationRepository.ListInbox(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, inbox)

	now := c.CreatedAt
	c.Status, c.SentAt = models.CommunicationSent, &now
	require.NoError(t, repos.CommunicationRepository.Update(ctx, c))
	assert.ErrorIs(t, repos.CommunicationRepository.Update(ctx, c), repositories.ErrAlreadySent)

	unread, err := repos.CommunicationRepository.ListUnread(ctx, reader.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	first, created, err := repos.CommunicationRepository.MarkRead(ctx, c.ID, reader.ID)
	require.NoError(t, err)
	assert.True(t, created)
	again, created, err := repos.CommunicationRepository.MarkRead(ctx, c.ID, reader.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, again.ID)

	inbox, total, err = repos.CommunicationRepository.ListInbox(ctx, reader.ID, 10, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.True(t, inbox[0].IsRead)

	bad := &models.Communication{SenderID: sender.ID, RecipientIDs: []uuid.UUID{uuid.New()}}
	assert.ErrorIs(t, repos.CommunicationRepository.Create(ctx, bad), repositories.ErrUnknownReference)
}

func TestPage(t *testing.T) {
	rows := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, page(rows, 2, 2))
	assert.Equal(t, []int{5}, page(rows, 2, 4))
	assert.Empty(t, page(rows, 2, 10))
}
