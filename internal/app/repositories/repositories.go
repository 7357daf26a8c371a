package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository            IUserRepository
	BootcampRepository        IBootcampRepository
	SessionRepository         ISessionRepository
	ActivityRepository        IActivityRepository
	AttendanceRepository      IAttendanceRepository
	DiscussionRepository      IDiscussionRepository
	RubricRepository          IRubricRepository
	ProgressRepository        IProgressRepository
	KnowledgeStreamRepository IKnowledgeStreamRepository
	CommunicationRepository   ICommunicationRepository
}

// NewRepositories initializes all Postgres-backed repositories
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:            NewUserRepository(pool),
		BootcampRepository:        NewBootcampRepository(pool),
		SessionRepository:         NewSessionRepository(pool),
		ActivityRepository:        NewActivityRepository(pool),
		AttendanceRepository:      NewAttendanceRepository(pool),
		DiscussionRepository:      NewDiscussionRepository(pool),
		RubricRepository:          NewRubricRepository(pool),
		ProgressRepository:        NewProgressRepository(pool),
		KnowledgeStreamRepository: NewKnowledgeStreamRepository(pool),
		CommunicationRepository:   NewCommunicationRepository(pool),
	}
}
