package services

import (
	"errors"
	"time"

	"github.com/mindforge/mindforge-api/internal/app/auth"
	"github.com/mindforge/mindforge-api/internal/app/models"
	"github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/apperrors"
	pkgauth "github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
)

const msgStorageUnavailable = "Service temporarily unavailable"

// CommunicationNotifier is told about every communication that reaches SENT
type CommunicationNotifier interface {
	CommunicationSent(comm *models.Communication)
}

type nopNotifier struct{}

func (nopNotifier) CommunicationSent(*models.Communication) {}

// Dependencies groups what the services need from the outside
type Dependencies struct {
	Repos    *repositories.Repositories
	JWT      *pkgauth.JWTService
	Hasher   *pkgauth.PasswordHasher
	Notifier CommunicationNotifier
	Logger   zerolog.Logger
	// Now defaults to time.Now
	Now func() time.Time
}

// Services holds all the service instances
type Services struct {
	Authorization   *auth.AuthorizationService
	Auth            *AuthService
	User            UserService
	Bootcamp        BootcampService
	Session         SessionService
	Activity        ActivityService
	Attendance      AttendanceService
	Discussion      DiscussionService
	Progress        ProgressService
	KnowledgeStream KnowledgeStreamService
	Communication   CommunicationService
}

// NewServices wires every service on top of deps
func NewServices(deps Dependencies) *Services {
	if deps.Notifier == nil {
		deps.Notifier = nopNotifier{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	authz := auth.NewAuthorizationService(deps.Repos)
	return &Services{
		Authorization:   authz,
		Auth:            NewAuthService(deps.Repos.UserRepository, deps.JWT, deps.Hasher, deps.Logger),
		User:            NewUserService(deps.Repos.UserRepository, deps.Logger),
		Bootcamp:        NewBootcampService(deps.Repos, authz, deps.Logger),
		Session:         NewSessionService(deps.Repos, authz, deps.Logger),
		Activity:        NewActivityService(deps.Repos, authz, deps.Logger),
		Attendance:      NewAttendanceService(deps.Repos, authz, deps.Logger),
		Discussion:      NewDiscussionService(deps.Repos, authz, deps.Logger),
		Progress:        NewProgressService(deps.Repos, authz, deps.Logger),
		KnowledgeStream: NewKnowledgeStreamService(deps.Repos, authz, deps.Logger),
		Communication:   NewCommunicationService(deps.Repos, deps.Notifier, deps.Now, deps.Logger),
	}
}

// storageFailure logs err and hides it behind a 503
func storageFailure(log zerolog.Logger, err error, msg string) error {
	log.Error().Err(err).Msg(msg)
	return apperrors.ServiceUnavailable(msgStorageUnavailable, err)
}

// lookupErr maps a repository miss to a 404 with notFoundMsg and anything else to a 503
func lookupErr(log zerolog.Logger, err error, notFoundMsg string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return apperrors.NotFound(notFoundMsg)
	}
	return storageFailure(log, err, "Storage lookup failed")
}

// validDateRange rejects an end before the start
func validDateRange(start, end *time.Time) error {
	if start != nil && end != nil && end.Before(*start) {
		return apperrors.Validation("Validation failed", apperrors.FieldError{
			Field: "endDate", Message: "endDate must not be before startDate",
		})
	}
	return nil
}
