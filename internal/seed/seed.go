package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/mindforge/mindforge-api/internal/app/models"
	appRepos "github.com/mindforge/mindforge-api/internal/app/repositories"
	"github.com/mindforge/mindforge-api/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Admin describes the bootstrap administrator account. An empty email skips it.
type Admin struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

var levelLabels = [...]string{"Emerging", "Developing", "Proficient", "Advanced"}

// DefaultRubrics are the skills every installation starts with
var DefaultRubrics = []struct {
	Skill       string
	Description string
	Descriptors [4]string
}{
	{
		Skill:       "CRITICAL_THINKING",
		Description: "Analyses problems, weighs evidence and reasons towards conclusions",
		Descriptors: [4]string{
			"Accepts information at face value",
			"Asks questions about sources and claims",
			"Compares evidence and explains reasoning",
			"Evaluates arguments and defends conclusions independently",
		},
	},
	{
		Skill:       "CREATIVITY",
		Description: "Generates original ideas and approaches",
		Descriptors: [4]string{
			"Reproduces given examples",
			"Varies existing ideas with support",
			"Proposes original ideas",
			"Develops and refines original ideas into finished work",
		},
	},
	{
		Skill:       "COLLABORATION",
		Description: "Works with others towards a shared goal",
		Descriptors: [4]string{
			"Participates when prompted",
			"Shares ideas and listens to peers",
			"Takes on roles and supports the group",
			"Leads the group and resolves disagreements",
		},
	},
	{
		Skill:       "COMMUNICATION",
		Description: "Expresses ideas clearly in speech and writing",
		Descriptors: [4]string{
			"Expresses simple ideas with help",
			"Expresses ideas with some clarity",
			"Communicates clearly for the audience",
			"Communicates persuasively in varied formats",
		},
	},
}

// CreateDefaultData provisions the admin account and default rubrics. It is safe to run on every start.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, hasher *auth.PasswordHasher, admin Admin, lgr zerolog.Logger) error {
	var finalErr error

	if err := ensureAdmin(ctx, repos.UserRepository, hasher, admin, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating admin account")
		finalErr = errors.Join(finalErr, err)
	}

	for _, def := range DefaultRubrics {
		rubric := &models.Rubric{Skill: def.Skill, Description: def.Description}
		for i, descriptor := range def.Descriptors {
			rubric.Levels = append(rubric.Levels, models.RubricLevel{
				Level:      i + 1,
				Label:      levelLabels[i],
				Descriptor: descriptor,
			})
		}
		if err := repos.RubricRepository.Upsert(ctx, rubric); err != nil {
			lgr.Error().Err(err).Str("skill", def.Skill).Msg("Error creating rubric")
			finalErr = errors.Join(finalErr, err)
		}
	}

	lgr.Info().Int("rubrics", len(DefaultRubrics)).Msg("Default data ensured")
	return finalErr
}

func ensureAdmin(ctx context.Context, users appRepos.IUserRepository, hasher *auth.PasswordHasher, admin Admin, lgr zerolog.Logger) error {
	if admin.Email == "" {
		lgr.Info().Msg("No seed admin configured, skipping")
		return nil
	}

	_, err := users.GetByEmail(ctx, admin.Email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, appRepos.ErrNotFound) {
		return fmt.Errorf("look up admin: %w", err)
	}

	hash, err := hasher.Hash(admin.Password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	user, err := models.NewUser(admin.Email, hash, admin.FirstName, admin.LastName, &models.AdminProfile{})
	if err != nil {
		return err
	}
	if err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	lgr.Info().Str("email", admin.Email).Msg("Admin account created")
	return nil
}
