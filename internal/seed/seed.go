package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/emre/notesphere/internal/app/models"
	appRepos "github.com/emre/notesphere/internal/app/repositories"
	"github.com/emre/notesphere/internal/pkg/apperrors"
)

// CreateDefaultData creates a starter set of subjects and chapters so a fresh
// deployment is browsable before the first admin session.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	subjectRepo := appRepos.NewSubjectRepository(dbPool)
	chapterRepo := appRepos.NewChapterRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default subjects and chapters...")
	var finalErr error

	defaults := map[string][]string{
		"Mathematics": {"Algebra", "Calculus"},
		"Physics":     {"Mechanics", "Electromagnetism"},
	}

	for subjectName, chapterNames := range defaults {
		subject := &appModels.Subject{Name: subjectName}
		err := subjectRepo.Create(ctx, subject)
		switch {
		case err == nil:
			// Newly created, subject.ID is set
		case errors.Is(err, apperrors.ErrSubjectAlreadyExists):
			existing, errGet := findSubjectByName(ctx, subjectRepo, subjectName)
			if errGet != nil {
				lgr.Error().Err(errGet).Str("subject", subjectName).Msg("Error resolving existing default subject")
				finalErr = errors.Join(finalErr, errGet)
				continue
			}
			subject = existing
		default:
			lgr.Error().Err(err).Str("subject", subjectName).Msg("Error creating default subject")
			finalErr = errors.Join(finalErr, err)
			continue
		}

		for _, chapterName := range chapterNames {
			chapter := &appModels.Chapter{SubjectID: subject.ID, Name: chapterName}
			err := chapterRepo.Create(ctx, chapter)
			if err != nil && !errors.Is(err, apperrors.ErrChapterAlreadyExists) {
				lgr.Error().Err(err).
					Str("subject", subjectName).
					Str("chapter", chapterName).
					Msg("Error creating default chapter")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check complete")
	}
	return finalErr
}

func findSubjectByName(ctx context.Context, repo *appRepos.SubjectRepository, name string) (*appModels.Subject, error) {
	subjects, err := repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range subjects {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, apperrors.ErrSubjectNotFound
}
