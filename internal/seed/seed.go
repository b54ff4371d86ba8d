package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/schoolbill/backend/internal/app/models"
	appRepos "github.com/schoolbill/backend/internal/app/repositories"
	"github.com/schoolbill/backend/internal/pkg/apperrors"
)

// CreateDefaultData creates the default fee type catalog and, when the
// enrollment tables are empty, a small set of classes and students so a
// fresh install has something to bill against.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	feeTypeRepo := appRepos.NewFeeTypeRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (fee types, demo enrollment)...")
	var finalErr error // To collect potential errors without stopping the process

	for _, name := range []string{"tuition", "transport", "exam", "library"} {
		feeType := &appModels.FeeType{Name: name}
		if err := feeTypeRepo.Create(ctx, feeType); err != nil && !errors.Is(err, apperrors.ErrFeeTypeNameExists) {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating default fee type")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if err := seedDemoEnrollment(ctx, dbPool, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	if finalErr != nil {
		return finalErr
	}
	lgr.Info().Msg("Default data check complete.")
	return nil
}

// seedDemoEnrollment inserts demo classes and students only when the
// classes table is empty, so real deployments keep their own data.
func seedDemoEnrollment(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	var classCount int64
	if err := dbPool.QueryRow(ctx, `SELECT COUNT(*) FROM classes`).Scan(&classCount); err != nil {
		lgr.Error().Err(err).Msg("Error counting classes")
		return err
	}
	if classCount > 0 {
		return nil
	}

	classes := map[string][]string{
		"Grade 1": {"Amina Yusuf", "Bilal Khan"},
		"Grade 2": {"Carlos Mendez", "Dara Osei"},
	}

	for className, students := range classes {
		var classID int64
		err := dbPool.QueryRow(ctx,
			`INSERT INTO classes (name) VALUES ($1) ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`,
			className).Scan(&classID)
		if err != nil {
			lgr.Error().Err(err).Str("class", className).Msg("Error creating demo class")
			return err
		}

		for _, studentName := range students {
			if _, err := dbPool.Exec(ctx,
				`INSERT INTO students (class_id, name) VALUES ($1, $2)`,
				classID, studentName); err != nil {
				lgr.Error().Err(err).Str("student", studentName).Msg("Error creating demo student")
				return err
			}
		}
	}

	lgr.Info().Msg("Demo enrollment data created.")
	return nil
}
