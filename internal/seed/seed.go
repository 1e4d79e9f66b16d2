// Package seed stands in for the institutional roster import in
// development environments. Student records are created exogenously in
// production; the auth service itself never creates or deletes them.
package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// rosterEntry mirrors the fields of an institutional import row
type rosterEntry struct {
	enrollmentNumber string
	firstName        string
	lastName         string
	clubCredits      string
}

var defaultRoster = []rosterEntry{
	{enrollmentNumber: "210301001", firstName: "Asha", lastName: "Patel", clubCredits: "120"},
	{enrollmentNumber: "210301002", firstName: "Rahul", lastName: "Verma", clubCredits: "45"},
	{enrollmentNumber: "210301003", firstName: "Meera", lastName: "Iyer", clubCredits: "0"},
}

// CreateDefaultData inserts the development roster. Existing records
// are left untouched so re-running the seed never resets signup state.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating development student roster...")

	for _, entry := range defaultRoster {
		tag, err := dbPool.Exec(ctx, `
			INSERT INTO students (enrollment_number, first_name, last_name, club_credits)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (enrollment_number) DO NOTHING`,
			entry.enrollmentNumber, entry.firstName, entry.lastName, entry.clubCredits,
		)
		if err != nil {
			lgr.Error().Err(err).Str("enrollmentNumber", entry.enrollmentNumber).Msg("Error seeding student")
			return err
		}
		if tag.RowsAffected() > 0 {
			lgr.Info().Str("enrollmentNumber", entry.enrollmentNumber).Msg("Seeded student record")
		}
	}

	return nil
}
