package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/voltclub/clubsphere/internal/app/models"
	"github.com/voltclub/clubsphere/internal/pkg/apperrors"
	"github.com/voltclub/clubsphere/internal/pkg/dberrors"
	"github.com/voltclub/clubsphere/internal/pkg/logger"
)

// IStudentRepository is the student directory contract consumed by the
// auth workflows. SetEmailVerified and SetCredential are conditional
// writes: they succeed only while the target field is unset, so two
// concurrent calls cannot both pass their precondition.
type IStudentRepository interface {
	FindByEnrollmentNumber(ctx context.Context, enrollmentNumber string) (*models.Student, error)
	FindByEmail(ctx context.Context, email string) (*models.Student, error)
	SetEmailVerified(ctx context.Context, enrollmentNumber, email string) (*models.Student, error)
	SetCredential(ctx context.Context, enrollmentNumber, passwordHash string) (*models.Student, error)
}

var studentColumns = []string{
	"enrollment_number", "email", "password", "first_name", "last_name",
	"club_credits", "in_club_as_team", "in_club_as_member",
}

// StudentRepository handles student directory database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var student models.Student
	err := row.Scan(
		&student.EnrollmentNumber, &student.Email, &student.PasswordHash,
		&student.FirstName, &student.LastName, &student.ClubCredits,
		&student.InClubAsTeam, &student.InClubAsMember,
	)
	if err != nil {
		return nil, err
	}
	return &student, nil
}

// FindByEnrollmentNumber retrieves a student by enrollment number
func (r *StudentRepository) FindByEnrollmentNumber(ctx context.Context, enrollmentNumber string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"enrollment_number": enrollmentNumber}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("enrollmentNumber", enrollmentNumber).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// FindByEmail retrieves a student by verified email
func (r *StudentRepository) FindByEmail(ctx context.Context, email string) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"email": email}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build find student by email query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Str("email", email).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// SetEmailVerified sets the verified email identity. The update is a
// single conditional statement: it applies only while the email is
// unset or already holds the same value, so re-confirming the same
// link is a no-op and a different address can never overwrite it.
func (r *StudentRepository) SetEmailVerified(ctx context.Context, enrollmentNumber, email string) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("email", email).
		Where(squirrel.Eq{"enrollment_number": enrollmentNumber}).
		Where(squirrel.Or{
			squirrel.Eq{"email": nil},
			squirrel.Eq{"email": email},
		}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set email verified query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyEmailConflict(ctx, enrollmentNumber)
		}
		// The unique index on email trips when another student verified
		// the same address concurrently.
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return nil, fmt.Errorf("%w: email already verified by another student", apperrors.ErrConflict)
		}
		logger.Error().Err(err).Str("enrollmentNumber", enrollmentNumber).Msg("Error setting verified email")
		return nil, fmt.Errorf("error setting verified email: %w", err)
	}

	logger.Info().Str("enrollmentNumber", enrollmentNumber).Str("email", email).Msg("Student email verified")
	return student, nil
}

// SetCredential stores the credential hash. The update applies only
// while no credential is set and the email identity is present, which
// keeps the registration step race-free and monotonic.
func (r *StudentRepository) SetCredential(ctx context.Context, enrollmentNumber, passwordHash string) (*models.Student, error) {
	sql, args, err := r.sb.Update("students").
		Set("password", passwordHash).
		Where(squirrel.Eq{"enrollment_number": enrollmentNumber}).
		Where(squirrel.Eq{"password": nil}).
		Where(squirrel.NotEq{"email": nil}).
		Suffix("RETURNING " + returningColumns()).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build set credential query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.classifyCredentialConflict(ctx, enrollmentNumber)
		}
		logger.Error().Err(err).Str("enrollmentNumber", enrollmentNumber).Msg("Error setting credential")
		return nil, fmt.Errorf("error setting credential: %w", err)
	}

	logger.Info().Str("enrollmentNumber", enrollmentNumber).Msg("Student credential set")
	return student, nil
}

// classifyEmailConflict turns a zero-row conditional email update into
// the precise precondition failure.
func (r *StudentRepository) classifyEmailConflict(ctx context.Context, enrollmentNumber string) error {
	student, err := r.FindByEnrollmentNumber(ctx, enrollmentNumber)
	if err != nil {
		return err
	}
	if student.IsEmailVerified() {
		return apperrors.ErrEmailAlreadyVerified
	}
	return fmt.Errorf("%w: conditional email update affected no rows", apperrors.ErrInternal)
}

// classifyCredentialConflict turns a zero-row conditional credential
// update into the precise precondition failure.
func (r *StudentRepository) classifyCredentialConflict(ctx context.Context, enrollmentNumber string) error {
	student, err := r.FindByEnrollmentNumber(ctx, enrollmentNumber)
	if err != nil {
		return err
	}
	if student.IsRegistered() {
		return apperrors.ErrAlreadyRegistered
	}
	if !student.IsEmailVerified() {
		return apperrors.ErrEmailNotVerified
	}
	return fmt.Errorf("%w: conditional credential update affected no rows", apperrors.ErrInternal)
}

func returningColumns() string {
	return strings.Join(studentColumns, ", ")
}
