package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func clockToPg(c entity.ClockTime) pgtype.Time {
	return pgtype.Time{Microseconds: int64(c) * 60 * 1_000_000, Valid: true}
}

func clockFromPg(t pgtype.Time) entity.ClockTime {
	return entity.ClockTime(t.Microseconds / (60 * 1_000_000))
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
