package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

var _ repository.SlotRepository = (*SlotRepo)(nil)

// SlotRepo almacén de disponibilidad sobre la tabla time_slots (date DATE, time TIME).
type SlotRepo struct {
	db Querier
}

// NewSlotRepository construye el adaptador; dentro de RunSlots recibe la transacción.
func NewSlotRepository(db Querier) *SlotRepo {
	return &SlotRepo{db: db}
}

var slotCopyColumns = []string{"id", "date", "time", "status", "duration_minutes", "created_at"}

const slotSelect = `SELECT id, date, time, status, duration_minutes, created_at FROM time_slots`

// ListOrdered devuelve todos los horarios por fecha y hora ascendente.
func (r *SlotRepo) ListOrdered(ctx context.Context) ([]entity.TimeSlot, error) {
	return r.list(ctx, slotSelect+` ORDER BY date, time`)
}

// ListBetween horarios con fecha en [from, to), ordenados.
func (r *SlotRepo) ListBetween(ctx context.Context, from, to time.Time) ([]entity.TimeSlot, error) {
	return r.list(ctx,
		slotSelect+` WHERE date >= $1::date AND date < $2::date ORDER BY date, time`,
		dateParam(from), dateParam(to))
}

// ListOccupiedBetween horarios no libres con fecha en [from, to).
func (r *SlotRepo) ListOccupiedBetween(ctx context.Context, from, to time.Time) ([]entity.TimeSlot, error) {
	return r.list(ctx,
		slotSelect+` WHERE date >= $1::date AND date < $2::date AND lower(status) NOT IN ('free', 'livre') ORDER BY date, time`,
		dateParam(from), dateParam(to))
}

// DeleteAll vacía el almacén.
func (r *SlotRepo) DeleteAll(ctx context.Context) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM time_slots`)
	if err != nil {
		return 0, fmt.Errorf("delete time slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteFreeBetween borra solo los horarios libres con fecha en [from, to).
func (r *SlotRepo) DeleteFreeBetween(ctx context.Context, from, to time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM time_slots WHERE date >= $1::date AND date < $2::date AND lower(status) IN ('free', 'livre')`,
		dateParam(from), dateParam(to))
	if err != nil {
		return 0, fmt.Errorf("delete free time slots: %w", err)
	}
	return tag.RowsAffected(), nil
}

// InsertBatch inserta el lote completo con COPY.
func (r *SlotRepo) InsertBatch(ctx context.Context, slots []entity.TimeSlot) (int64, error) {
	if len(slots) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	n, err := r.db.CopyFrom(ctx, pgx.Identifier{"time_slots"}, slotCopyColumns,
		pgx.CopyFromSlice(len(slots), func(i int) ([]any, error) {
			s := slots[i]
			created := s.CreatedAt
			if created.IsZero() {
				created = now
			}
			var duration pgtype.Int4
			if s.DurationMinutes > 0 {
				duration = pgtype.Int4{Int32: int32(s.DurationMinutes), Valid: true}
			}
			return []any{
				s.ID,
				pgtype.Date{Time: dateOnlyUTC(s.Date), Valid: true},
				clockToPg(s.Time),
				string(s.Status),
				duration,
				created,
			}, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("copy time slots: %w", err)
	}
	return n, nil
}

func (r *SlotRepo) list(ctx context.Context, query string, args ...any) ([]entity.TimeSlot, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list time slots: %w", err)
	}
	defer rows.Close()

	out := make([]entity.TimeSlot, 0)
	for rows.Next() {
		var (
			s        entity.TimeSlot
			date     pgtype.Date
			clock    pgtype.Time
			status   string
			duration pgtype.Int4
		)
		if err := rows.Scan(&s.ID, &date, &clock, &status, &duration, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan time slot: %w", err)
		}
		s.Date = date.Time
		s.Time = clockFromPg(clock)
		s.Status = entity.ParseSlotStatus(status)
		if duration.Valid {
			s.DurationMinutes = int(duration.Int32)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// dateOnlyUTC conserva el día del calendario local: la columna DATE no tiene zona.
func dateOnlyUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func dateParam(t time.Time) string {
	return t.Format(time.DateOnly)
}
