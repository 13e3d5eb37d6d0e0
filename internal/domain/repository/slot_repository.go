package repository

import (
	"context"
	"time"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
)

// SlotRepository puerto del almacén de disponibilidad (horarios generados).
// Las fechas from/to delimitan días en el intervalo semiabierto [from, to).
type SlotRepository interface {
	// ListOrdered devuelve todos los horarios por fecha y luego por hora, ascendente.
	ListOrdered(ctx context.Context) ([]entity.TimeSlot, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.TimeSlot, error)
	ListOccupiedBetween(ctx context.Context, from, to time.Time) ([]entity.TimeSlot, error)
	DeleteAll(ctx context.Context) (int64, error)
	DeleteFreeBetween(ctx context.Context, from, to time.Time) (int64, error)
	InsertBatch(ctx context.Context, slots []entity.TimeSlot) (int64, error)
}
