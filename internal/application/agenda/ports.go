// Package agenda orquesta la regeneración de horarios y su lectura para el calendario.
package agenda

import (
	"context"

	"github.com/jhoicas/flowboard-api/internal/domain/agenda"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/repository"
)

// SlotTxRunner ejecuta fn dentro de una transacción con el almacén de horarios atado a ella.
// Si fn devuelve error no queda ningún cambio aplicado.
type SlotTxRunner interface {
	RunSlots(ctx context.Context, fn func(slots repository.SlotRepository) error) error
}

// AgendaPDFGenerator imprime los horarios como documento.
type AgendaPDFGenerator interface {
	GenerateAgendaPDF(ctx context.Context, title string, slots []entity.TimeSlot, window agenda.Window) ([]byte, error)
}
