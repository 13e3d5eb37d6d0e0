package entity

import (
	"strings"
	"time"
)

// SlotStatus estado de un horario reservable.
type SlotStatus string

const (
	SlotFree     SlotStatus = "free"
	SlotOccupied SlotStatus = "occupied"
)

// ParseSlotStatus acepta también las etiquetas heredadas "livre" y "ocupado".
// Cualquier otro valor se trata como ocupado: nunca se ofrece como libre algo desconocido.
func ParseSlotStatus(raw string) SlotStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free", "livre":
		return SlotFree
	default:
		return SlotOccupied
	}
}

// TimeSlot horario concreto (día + hora) generado desde una plantilla de agenda.
// La identidad natural es (Date, Time); ID es sustituto y se asigna al persistir.
type TimeSlot struct {
	ID              string
	Date            time.Time // medianoche del día, en la zona horaria de la agenda
	Time            ClockTime
	Status          SlotStatus
	DurationMinutes int // intervalo con que se generó; 0 en filas heredadas
	CreatedAt       time.Time
}

// Key identidad natural "2006-01-02 15:04".
func (s TimeSlot) Key() string {
	return s.Date.Format(time.DateOnly) + " " + s.Time.String()
}

// Start combina fecha y hora en un instante de la zona indicada.
func (s TimeSlot) Start(loc *time.Location) time.Time {
	if loc == nil {
		loc = s.Date.Location()
	}
	return time.Date(s.Date.Year(), s.Date.Month(), s.Date.Day(),
		s.Time.Hour(), s.Time.Minute(), 0, 0, loc)
}
