package dto

import "time"

// GenerateSlotsRequest cuerpo de POST /api/agenda/generate.
// Horas en "HH:MM"; weekdays 0=domingo..6=sábado. lookahead_days 0 usa el valor configurado.
type GenerateSlotsRequest struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	IntervalMinutes int    `json:"interval_minutes"`
	Weekdays        []int  `json:"weekdays"`
	LookaheadDays   int    `json:"lookahead_days,omitempty"`
}

// RegenerationReport resultado de una regeneración.
type RegenerationReport struct {
	Scope         string    `json:"scope"`
	WindowFrom    string    `json:"window_from"`
	WindowTo      string    `json:"window_to"`
	Generated     int       `json:"generated"`
	Inserted      int64     `json:"inserted"`
	Deleted       int64     `json:"deleted"`
	KeptOccupied  int       `json:"kept_occupied"`
	SkippedTaken  int       `json:"skipped_taken"`
	FinishedAt    time.Time `json:"finished_at"`
	DurationMilli int64     `json:"duration_ms"`
}

// SlotResponse horario almacenado.
type SlotResponse struct {
	ID              string `json:"id"`
	Date            string `json:"date"`
	Time            string `json:"time"`
	Status          string `json:"status"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// SlotListResponse envoltorio {"slots": [...]}.
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// CalendarEventResponse evento para la vista de calendario.
type CalendarEventResponse struct {
	ID     string    `json:"id"`
	Title  string    `json:"title"`
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status string    `json:"status"`
	Color  string    `json:"color"`
}

// CalendarEventListResponse envoltorio {"events": [...]}.
type CalendarEventListResponse struct {
	Events []CalendarEventResponse `json:"events"`
}
