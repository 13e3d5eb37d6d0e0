// Package pipeline define las etapas canónicas del funil de ventas y su normalización.
//
// Toda frontera de lectura o escritura (JSON, base de datos, tablero) pasa por Normalize,
// de modo que el tablero en memoria y el backend nunca difieren por mayúsculas o espacios.
package pipeline

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Stage etapa del funil. El valor cero es StageNovo.
type Stage uint8

const (
	StageNovo Stage = iota
	StageAgendado
	StageProposta
	StageFechado
	StageRecusado
)

var labels = [...]string{
	StageNovo:     "NOVO",
	StageAgendado: "AGENDADO",
	StageProposta: "PROPOSTA",
	StageFechado:  "FECHADO",
	StageRecusado: "RECUSADO",
}

// Stages devuelve las cinco etapas en el orden de las columnas del tablero.
// El orden no restringe transiciones: cualquier etapa puede pasar a cualquier otra.
func Stages() []Stage {
	return []Stage{StageNovo, StageAgendado, StageProposta, StageFechado, StageRecusado}
}

// Normalize recorta espacios, pasa a mayúsculas y busca la etiqueta canónica.
// Si no hay coincidencia devuelve StageNovo.
func Normalize(raw string) Stage {
	s, ok := Parse(raw)
	if !ok {
		return StageNovo
	}
	return s
}

// Parse es como Normalize pero indica si la entrada era reconocible.
func Parse(raw string) (Stage, bool) {
	key := cases.Upper(language.Und).String(strings.TrimSpace(raw))
	for i, l := range labels {
		if l == key {
			return Stage(i), true
		}
	}
	return StageNovo, false
}

// String devuelve la etiqueta canónica (NOVO, AGENDADO, ...).
func (s Stage) String() string {
	if int(s) >= len(labels) {
		return labels[StageNovo]
	}
	return labels[s]
}

// Index posición de la columna (0..4).
func (s Stage) Index() int {
	if int(s) >= len(labels) {
		return 0
	}
	return int(s)
}

// IsOpen indica si el lead sigue en negociación (ni FECHADO ni RECUSADO).
func (s Stage) IsOpen() bool {
	return s != StageFechado && s != StageRecusado
}

// MarshalText implementa encoding.TextMarshaler.
func (s Stage) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implementa encoding.TextUnmarshaler. Nunca falla: normaliza.
func (s *Stage) UnmarshalText(b []byte) error {
	*s = Normalize(string(b))
	return nil
}
