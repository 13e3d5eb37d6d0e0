package entity

import (
	"fmt"
	"strconv"
	"strings"
)

// ClockTime hora del día expresada en minutos desde la medianoche (0..1439).
type ClockTime int

// ParseClock interpreta "HH:MM" (también acepta "HH:MM:SS", ignorando los segundos).
func ParseClock(s string) (ClockTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("hora inválida %q: formato HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("minuto inválido %q", s)
	}
	return ClockTime(h*60 + m), nil
}

// Hour parte de la hora.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute parte de los minutos.
func (c ClockTime) Minute() int { return int(c) % 60 }

// String "HH:MM" con ceros a la izquierda.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// MarshalText implementa encoding.TextMarshaler.
func (c ClockTime) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implementa encoding.TextUnmarshaler.
func (c *ClockTime) UnmarshalText(b []byte) error {
	v, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}
