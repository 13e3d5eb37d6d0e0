package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/flowboard-api/internal/domain"
)

func TestKind_ErroresEnvueltos(t *testing.T) {
	assert.Equal(t, domain.KindValidation, domain.Kind(fmt.Errorf("weekday 9: %w", domain.ErrInvalidInput)))
	assert.Equal(t, domain.KindNotFound, domain.Kind(fmt.Errorf("lead x: %w", domain.ErrNotFound)))
	assert.Equal(t, domain.KindConflict, domain.Kind(domain.ErrRegenerationInProgress))
	assert.Equal(t, domain.KindRegenerationFailed, domain.Kind(fmt.Errorf("%w: copy: boom", domain.ErrRegenerationFailed)))
}

func TestKind_DesconocidoEsInterno(t *testing.T) {
	assert.Equal(t, domain.KindInternal, domain.Kind(errors.New("pq: relation does not exist")))
	assert.Equal(t, domain.ErrorKind(""), domain.Kind(nil))
}
