package board_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/application/board"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

func lead(id string, stage pipeline.Stage, minutesAgo int) entity.Lead {
	return entity.Lead{
		ID:        id,
		Name:      "Lead " + id,
		Stage:     stage,
		CreatedAt: time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC).Add(-time.Duration(minutesAgo) * time.Minute),
	}
}

func TestBoard_MoveEsCopiaEnEscritura(t *testing.T) {
	b := board.New([]entity.Lead{
		lead("a", pipeline.StageNovo, 0),
		lead("b", pipeline.StageNovo, 1),
		lead("c", pipeline.StageFechado, 2),
	})

	next, ok := b.Move("a", pipeline.StageFechado, 0)
	require.True(t, ok)

	assert.Equal(t, []string{"a", "b"}, b.Snapshot()[pipeline.StageNovo], "el original no cambia")
	assert.Equal(t, []string{"b"}, next.Snapshot()[pipeline.StageNovo])
	assert.Equal(t, []string{"a", "c"}, next.Snapshot()[pipeline.StageFechado])

	moved, ok := next.Lead("a")
	require.True(t, ok)
	assert.Equal(t, pipeline.StageFechado, moved.Stage)
}

func TestBoard_MoveIndiceAcotadoYReordenamiento(t *testing.T) {
	b := board.New([]entity.Lead{
		lead("a", pipeline.StageNovo, 0),
		lead("b", pipeline.StageNovo, 1),
		lead("c", pipeline.StageNovo, 2),
	})
	next, _ := b.Move("a", pipeline.StageNovo, 99)
	assert.Equal(t, []string{"b", "c", "a"}, next.Snapshot()[pipeline.StageNovo])

	next, _ = next.Move("a", pipeline.StageNovo, -3)
	assert.Equal(t, []string{"a", "b", "c"}, next.Snapshot()[pipeline.StageNovo])
}

func TestBoard_MoveIdDesconocido(t *testing.T) {
	b := board.New([]entity.Lead{lead("a", pipeline.StageNovo, 0)})
	next, ok := b.Move("zzz", pipeline.StageFechado, 0)
	assert.False(t, ok)
	assert.Equal(t, b.Snapshot(), next.Snapshot())
	assert.Equal(t, 1, next.Len())
}
