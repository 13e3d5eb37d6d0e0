// Package board mantiene la copia de trabajo del tablero kanban de un operador y reconcilia
// sus movimientos con el backend.
package board

import (
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

const numColumns = 5

// Board valor inmutable: cinco columnas ordenadas de leads. Move devuelve un tablero nuevo.
type Board struct {
	columns [numColumns][]entity.Lead
}

// New agrupa los leads por etapa normalizada conservando el orden recibido dentro de cada columna.
func New(leads []entity.Lead) Board {
	var b Board
	for _, l := range leads {
		l.Stage = pipeline.Normalize(l.Stage.String())
		i := l.Stage.Index()
		b.columns[i] = append(b.columns[i], l)
	}
	return b
}

// Column copia de la columna de la etapa.
func (b Board) Column(s pipeline.Stage) []entity.Lead {
	col := b.columns[s.Index()]
	out := make([]entity.Lead, len(col))
	copy(out, col)
	return out
}

// Find ubica un lead por id.
func (b Board) Find(id string) (stage pipeline.Stage, index int, ok bool) {
	for c, col := range b.columns {
		for i, l := range col {
			if l.ID == id {
				return pipeline.Stage(c), i, true
			}
		}
	}
	return pipeline.StageNovo, -1, false
}

// Lead devuelve el lead con id.
func (b Board) Lead(id string) (entity.Lead, bool) {
	s, i, ok := b.Find(id)
	if !ok {
		return entity.Lead{}, false
	}
	return b.columns[s.Index()][i], true
}

// Move saca el lead de su columna y lo inserta en la columna to, posición toIndex (acotada).
// El índice se interpreta después de quitar el lead, como en un arrastre. Devuelve false si
// el id no existe, en cuyo caso el tablero queda igual.
func (b Board) Move(id string, to pipeline.Stage, toIndex int) (Board, bool) {
	from, i, ok := b.Find(id)
	if !ok {
		return b, false
	}
	lead := b.columns[from.Index()][i].WithStage(to)

	next := b
	src := b.columns[from.Index()]
	rest := make([]entity.Lead, 0, len(src)-1)
	rest = append(rest, src[:i]...)
	rest = append(rest, src[i+1:]...)
	next.columns[from.Index()] = rest

	dst := next.columns[to.Index()]
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex > len(dst) {
		toIndex = len(dst)
	}
	moved := make([]entity.Lead, 0, len(dst)+1)
	moved = append(moved, dst[:toIndex]...)
	moved = append(moved, lead)
	moved = append(moved, dst[toIndex:]...)
	next.columns[to.Index()] = moved
	return next, true
}

// Len total de leads en el tablero.
func (b Board) Len() int {
	n := 0
	for _, col := range b.columns {
		n += len(col)
	}
	return n
}

// Snapshot ids por etapa, en orden de columna. Útil para comparar estados.
func (b Board) Snapshot() map[pipeline.Stage][]string {
	out := make(map[pipeline.Stage][]string, numColumns)
	for _, s := range pipeline.Stages() {
		ids := make([]string, 0, len(b.columns[s.Index()]))
		for _, l := range b.columns[s.Index()] {
			ids = append(ids, l.ID)
		}
		out[s] = ids
	}
	return out
}
