package board

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

// LeadSource lectura de leads, más recientes primero.
type LeadSource interface {
	ListLeads(ctx context.Context) ([]entity.Lead, error)
}

// StageWriter persiste la etapa completa de un lead (nunca un delta).
type StageWriter interface {
	UpdateStage(ctx context.Context, leadID string, stage pipeline.Stage) error
}

// NotificationKind resultado de una escritura asíncrona.
type NotificationKind string

const (
	NotifyPersisted NotificationKind = "persisted"
	// NotifyRolledBack la escritura falló y el lead volvió a su última etapa confirmada.
	NotifyRolledBack NotificationKind = "rolled_back"
	// NotifySupersededFailure la escritura falló pero ya hay un movimiento posterior del mismo
	// lead; el tablero no se toca y decide el resultado de ese movimiento.
	NotifySupersededFailure NotificationKind = "superseded_failure"
	// NotifyReconciled la escritura se confirmó después de que el tablero ya había revertido
	// el lead; el tablero pasa a mostrar la etapa confirmada.
	NotifyReconciled NotificationKind = "reconciled"
)

// Notification aviso transitorio para la interfaz.
type Notification struct {
	Kind          NotificationKind
	LeadID        string
	CorrelationID string
	Stage         pipeline.Stage // etapa escrita (o intentada)
	RestoredTo    pipeline.Stage // en NotifyRolledBack y NotifyReconciled
	Err           error
}

const (
	defaultWriteTimeout = 15 * time.Second
	notificationBuffer  = 64
)

// Option configura una Session.
type Option func(*Session)

// WithWriteTimeout límite de cada escritura de etapa.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Session) { s.writeTimeout = d }
}

// WithIDGenerator reemplaza el generador de ids de correlación.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) { s.newID = fn }
}

// Session tablero de un operador. MoveLead aplica el cambio en memoria de forma síncrona y
// persiste la etapa en segundo plano; no bloquea nuevos movimientos.
type Session struct {
	source LeadSource
	writer StageWriter
	log    *logger.Logger

	mu        sync.Mutex
	board     Board
	confirmed map[string]pipeline.Stage // última etapa confirmada por el backend
	confSeq   map[string]uint64         // secuencia del movimiento que fijó confirmed
	latest    map[string]string         // lead → correlación del último cambio de etapa
	pending   map[string]int            // escrituras en curso por lead
	seq       uint64
	closed    bool

	inflight     sync.WaitGroup
	notes        chan Notification
	ctx          context.Context
	cancel       context.CancelFunc
	writeTimeout time.Duration
	newID        func() string
}

// NewSession construye la sesión con el tablero vacío; LoadBoard lo llena.
func NewSession(source LeadSource, writer StageWriter, log *logger.Logger, opts ...Option) *Session {
	if log == nil {
		log = logger.Nop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		source:       source,
		writer:       writer,
		log:          log.Component("board"),
		confirmed:    make(map[string]pipeline.Stage),
		confSeq:      make(map[string]uint64),
		latest:       make(map[string]string),
		pending:      make(map[string]int),
		notes:        make(chan Notification, notificationBuffer),
		ctx:          ctx,
		cancel:       cancel,
		writeTimeout: defaultWriteTimeout,
		newID:        func() string { return uuid.New().String() },
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LoadBoard trae todos los leads, los ordena por creación descendente y reemplaza el tablero.
// Los valores leídos pasan a ser la etapa confirmada de cada lead.
func (s *Session) LoadBoard(ctx context.Context) ([]entity.Lead, error) {
	leads, err := s.source.ListLeads(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(leads, func(i, j int) bool { return leads[i].CreatedAt.After(leads[j].CreatedAt) })
	for i := range leads {
		leads[i].Stage = pipeline.Normalize(leads[i].Stage.String())
	}

	b := New(leads)
	s.mu.Lock()
	s.board = b
	s.confirmed = make(map[string]pipeline.Stage, len(leads))
	s.confSeq = make(map[string]uint64, len(leads))
	for _, l := range leads {
		s.confirmed[l.ID] = l.Stage
	}
	s.mu.Unlock()
	return leads, nil
}

// Board estado actual (valor inmutable).
func (s *Session) Board() Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

// MoveLead mueve un lead arrastrado desde (fromColumn, fromIndex) a (toColumn, toIndex).
//
// Soltar en el mismo lugar o un id desconocido no hacen nada. El tablero se actualiza antes
// de volver. Si la etapa cambia se lanza exactamente una escritura asíncrona y se devuelve su
// id de correlación; un reordenamiento dentro de la columna es local y devuelve "".
func (s *Session) MoveLead(leadID, fromColumn string, fromIndex int, toColumn string, toIndex int) string {
	target := pipeline.Normalize(toColumn)
	if pipeline.Normalize(fromColumn) == target && fromIndex == toIndex {
		return ""
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ""
	}
	prior, _, ok := s.board.Find(leadID)
	if !ok {
		s.mu.Unlock()
		s.log.Debug().Str("lead_id", leadID).Msg("movimiento ignorado: lead no está en el tablero")
		return ""
	}
	s.board, _ = s.board.Move(leadID, target, toIndex)
	if prior == target {
		s.mu.Unlock()
		return ""
	}
	corr := s.newID()
	s.seq++
	seq := s.seq
	s.latest[leadID] = corr
	s.pending[leadID]++
	s.inflight.Add(1)
	s.mu.Unlock()

	go s.persist(leadID, target, corr, seq)
	return corr
}

// persist escribe la etapa y concilia el tablero con la respuesta.
//
// Entre escrituras del mismo lead gana la confirmada de mayor secuencia. Cuando el lead ya no
// tiene escrituras en curso el tablero queda en la etapa confirmada, también si una escritura
// anterior se confirma después de que la última falló y el lead fue revertido.
func (s *Session) persist(leadID string, target pipeline.Stage, corr string, seq uint64) {
	defer s.inflight.Done()

	ctx, cancel := context.WithTimeout(s.ctx, s.writeTimeout)
	err := s.writer.UpdateStage(ctx, leadID, target)
	cancel()

	s.mu.Lock()
	isLatest := s.latest[leadID] == corr
	if isLatest {
		delete(s.latest, leadID)
	}
	if s.pending[leadID]--; s.pending[leadID] <= 0 {
		delete(s.pending, leadID)
	}
	note := Notification{LeadID: leadID, CorrelationID: corr, Stage: target, Err: err}

	switch {
	case err == nil:
		if seq > s.confSeq[leadID] {
			s.confirmed[leadID] = target
			s.confSeq[leadID] = seq
		}
		note.Kind = NotifyPersisted
	case isLatest:
		restore, known := s.confirmed[leadID]
		if known {
			s.moveTo(leadID, restore)
		}
		note.Kind = NotifyRolledBack
		note.RestoredTo = restore
	default:
		note.Kind = NotifySupersededFailure
	}

	_, newer := s.latest[leadID]
	if !isLatest && !newer && s.pending[leadID] == 0 {
		if restore, known := s.confirmed[leadID]; known && s.moveTo(leadID, restore) {
			note.RestoredTo = restore
			if err == nil {
				note.Kind = NotifyReconciled
			} else {
				note.Kind = NotifyRolledBack
			}
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).
			Str("lead_id", leadID).
			Str("correlation_id", corr).
			Str("stage", target.String()).
			Str("outcome", string(note.Kind)).
			Msg("no se pudo persistir la etapa del lead")
	}
	s.notify(note)
}

// moveTo lleva el lead al tope de la columna stage si está en otra. Requiere s.mu.
func (s *Session) moveTo(leadID string, stage pipeline.Stage) bool {
	current, _, ok := s.board.Find(leadID)
	if !ok || current == stage {
		return false
	}
	s.board, _ = s.board.Move(leadID, stage, 0)
	return true
}

func (s *Session) notify(n Notification) {
	select {
	case s.notes <- n:
	default:
		s.log.Warn().Str("lead_id", n.LeadID).Msg("notificación descartada: canal lleno")
	}
}

// Notifications canal de avisos transitorios. Se cierra con Close.
func (s *Session) Notifications() <-chan Notification {
	return s.notes
}

// Wait espera a que terminen las escrituras en curso.
func (s *Session) Wait() {
	s.inflight.Wait()
}

// Close rechaza nuevos movimientos, espera las escrituras en curso y cierra Notifications.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.inflight.Wait()
	s.cancel()
	close(s.notes)
}
