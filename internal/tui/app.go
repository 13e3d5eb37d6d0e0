// Package tui tablero kanban de terminal sobre board.Session.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jhoicas/flowboard-api/internal/application/board"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

const (
	loadTimeout    = 15 * time.Second
	noticeDuration = 4 * time.Second
	minColumnWidth = 18
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeWarn
	noticeError
)

// Mensajes internos.
type (
	boardLoadedMsg         struct{ err error }
	notificationMsg        struct{ note board.Notification }
	notificationsClosedMsg struct{}
	clearNoticeMsg         struct{ seq int }
)

// App modelo del tablero.
type App struct {
	session *board.Session
	keys    keyMap
	help    help.Model
	spinner spinner.Model

	col     int
	rows    [5]int // tarjeta seleccionada por columna
	width   int
	height  int
	loading bool

	notice      string
	noticeLevel noticeLevel
	noticeSeq   int
}

// New crea el tablero sobre una sesión ya construida.
func New(session *board.Session) *App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(primaryColor)
	return &App{
		session: session,
		keys:    defaultKeys,
		help:    help.New(),
		spinner: sp,
		loading: true,
	}
}

// Run inicia el programa y cierra la sesión al salir (espera las escrituras en curso).
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen())
	_, err := p.Run()
	a.session.Close()
	return err
}

// Init implementa tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.load(), a.listen())
}

func (a *App) load() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()
		_, err := a.session.LoadBoard(ctx)
		return boardLoadedMsg{err: err}
	}
}

// listen espera el siguiente aviso de la sesión; se vuelve a programar tras cada uno.
func (a *App) listen() tea.Cmd {
	ch := a.session.Notifications()
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return notificationsClosedMsg{}
		}
		return notificationMsg{note: n}
	}
}

// Update implementa tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width

	case boardLoadedMsg:
		a.loading = false
		if msg.err != nil {
			return a, a.setNotice(noticeError, "no se pudo cargar el tablero: "+msg.err.Error())
		}
		a.clamp()

	case notificationMsg:
		return a, tea.Batch(a.onNotification(msg.note), a.listen())

	case notificationsClosedMsg:
		return a, nil

	case clearNoticeMsg:
		if msg.seq == a.noticeSeq {
			a.notice = ""
		}

	case spinner.TickMsg:
		if a.loading {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help):
		a.help.ShowAll = !a.help.ShowAll
	case key.Matches(msg, a.keys.Reload):
		a.loading = true
		return a, tea.Batch(a.spinner.Tick, a.load())
	case key.Matches(msg, a.keys.MoveLeft):
		a.moveStage(-1)
	case key.Matches(msg, a.keys.MoveRight):
		a.moveStage(+1)
	case key.Matches(msg, a.keys.MoveUp):
		a.reorder(-1)
	case key.Matches(msg, a.keys.MoveDown):
		a.reorder(+1)
	case key.Matches(msg, a.keys.Left):
		if a.col > 0 {
			a.col--
		}
	case key.Matches(msg, a.keys.Right):
		if a.col < len(pipeline.Stages())-1 {
			a.col++
		}
	case key.Matches(msg, a.keys.Up):
		if a.rows[a.col] > 0 {
			a.rows[a.col]--
		}
	case key.Matches(msg, a.keys.Down):
		a.rows[a.col]++
	}
	a.clamp()
	return a, nil
}

func (a *App) stage() pipeline.Stage {
	return pipeline.Stages()[a.col]
}

func (a *App) selected() (entity.Lead, bool) {
	col := a.session.Board().Column(a.stage())
	row := a.rows[a.col]
	if row < 0 || row >= len(col) {
		return entity.Lead{}, false
	}
	return col[row], true
}

// moveStage lleva la tarjeta al tope de la columna vecina y el cursor la sigue.
func (a *App) moveStage(delta int) {
	lead, ok := a.selected()
	target := a.col + delta
	if !ok || target < 0 || target >= len(pipeline.Stages()) {
		return
	}
	from := a.stage()
	to := pipeline.Stages()[target]
	a.session.MoveLead(lead.ID, from.String(), a.rows[a.col], to.String(), 0)
	a.col = target
	a.rows[target] = 0
}

func (a *App) reorder(delta int) {
	lead, ok := a.selected()
	if !ok {
		return
	}
	row := a.rows[a.col]
	to := row + delta
	if to < 0 || to >= len(a.session.Board().Column(a.stage())) {
		return
	}
	a.session.MoveLead(lead.ID, a.stage().String(), row, a.stage().String(), to)
	a.rows[a.col] = to
}

func (a *App) clamp() {
	b := a.session.Board()
	for i, s := range pipeline.Stages() {
		n := len(b.Column(s))
		if a.rows[i] >= n {
			a.rows[i] = n - 1
		}
		if a.rows[i] < 0 {
			a.rows[i] = 0
		}
	}
}

func (a *App) onNotification(n board.Notification) tea.Cmd {
	name := n.LeadID
	if l, ok := a.session.Board().Lead(n.LeadID); ok {
		name = l.Name
	}
	switch n.Kind {
	case board.NotifyRolledBack:
		a.clamp()
		return a.setNotice(noticeError, fmt.Sprintf("no se pudo mover %s a %s; volvió a %s", name, n.Stage, n.RestoredTo))
	case board.NotifyReconciled:
		a.clamp()
		return a.setNotice(noticeInfo, fmt.Sprintf("%s quedó en %s según el servidor", name, n.RestoredTo))
	case board.NotifySupersededFailure:
		return a.setNotice(noticeWarn, fmt.Sprintf("falló un movimiento anterior de %s; se mantiene el último", name))
	default:
		return a.setNotice(noticeInfo, fmt.Sprintf("%s → %s guardado", name, n.Stage))
	}
}

func (a *App) setNotice(level noticeLevel, text string) tea.Cmd {
	a.noticeSeq++
	a.notice = text
	a.noticeLevel = level
	seq := a.noticeSeq
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{seq: seq} })
}

// View implementa tea.Model.
func (a *App) View() string {
	var b strings.Builder

	title := titleStyle.Render("Flowboard · funil de vendas")
	if a.loading {
		title += " " + a.spinner.View()
	}
	b.WriteString(title + "\n")

	b.WriteString(a.renderColumns() + "\n")

	if a.notice != "" {
		style := statusBarStyle
		switch a.noticeLevel {
		case noticeError:
			style = errorBarStyle
		case noticeWarn:
			style = warningBarStyle
		}
		b.WriteString(style.Render(a.notice) + "\n")
	}
	b.WriteString(a.help.View(a.keys))
	return b.String()
}

func (a *App) renderColumns() string {
	stages := pipeline.Stages()
	width := minColumnWidth
	if a.width > 0 {
		if w := a.width/len(stages) - 4; w > width {
			width = w
		}
	}
	b := a.session.Board()
	cols := make([]string, 0, len(stages))
	for i, s := range stages {
		leads := b.Column(s)
		lines := []string{stageHeader(s, len(leads)), ""}
		for j, l := range leads {
			style := cardStyle
			if i == a.col && j == a.rows[i] {
				style = selectedCardStyle
			}
			lines = append(lines, style.Width(width).Render(cardText(l, width)))
		}
		if len(leads) == 0 {
			lines = append(lines, mutedStyle.Render("vacío"))
		}
		style := columnStyle
		if i == a.col {
			style = activeColumnStyle
		}
		cols = append(cols, style.Width(width+2).Render(strings.Join(lines, "\n")))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func cardText(l entity.Lead, width int) string {
	text := truncate(l.Name, width-2)
	if l.Company != "" {
		text += "\n" + truncate(l.Company, width-2)
	}
	if l.TicketValue.Valid {
		text += "\nR$ " + l.TicketValue.Decimal.StringFixed(2)
	}
	return text
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func itoa(n int) string { return strconv.Itoa(n) }
