package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/flowboard-api/internal/application/dto"
)

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Agenda de disponibilidad",
}

var slotsGenerateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "Regenera los horarios desde una plantilla semanal",
	Example: `  flowboard slots generate --start 09:00 --end 18:00 --interval 20 --days 1,2,3,4,5`,
	RunE:    runSlotsGenerate,
}

var slotsEventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Lista los horarios como eventos de calendario",
	RunE:  runSlotsEvents,
}

var (
	genStart     string
	genEnd       string
	genInterval  int
	genDays      string
	genLookahead int
)

func init() {
	f := slotsGenerateCmd.Flags()
	f.StringVar(&genStart, "start", "09:00", "inicio de la jornada (HH:MM)")
	f.StringVar(&genEnd, "end", "18:00", "fin de la jornada (HH:MM, exclusivo)")
	f.IntVar(&genInterval, "interval", 30, "minutos entre horarios")
	f.StringVar(&genDays, "days", "1,2,3,4,5", "días de la semana, 0=domingo..6=sábado")
	f.IntVar(&genLookahead, "lookahead", 0, "días hacia adelante (0 usa el valor del servidor)")

	slotsCmd.AddCommand(slotsGenerateCmd)
	slotsCmd.AddCommand(slotsEventsCmd)
}

// parseWeekdays acepta "1,2,3" y rangos "1-5".
func parseWeekdays(s string) ([]int, error) {
	var out []int
	seen := make(map[int]bool)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi := part, part
		if i := strings.Index(part, "-"); i > 0 {
			lo, hi = part[:i], part[i+1:]
		}
		a, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("día inválido %q", part)
		}
		b, err := strconv.Atoi(hi)
		if err != nil || b < a {
			return nil, fmt.Errorf("rango inválido %q", part)
		}
		for d := a; d <= b; d++ {
			if d < 0 || d > 6 {
				return nil, fmt.Errorf("día fuera de rango %d (0..6)", d)
			}
			if !seen[d] {
				seen[d] = true
				out = append(out, d)
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("ningún día seleccionado")
	}
	return out, nil
}

func runSlotsGenerate(cmd *cobra.Command, args []string) error {
	days, err := parseWeekdays(genDays)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
	defer cancel()

	report, err := client().GenerateSlots(ctx, dto.GenerateSlotsRequest{
		StartTime:       genStart,
		EndTime:         genEnd,
		IntervalMinutes: genInterval,
		Weekdays:        days,
		LookaheadDays:   genLookahead,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Ventana %s → %s (scope %s)\n", report.WindowFrom, report.WindowTo, report.Scope)
	fmt.Fprintf(out, "  generados:        %d\n", report.Generated)
	fmt.Fprintf(out, "  insertados:       %d\n", report.Inserted)
	fmt.Fprintf(out, "  eliminados:       %d\n", report.Deleted)
	if report.KeptOccupied > 0 || report.SkippedTaken > 0 {
		fmt.Fprintf(out, "  ocupados intactos: %d (%d nuevos descartados)\n", report.KeptOccupied, report.SkippedTaken)
	}
	return nil
}

func runSlotsEvents(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	events, err := client().Events(ctx)
	if err != nil {
		return err
	}
	return printEvents(cmd, events)
}

func printEvents(cmd *cobra.Command, events []dto.CalendarEventResponse) error {
	if len(events) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Sin horarios.")
		return nil
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tINICIO\tFIN\tESTADO")
	for _, ev := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			ev.Start.Format("2006-01-02 Mon"), ev.Start.Format("15:04"), ev.End.Format("15:04"), ev.Title)
	}
	return w.Flush()
}
