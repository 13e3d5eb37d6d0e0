package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/flowboard-api/internal/application/board"
	"github.com/jhoicas/flowboard-api/internal/tui"
	"github.com/jhoicas/flowboard-api/pkg/logger"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Abre el tablero kanban de leads",
	RunE:  runBoard,
}

func runBoard(cmd *cobra.Command, args []string) error {
	// La pantalla es del TUI: los logs van a un archivo si se pide, si no se descartan.
	log := logger.Nop()
	if path := os.Getenv("FLOWBOARD_LOG"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("abrir log: %w", err)
		}
		defer f.Close()
		log = logger.NewWithWriter(f, os.Getenv("LOG_LEVEL"))
	}

	c := client()
	session := board.NewSession(c, c, log)
	if err := tui.New(session).Run(); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}
