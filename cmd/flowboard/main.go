package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jhoicas/flowboard-api/internal/infrastructure/apiclient"
)

var rootCmd = &cobra.Command{
	Use:          "flowboard",
	Short:        "Flowboard - funil de vendas y agenda desde la terminal",
	Long:         `Flowboard opera el tablero kanban de leads y la generación de horarios contra la API.`,
	SilenceUsage: true,
}

var (
	apiAddr  string
	apiToken string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiAddr, "api", envOr("FLOWBOARD_API", "http://127.0.0.1:8080"), "dirección de la API")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", os.Getenv("FLOWBOARD_TOKEN"), "Bearer token para las rutas de escritura")

	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(slotsCmd)
}

func client() *apiclient.Client {
	return apiclient.New(apiAddr, apiToken)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
