// import_leads genera un script SQL que carga leads desde una exportación CSV de la planilla
// comercial (encabezados en portugués o inglés, UTF-8 o ISO-8859-1).
//
// Uso: go run ./cmd/import_leads [ruta/leads.csv]
// Por defecto busca leads.csv en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_leads.sql
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

func main() {
	csvPath := "leads.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}
	raw, err := os.ReadFile(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}

	leads, skipped, err := parseLeads(decodeCharset(raw))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	for _, s := range skipped {
		fmt.Fprintf(os.Stderr, "omitida: %s\n", s)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_leads.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := writeSQL(out, filepath.Base(csvPath), leads); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d leads, %d filas omitidas\n", outPath, len(leads), len(skipped))
}

// decodeCharset las exportaciones antiguas salen en ISO-8859-1; lo que no es UTF-8 válido se transcodifica.
func decodeCharset(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
