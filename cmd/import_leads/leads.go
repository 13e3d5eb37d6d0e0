package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// namespace fijo: el mismo nombre+email produce el mismo id y reimportar actualiza en vez de duplicar.
var leadNamespace = uuid.MustParse("6f1c1f0e-3a57-4d8e-9c4b-2a8f0d6e5b11")

type seedLead struct {
	ID          string
	Name        string
	Company     string
	Email       string
	Phone       string
	Stage       pipeline.Stage
	TicketValue decimal.NullDecimal
	Notes       string
}

// columnas aceptadas por campo.
var headerAliases = map[string][]string{
	"name":         {"name", "nome", "nombre"},
	"company":      {"company", "empresa"},
	"email":        {"email", "e-mail", "correo"},
	"phone":        {"phone", "telefone", "telefono", "teléfono", "celular"},
	"stage":        {"stage", "etapa", "status"},
	"ticket_value": {"ticket_value", "valor", "ticket", "valor_estimado"},
	"notes":        {"notes", "observacoes", "observações", "notas"},
}

func mapHeader(header []string) (map[string]int, error) {
	idx := make(map[string]int)
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		for field, aliases := range headerAliases {
			for _, a := range aliases {
				if h == a {
					if _, dup := idx[field]; !dup {
						idx[field] = i
					}
				}
			}
		}
	}
	if _, ok := idx["name"]; !ok {
		return nil, errors.New("falta la columna de nombre (name/nome)")
	}
	return idx, nil
}

// parseLeads lee el CSV (coma o punto y coma). Las filas sin nombre o con valor ilegible se
// omiten y se informan en skipped.
func parseLeads(r io.Reader) ([]seedLead, []string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, errors.New("CSV vacío")
	}
	// Planillas exportadas con configuración regional brasileña usan ';'.
	if len(records[0]) == 1 && strings.Contains(records[0][0], ";") {
		records = resplit(records, ";")
	}

	idx, err := mapHeader(records[0])
	if err != nil {
		return nil, nil, err
	}
	get := func(rec []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var (
		leads   []seedLead
		skipped []string
	)
	for n, rec := range records[1:] {
		line := n + 2
		name := get(rec, "name")
		if name == "" {
			skipped = append(skipped, fmt.Sprintf("línea %d: sin nombre", line))
			continue
		}
		ticket, err := parseMoney(get(rec, "ticket_value"))
		if err != nil {
			skipped = append(skipped, fmt.Sprintf("línea %d: valor %q inválido", line, get(rec, "ticket_value")))
			continue
		}
		email := strings.ToLower(get(rec, "email"))
		leads = append(leads, seedLead{
			ID:          uuid.NewSHA1(leadNamespace, []byte(strings.ToLower(name)+"|"+email)).String(),
			Name:        name,
			Company:     get(rec, "company"),
			Email:       email,
			Phone:       get(rec, "phone"),
			Stage:       pipeline.Normalize(get(rec, "stage")),
			TicketValue: ticket,
			Notes:       get(rec, "notes"),
		})
	}
	return leads, skipped, nil
}

func resplit(records [][]string, sep string) [][]string {
	out := make([][]string, 0, len(records))
	for _, rec := range records {
		out = append(out, strings.Split(strings.Join(rec, ","), sep))
	}
	return out
}

// parseMoney acepta "1500.50", "1.500,50" y "R$ 1.500,50". Vacío es NULL.
func parseMoney(s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NewNullDecimal(d.Round(2)), nil
}

func writeSQL(w io.Writer, source string, leads []seedLead) error {
	var b strings.Builder
	fmt.Fprintf(&b, "-- Leads importados desde %s\n", source)
	b.WriteString("-- Generado por cmd/import_leads; reimportar actualiza los mismos ids.\n\n")
	for _, l := range leads {
		b.WriteString("INSERT INTO leads (id, name, company, email, phone, stage, ticket_value, notes)\n")
		fmt.Fprintf(&b, "VALUES (%s, %s, %s, %s, %s, %s, %s, %s)\n",
			quote(l.ID), quote(l.Name), nullable(l.Company), nullable(l.Email), nullable(l.Phone),
			quote(l.Stage.String()), money(l.TicketValue), nullable(l.Notes))
		b.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, company = EXCLUDED.company,\n")
		b.WriteString("  email = EXCLUDED.email, phone = EXCLUDED.phone, stage = EXCLUDED.stage,\n")
		b.WriteString("  ticket_value = EXCLUDED.ticket_value, notes = EXCLUDED.notes, updated_at = NOW();\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func nullable(s string) string {
	if s == "" {
		return "NULL"
	}
	return quote(s)
}

func money(d decimal.NullDecimal) string {
	if !d.Valid {
		return "NULL"
	}
	return d.Decimal.StringFixed(2)
}
