package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

func TestParseLeads_EncabezadosEnPortuguesYPuntoYComa(t *testing.T) {
	in := "Nome;Empresa;E-mail;Etapa;Valor\n" +
		"Ana Souza;ACME;ANA@acme.com;fechado;R$ 1.500,50\n" +
		";Sem nome;;;\n" +
		"Bruno;;;negociando;abc\n" +
		"Carla;Beta;;;\n"

	leads, skipped, err := parseLeads(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Len(t, skipped, 2)

	assert.Equal(t, "Ana Souza", leads[0].Name)
	assert.Equal(t, "ana@acme.com", leads[0].Email)
	assert.Equal(t, pipeline.StageFechado, leads[0].Stage)
	assert.Equal(t, "1500.50", leads[0].TicketValue.Decimal.StringFixed(2))

	assert.Equal(t, pipeline.StageNovo, leads[1].Stage, "etapa vacía cae en NOVO")
	assert.False(t, leads[1].TicketValue.Valid)
}

func TestParseLeads_IdEstable(t *testing.T) {
	in := "name,email\nAna,ana@acme.com\n"
	a, _, err := parseLeads(strings.NewReader(in))
	require.NoError(t, err)
	b, _, err := parseLeads(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, a[0].ID, b[0].ID)
}

func TestParseLeads_SinColumnaNombre(t *testing.T) {
	_, _, err := parseLeads(strings.NewReader("email,phone\na@b.c,1\n"))
	assert.Error(t, err)
}

func TestDecodeCharset_Latin1(t *testing.T) {
	// "Observações" en ISO-8859-1.
	raw := []byte("name,notes\nJo\xe3o,Observa\xe7\xf5es\n")
	out, err := io.ReadAll(decodeCharset(raw))
	require.NoError(t, err)
	assert.Equal(t, "name,notes\nJoão,Observações\n", string(out))
}

func TestWriteSQL_EscapaComillasYNulos(t *testing.T) {
	leads, _, err := parseLeads(strings.NewReader("name,company\nD'Ávila,\n"))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "leads.csv", leads))
	sql := buf.String()
	assert.Contains(t, sql, "'D''Ávila', NULL")
	assert.Contains(t, sql, "'NOVO'")
	assert.Contains(t, sql, "ON CONFLICT (id) DO UPDATE")
}
