// Package apiclient cliente HTTP de la API usado por la CLI y el tablero de terminal.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/flowboard-api/internal/application/board"
	"github.com/jhoicas/flowboard-api/internal/application/dto"
	"github.com/jhoicas/flowboard-api/internal/application/usecase"
	"github.com/jhoicas/flowboard-api/internal/domain"
	"github.com/jhoicas/flowboard-api/internal/domain/entity"
	"github.com/jhoicas/flowboard-api/internal/domain/pipeline"
)

// DefaultTimeout límite por petición.
const DefaultTimeout = 10 * time.Second

var (
	_ board.LeadSource  = (*Client)(nil)
	_ board.StageWriter = (*Client)(nil)
)

// Client envuelve las llamadas a la API de Flowboard.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// New crea el cliente. token vacío no envía Authorization.
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
}

// APIError respuesta de error de la API. Unwrap expone el error de dominio equivalente al
// código, de modo que errors.Is(err, domain.ErrNotFound) funciona en el cliente.
type APIError struct {
	Status  int
	Code    domain.ErrorKind
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("API %d: %s", e.Status, e.Message)
}

func (e *APIError) Unwrap() error {
	switch e.Code {
	case domain.KindValidation:
		return domain.ErrInvalidInput
	case domain.KindNotFound:
		return domain.ErrNotFound
	case domain.KindConflict:
		return domain.ErrConflict
	case domain.KindUnauthorized:
		return domain.ErrUnauthorized
	case domain.KindForbidden:
		return domain.ErrForbidden
	case domain.KindRegenerationFailed:
		return domain.ErrRegenerationFailed
	}
	return nil
}

// ListLeads GET /api/leads.
func (c *Client) ListLeads(ctx context.Context) ([]entity.Lead, error) {
	var out dto.LeadListResponse
	if err := c.do(ctx, http.MethodGet, "/api/leads", nil, &out); err != nil {
		return nil, err
	}
	leads := make([]entity.Lead, 0, len(out.Leads))
	for _, l := range out.Leads {
		leads = append(leads, usecase.LeadFromResponse(l))
	}
	return leads, nil
}

// UpdateStage PATCH /api/leads/:id/stage con la etapa completa.
func (c *Client) UpdateStage(ctx context.Context, leadID string, stage pipeline.Stage) error {
	body := dto.UpdateStageRequest{Stage: stage.String()}
	return c.do(ctx, http.MethodPatch, "/api/leads/"+url.PathEscape(leadID)+"/stage", body, nil)
}

// GenerateSlots POST /api/agenda/generate.
func (c *Client) GenerateSlots(ctx context.Context, in dto.GenerateSlotsRequest) (*dto.RegenerationReport, error) {
	var out dto.RegenerationReport
	if err := c.do(ctx, http.MethodPost, "/api/agenda/generate", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Events GET /api/agenda/events.
func (c *Client) Events(ctx context.Context) ([]dto.CalendarEventResponse, error) {
	var out dto.CalendarEventListResponse
	if err := c.do(ctx, http.MethodGet, "/api/agenda/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Events, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("serializar petición: %w", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var envelope dto.ErrorResponse
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != "" {
			apiErr.Message = envelope.Error
			apiErr.Code = domain.ErrorKind(envelope.Code)
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decodificar respuesta: %w", err)
	}
	return nil
}
