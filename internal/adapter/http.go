package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
	"github.com/MKhiriev/go-spend-keeper/models"
	"github.com/go-resty/resty/v2"
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// writePathFor maps an entity kind to its write endpoint.
func writePathFor(kind models.EntityKind) (string, error) {
	switch kind {
	case models.KindExpense:
		return "/api/expenses", nil
	case models.KindCategory:
		return "/api/categories", nil
	case models.KindSubcategory:
		return "/api/subcategories", nil
	case models.KindIncome:
		return "/api/income", nil
	default:
		return "", fmt.Errorf("%w: unknown entity kind %q", ErrRejected, kind)
	}
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the Authorization header of all subsequent requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the bearer token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// Health implements [ServerAdapter]. It GETs the liveness endpoint
// GET /api/health. Network-level failures are wrapped as [ErrRetryable] so
// the connectivity monitor can treat them uniformly with 5xx answers.
func (h *httpServerAdapter) Health(ctx context.Context) error {
	resp, err := h.client.R().SetContext(ctx).Get("/api/health")
	if err != nil {
		return fmt.Errorf("%w: health request: %w", ErrRetryable, err)
	}

	return mapHTTPError(resp)
}

// SubmitWrite implements [ServerAdapter]. It POSTs the write to the endpoint
// of its entity kind. The local ID travels as client_write_id; the server
// collapses a replay onto the record it created the first time, so losing a
// response and resubmitting cannot duplicate data.
func (h *httpServerAdapter) SubmitWrite(ctx context.Context, write models.QueuedWrite) (models.CacheRecord, error) {
	path, err := writePathFor(write.EntityKind)
	if err != nil {
		return models.CacheRecord{}, err
	}

	body := models.WriteRequest{
		ClientWriteID: write.LocalID,
		Payload:       write.Payload,
	}

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		Post(path)
	if err != nil {
		return models.CacheRecord{}, fmt.Errorf("%w: submit write request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CacheRecord{}, err
	}

	var wr models.WriteResponse
	if err = json.Unmarshal(resp.Body(), &wr); err != nil {
		return models.CacheRecord{}, fmt.Errorf("decode write response: %w", err)
	}

	return wr.Record, nil
}

// GetRecords implements [ServerAdapter]. It GETs /api/records with the query
// encoded as URL parameters and decodes the paginated response.
func (h *httpServerAdapter) GetRecords(ctx context.Context, query models.RecordQuery) (models.RecordsResponse, error) {
	req := h.authedRequest(ctx)
	if query.Kind != "" {
		req.SetQueryParam("kind", string(query.Kind))
	}
	if query.Limit > 0 {
		req.SetQueryParam("limit", fmt.Sprintf("%d", query.Limit))
	}
	if query.Offset > 0 {
		req.SetQueryParam("offset", fmt.Sprintf("%d", query.Offset))
	}

	resp, err := req.Get("/api/records")
	if err != nil {
		return models.RecordsResponse{}, fmt.Errorf("%w: get records request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.RecordsResponse{}, err
	}

	var rr models.RecordsResponse
	if err = json.Unmarshal(resp.Body(), &rr); err != nil {
		return models.RecordsResponse{}, fmt.Errorf("decode records response: %w", err)
	}

	return rr, nil
}

// RequestHydration implements [ServerAdapter]. It POSTs to
// POST /api/sync/hydrate, asking the server to rebuild the caller's cache
// from the authoritative store.
func (h *httpServerAdapter) RequestHydration(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/sync/hydrate")
	if err != nil {
		return fmt.Errorf("%w: hydration request: %w", ErrRetryable, err)
	}

	return mapHTTPError(resp)
}

func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
