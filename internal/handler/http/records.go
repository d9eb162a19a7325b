// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
	"github.com/MKhiriev/go-spend-keeper/models"
)

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	h.applyWrite(w, r, models.KindExpense)
}

func (h *Handler) createCategory(w http.ResponseWriter, r *http.Request) {
	h.applyWrite(w, r, models.KindCategory)
}

func (h *Handler) createSubcategory(w http.ResponseWriter, r *http.Request) {
	h.applyWrite(w, r, models.KindSubcategory)
}

func (h *Handler) createIncome(w http.ResponseWriter, r *http.Request) {
	h.applyWrite(w, r, models.KindIncome)
}

// applyWrite is the shared body of all four write endpoints. The entity kind
// comes from the route, everything else from the request body.
func (h *Handler) applyWrite(w http.ResponseWriter, r *http.Request, kind models.EntityKind) {
	log := logger.FromRequest(r)

	sc, ok := utils.GetSyncContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	var req models.WriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Str("func", "*Handler.applyWrite").Msg("invalid JSON was passed")
		http.Error(w, ErrInvalidJSONBody.Error(), http.StatusBadRequest)
		return
	}
	if req.ClientWriteID == "" {
		log.Warn().Str("func", "*Handler.applyWrite").Msg("write without idempotency marker")
		http.Error(w, ErrMissingClientWriteID.Error(), http.StatusBadRequest)
		return
	}

	record, err := h.services.RecordService.Apply(r.Context(), sc, kind, req)
	if err != nil {
		log.Err(err).
			Str("func", "*Handler.applyWrite").
			Str("kind", string(kind)).
			Str("client_write_id", req.ClientWriteID).
			Msg("error applying write")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, models.WriteResponse{Record: record}, http.StatusCreated)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	sc, ok := utils.GetSyncContext(r.Context())
	if !ok {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	query, err := recordQueryFromRequest(r)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRecords").Msg("bad records query")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := h.services.RecordService.List(r.Context(), sc, query)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listRecords").Msg("error listing records")
		writeError(w, err)
		return
	}

	utils.WriteJSON(w, resp, http.StatusOK)
}

// recordQueryFromRequest parses the listing query parameters. All of them
// are optional; an unknown kind or a non-numeric limit/offset is a 400.
func recordQueryFromRequest(r *http.Request) (models.RecordQuery, error) {
	var query models.RecordQuery

	if kind := r.URL.Query().Get("kind"); kind != "" {
		query.Kind = models.EntityKind(kind)
		if !query.Kind.Valid() {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
	}

	if limit := r.URL.Query().Get("limit"); limit != "" {
		parsed, err := strconv.ParseUint(limit, 10, 64)
		if err != nil {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
		query.Limit = parsed
	}

	if offset := r.URL.Query().Get("offset"); offset != "" {
		parsed, err := strconv.ParseUint(offset, 10, 64)
		if err != nil {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
		query.Offset = parsed
	}

	if from := r.URL.Query().Get("from"); from != "" {
		parsed, err := parseDateBound(from)
		if err != nil {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
		query.From = parsed
	}

	if to := r.URL.Query().Get("to"); to != "" {
		parsed, err := parseDateBound(to)
		if err != nil {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
		query.To = parsed
	}

	if deleted := r.URL.Query().Get("include_deleted"); deleted != "" {
		parsed, err := strconv.ParseBool(deleted)
		if err != nil {
			return models.RecordQuery{}, ErrInvalidRecordQuery
		}
		query.IncludeDeleted = parsed
	}

	return query, nil
}

// parseDateBound accepts a plain date or a full RFC 3339 timestamp.
func parseDateBound(value string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
