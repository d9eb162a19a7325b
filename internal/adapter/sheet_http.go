// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/go-spend-keeper/internal/config"
	"github.com/MKhiriev/go-spend-keeper/internal/logger"
	"github.com/MKhiriev/go-spend-keeper/internal/utils"
	"github.com/MKhiriev/go-spend-keeper/models"
)

type httpSheetStore struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// rowsEnvelope is the sheet service's wire shape for row collections.
type rowsEnvelope struct {
	Rows []models.SheetRow `json:"rows"`
}

// workbookResponse is the sheet service's answer to a provisioning call.
type workbookResponse struct {
	CategoriesSheetID string `json:"categories_sheet_id"`
	ExpensesSheetID   string `json:"expenses_sheet_id"`
	CashflowsSheetID  string `json:"cashflows_sheet_id"`
}

// NewHTTPSheetStore constructs the HTTP implementation of [SheetStore]
// against the remote sheet service configured in cfg. The service token is
// attached to every request; per-call deadlines come from the caller's
// context on top of the configured request timeout.
func NewHTTPSheetStore(cfg config.Sheets, logger *logger.Logger) (SheetStore, error) {
	baseURL, err := normalizeBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid sheet service base url: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetAuthToken(cfg.APIToken)

	return &httpSheetStore{client: client, logger: logger}, nil
}

// ReadAll implements [SheetStore]. It GETs every row of the sheet. Rows that
// fail to decode are dropped by the envelope decoding; a malformed envelope
// as a whole is an error.
func (s *httpSheetStore) ReadAll(ctx context.Context, sheetID string) ([]models.SheetRow, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/v1/sheets/%s/rows", sheetID))
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var envelope rowsEnvelope
	if err = json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, fmt.Errorf("decode sheet rows: %w", err)
	}

	return envelope.Rows, nil
}

// Append implements [SheetStore]. It POSTs the row to the end of the sheet
// and returns the service's canonical copy carrying Ref and Revision.
func (s *httpSheetStore) Append(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		Post(fmt.Sprintf("/v1/sheets/%s/rows", sheetID))
	if err != nil {
		return models.SheetRow{}, fmt.Errorf("%w: append row request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SheetRow{}, err
	}

	var saved models.SheetRow
	if err = json.Unmarshal(resp.Body(), &saved); err != nil {
		return models.SheetRow{}, fmt.Errorf("decode appended row: %w", err)
	}

	return saved, nil
}

// Update implements [SheetStore]. It PUTs the row at its existing reference.
// Used for soft deletes and in-place edits of already confirmed rows.
func (s *httpSheetStore) Update(ctx context.Context, sheetID string, row models.SheetRow) (models.SheetRow, error) {
	if row.Ref == "" {
		return models.SheetRow{}, fmt.Errorf("%w: update requires a row reference", ErrRejected)
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(row).
		Put(fmt.Sprintf("/v1/sheets/%s/rows/%s", sheetID, row.Ref))
	if err != nil {
		return models.SheetRow{}, fmt.Errorf("%w: update row request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.SheetRow{}, err
	}

	var saved models.SheetRow
	if err = json.Unmarshal(resp.Body(), &saved); err != nil {
		return models.SheetRow{}, fmt.Errorf("decode updated row: %w", err)
	}

	return saved, nil
}

// Provision implements [SheetStore]. It creates a new workbook for the user
// and returns the sheet mapping the server should persist.
func (s *httpSheetStore) Provision(ctx context.Context, userID string) (models.User, error) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"user_id": userID}).
		Post("/v1/workbooks")
	if err != nil {
		return models.User{}, fmt.Errorf("%w: provision workbook request: %w", ErrRetryable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	var wb workbookResponse
	if err = json.Unmarshal(resp.Body(), &wb); err != nil {
		return models.User{}, fmt.Errorf("decode workbook response: %w", err)
	}

	return models.User{
		UserID:            userID,
		CategoriesSheetID: wb.CategoriesSheetID,
		ExpensesSheetID:   wb.ExpensesSheetID,
		CashflowsSheetID:  wb.CashflowsSheetID,
	}, nil
}
