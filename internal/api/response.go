// ShopStream RecSys - Product Recommendation Service
// Copyright 2026 ShopStream Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/shopstream/recsys

package api

import "time"

// APIResponse is the standard response envelope used by every endpoint.
//
// Status is "success" or "error"; Error is populated only on error.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response observability fields.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is the structured error payload.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Error codes returned by the API.
const (
	codeValidationError        = "VALIDATION_ERROR"
	codeInvalidJSON            = "INVALID_JSON"
	codeInvalidInteractionType = "INVALID_INTERACTION_TYPE"
	codeInvalidMode            = "INVALID_MODE"
	codeItemNotFound           = "ITEM_NOT_FOUND"
	codeEngineNotReady         = "ENGINE_NOT_READY"
	codeEmptyCatalog           = "EMPTY_CATALOG"
	codeInternalError          = "INTERNAL_ERROR"
)
