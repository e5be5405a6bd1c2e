// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

import openapi_types "github.com/oapi-codegen/runtime/types"

// SymbolItem represents a stored symbol in the API response.
type SymbolItem struct {
	Code      string             `json:"code"`
	FirstDate openapi_types.Date `json:"first_date"`
	LastDate  openapi_types.Date `json:"last_date"`
	Days      int                `json:"days"`
}
