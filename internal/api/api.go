// Package api はHTTP APIのリクエスト・レスポンス型を定義します。
package api

import openapi_types "github.com/oapi-codegen/runtime/types"

// ErrorResponse はエラー時のレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// SwingRow はスイング表の1行です。値が入るのは分類された列のみで、他はnullになります。
type SwingRow struct {
	Date              openapi_types.Date `json:"date"`
	SecondaryRally    *float64           `json:"secondary_rally"`
	NaturalRally      *float64           `json:"natural_rally"`
	UpwardTrend       *float64           `json:"upward_trend"`
	DownwardTrend     *float64           `json:"downward_trend"`
	NaturalReaction   *float64           `json:"natural_reaction"`
	SecondaryReaction *float64           `json:"secondary_reaction"`
	// Line は反転線（"red" / "black"）。引かれていない場合は省略されます。
	Line string `json:"line,omitempty"`
}

// ClassifyRequest は任意の終値系列を分類するリクエストです。
// Items はtushare dailyのitemsと同じ形式（既定では [trade_date, close]）です。
type ClassifyRequest struct {
	Fields []string `json:"fields,omitempty"`
	Items  [][]any  `json:"items" binding:"required"`
}

// MarkerResponse はカテゴリごとの最新の反転線です。
type MarkerResponse struct {
	Category string   `json:"category"`
	Red      *float64 `json:"red"`
	Black    *float64 `json:"black"`
}
