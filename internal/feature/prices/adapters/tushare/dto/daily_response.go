// Package dto はtushare daily APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// DailyResponse はtushare dailyエンドポイントからのJSONレスポンスを表します。
type DailyResponse struct {
	Code int       `json:"code"`
	Msg  string    `json:"msg"`
	Data DailyData `json:"data"`
}

// DailyData は列名と行の組です。各行の値はFieldsと同じ順序で並びます。
type DailyData struct {
	Fields []string `json:"fields"`
	Items  [][]any  `json:"items"`
}
