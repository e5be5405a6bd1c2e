// Package tushare はtushare daily APIのレスポンス形式を日次終値に変換します。
package tushare

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"swing_backend/internal/feature/prices/adapters/tushare/dto"
	"swing_backend/internal/feature/prices/domain"
	"swing_backend/internal/feature/prices/domain/entity"
)

const (
	fieldSymbol    = "ts_code"
	fieldTradeDate = "trade_date"
	fieldClose     = "close"
)

// DefaultFields はfieldsが省略された場合の列順です。
var DefaultFields = []string{fieldTradeDate, fieldClose}

// DecodeDaily はdailyレスポンスの本文を読み込み、行の順序のまま価格に変換します。
// codeが0以外の場合はmsgを含むエラーを返します。
func DecodeDaily(r io.Reader) ([]entity.DailyPrice, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var body dto.DailyResponse
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: decode daily response: %v", domain.ErrMalformedRow, err)
	}
	if body.Code != 0 {
		return nil, fmt.Errorf("tushare: code %d: %s", body.Code, body.Msg)
	}
	return ParseItems(body.Data.Fields, body.Data.Items)
}

// ReadFile はpathに保存されたdailyレスポンスをDecodeDailyで読み込みます。
func ReadFile(path string) ([]entity.DailyPrice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeDaily(f)
}

// ParseItems は列名fieldsに従ってitemsの各行を価格に変換します。
// ts_code列があればSymbolに設定します。
func ParseItems(fields []string, items [][]any) ([]entity.DailyPrice, error) {
	if len(fields) == 0 {
		fields = DefaultFields
	}

	// 列位置を特定
	symCol, dateCol, closeCol := -1, -1, -1
	for i, f := range fields {
		switch strings.ToLower(strings.TrimSpace(f)) {
		case fieldSymbol:
			symCol = i
		case fieldTradeDate:
			dateCol = i
		case fieldClose:
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("%w: fields %v lack %s or %s", domain.ErrMalformedRow, fields, fieldTradeDate, fieldClose)
	}

	prices := make([]entity.DailyPrice, 0, len(items))
	for i, row := range items {
		if len(row) != len(fields) {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", domain.ErrMalformedRow, i, len(row), len(fields))
		}

		// 取引日をパース
		day, err := parseTradeDate(row[dateCol])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrMalformedRow, i, err)
		}

		// 終値をパース
		c, err := parseClose(row[closeCol])
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", domain.ErrMalformedRow, i, err)
		}

		p := entity.DailyPrice{TradeDate: day, Close: c}
		if symCol >= 0 {
			if s, ok := row[symCol].(string); ok {
				p.Symbol = s
			}
		}
		prices = append(prices, p)
	}
	return prices, nil
}

// parseTradeDate は文字列または数値（20240102など）の取引日を解釈します。
func parseTradeDate(v any) (time.Time, error) {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case json.Number:
		s = x.String()
	case float64:
		s = strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return time.Time{}, fmt.Errorf("trade_date %v has type %T", v, v)
	}
	return entity.ParseTradeDate(s)
}

func parseClose(v any) (float64, error) {
	var (
		c   float64
		err error
	)
	switch x := v.(type) {
	case json.Number:
		c, err = x.Float64()
	case float64:
		c = x
	case string:
		c, err = strconv.ParseFloat(strings.TrimSpace(x), 64)
	default:
		return 0, fmt.Errorf("close %v has type %T", v, v)
	}
	if err != nil {
		return 0, fmt.Errorf("parse close %v: %w", v, err)
	}
	if math.IsNaN(c) || math.IsInf(c, 0) {
		return 0, fmt.Errorf("close %v is not finite", v)
	}
	return c, nil
}
