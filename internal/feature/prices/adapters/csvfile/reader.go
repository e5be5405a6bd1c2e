// Package csvfile reads daily closes from CSV files with a trade_date,close header.
package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"swing_backend/internal/feature/prices/domain"
	"swing_backend/internal/feature/prices/domain/entity"
)

// Read parses CSV rows into prices in file order. Extra columns are ignored.
func Read(r io.Reader) ([]entity.DailyPrice, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty csv", domain.ErrMalformedRow)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", domain.ErrMalformedRow, err)
	}

	dateCol, closeCol := -1, -1
	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\uFEFF"))) {
		case "trade_date", "date":
			dateCol = i
		case "close":
			closeCol = i
		}
	}
	if dateCol < 0 || closeCol < 0 {
		return nil, fmt.Errorf("%w: header %v lacks trade_date or close", domain.ErrMalformedRow, header)
	}

	var prices []entity.DailyPrice
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRow, line, err)
		}
		if max(dateCol, closeCol) >= len(rec) {
			return nil, fmt.Errorf("%w: line %d has %d fields", domain.ErrMalformedRow, line, len(rec))
		}

		d, err := entity.ParseTradeDate(strings.TrimSpace(rec[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", domain.ErrMalformedRow, line, err)
		}
		c, err := strconv.ParseFloat(strings.TrimSpace(rec[closeCol]), 64)
		if err != nil || math.IsNaN(c) || math.IsInf(c, 0) {
			return nil, fmt.Errorf("%w: line %d: close %q", domain.ErrMalformedRow, line, rec[closeCol])
		}
		prices = append(prices, entity.DailyPrice{TradeDate: d, Close: c})
	}
	return prices, nil
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]entity.DailyPrice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}
