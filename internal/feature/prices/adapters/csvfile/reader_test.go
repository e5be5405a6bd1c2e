package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"swing_backend/internal/feature/prices/domain"
	"swing_backend/internal/feature/prices/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead(t *testing.T) {
	t.Parallel()

	d1 := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		in      string
		want    []entity.DailyPrice
		wantErr bool
	}{
		{
			name: "success: trade_date,close",
			in:   "trade_date,close\n20240102,10.5\n2024-01-03, 10.75\n",
			want: []entity.DailyPrice{{TradeDate: d1, Close: 10.5}, {TradeDate: d2, Close: 10.75}},
		},
		{
			name: "success: extra columns and date alias",
			in:   "\uFEFFDate,Open,Close\n2024-01-02,10,10.5\n",
			want: []entity.DailyPrice{{TradeDate: d1, Close: 10.5}},
		},
		{
			name: "success: header only",
			in:   "trade_date,close\n",
			want: nil,
		},
		{name: "error: empty input", in: "", wantErr: true},
		{name: "error: missing close column", in: "trade_date,open\n20240102,1\n", wantErr: true},
		{name: "error: bad date", in: "trade_date,close\n02/01/2024,1\n", wantErr: true},
		{name: "error: bad close", in: "trade_date,close\n20240102,abc\n", wantErr: true},
		{name: "error: NaN close", in: "trade_date,close\n20240102,NaN\n", wantErr: true},
		{name: "error: short row", in: "trade_date,close\n20240102\n", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Read(strings.NewReader(tt.in))
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrMalformedRow)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "prices.csv")
	require.NoError(t, os.WriteFile(path, []byte("trade_date,close\n20240102,10.5\n"), 0o600))

	got, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 10.5, got[0].Close)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}
