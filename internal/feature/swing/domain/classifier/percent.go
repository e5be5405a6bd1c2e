package classifier

import (
	"fmt"
	"math"

	"swing_backend/internal/feature/swing/domain"
)

// percent returns the change of price c relative to ref, in percent.
func percent(c, ref float64) (float64, error) {
	if ref <= 0 || math.IsNaN(ref) || math.IsInf(ref, 0) {
		return 0, fmt.Errorf("%w: reference %v", domain.ErrDivision, ref)
	}
	return (c/ref - 1) * 100, nil
}
