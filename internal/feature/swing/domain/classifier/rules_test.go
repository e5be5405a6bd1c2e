package classifier_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swing_backend/internal/feature/swing/domain/classifier"
	"swing_backend/internal/feature/swing/domain/entity"
)

type ruleCase struct {
	name     string
	closes   []float64
	expected []entity.Category
}

func runRuleCases(t *testing.T, th classifier.Thresholds, tests []ruleCase) {
	t.Helper()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res, err := classifier.New(th).Classify(series(tt.closes...))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, categories(res.Records))
		})
	}
}

// TestClassify_StateRules は各状態ルールが最後の点を決める系列で分類結果を検証します。
// ケース名は最後の点を決めるルール名です。
func TestClassify_StateRules(t *testing.T) {
	t.Parallel()

	runRuleCases(t, classifier.DefaultThresholds(), []ruleCase{
		{
			name:   "rally into secondary reaction",
			closes: []float64{100, 100, 98, 104, 88, 98},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalRally, entity.SecondaryReaction,
			},
		},
		{
			name:   "rally back above reaction",
			closes: []float64{100, 130, 96, 102, 130},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalReaction,
			},
		},
		{
			name:   "rally resumes upward trend",
			closes: []float64{100, 120, 116, 106, 130, 106},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.UpwardTrend, entity.NaturalRally, entity.UpwardTrend,
			},
		},
		{
			name:   "rally clears black line",
			closes: []float64{100, 86, 108, 112, 128},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.UpwardTrend,
			},
		},
		{
			name:   "rally continues",
			closes: []float64{100, 84, 106, 126},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally,
			},
		},
		{
			name:   "rally reacts",
			closes: []float64{100, 96, 108, 104},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction,
			},
		},
		{
			name:   "secondary rally continues",
			closes: []float64{100, 94, 120, 118, 102, 112, 112},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.NaturalReaction, entity.SecondaryRally, entity.SecondaryRally,
			},
		},
		{
			name:   "secondary rally joins rally",
			closes: []float64{100, 86, 106, 100, 106, 122},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.SecondaryRally, entity.NaturalRally,
			},
		},
		{
			name:   "reaction into secondary rally",
			closes: []float64{100, 92, 106, 100, 106},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.SecondaryRally,
			},
		},
		{
			name:   "reaction resumes downward trend",
			closes: []float64{100, 84, 112, 108, 80},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.DownwardTrend,
			},
		},
		{
			name:   "reaction resumes upward trend",
			closes: []float64{100, 120, 98, 110},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.UpwardTrend,
			},
		},
		{
			name:   "reaction turns to rally",
			closes: []float64{100, 92, 106, 104, 120},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.NaturalRally,
			},
		},
		{
			name:   "reaction holds red line",
			closes: []float64{100, 118, 116, 124, 120, 126},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.UpwardTrend, entity.NaturalReaction, entity.DownwardTrend,
			},
		},
		{
			name:   "reaction rallies",
			closes: []float64{100, 116, 96, 104},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally,
			},
		},
		{
			name:   "secondary reaction continues",
			closes: []float64{100, 110, 96, 102, 84, 92, 94},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalRally, entity.SecondaryReaction, entity.SecondaryReaction,
			},
		},
		{
			name:   "secondary reaction joins reaction",
			closes: []float64{100, 96, 126, 120, 106, 116, 128},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.NaturalRally, entity.SecondaryReaction, entity.NaturalReaction,
			},
		},
		{
			name:   "upward trend reacts",
			closes: []float64{100, 86, 106, 106, 114, 130},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.UpwardTrend, entity.NaturalReaction,
			},
		},
		{
			name:   "downward trend rallies",
			closes: []float64{100, 92, 116},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally,
			},
		},
	})
}

// TestClassify_RuleOrder は複数のルールが同時に成り立つ点で、先に並んだルールが選ばれることを検証します。
func TestClassify_RuleOrder(t *testing.T) {
	t.Parallel()

	runRuleCases(t, classifier.DefaultThresholds(), []ruleCase{
		{
			name:   "secondary rally continues at the rally close",
			closes: []float64{100, 96, 130, 128, 104, 126, 130},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.NaturalReaction, entity.SecondaryRally, entity.SecondaryRally,
			},
		},
		{
			name:   "reaction turns to rally ahead of red line",
			closes: []float64{100, 114, 110, 80, 90, 96, 102},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalReaction, entity.NaturalRally, entity.NaturalReaction, entity.NaturalRally,
			},
		},
		{
			name:   "reaction into secondary rally ahead of downward trend",
			closes: []float64{100, 80, 106, 126, 130, 82, 92, 98},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.UpwardTrend, entity.UpwardTrend, entity.NaturalReaction, entity.SecondaryRally,
			},
		},
		{
			name:   "reaction into secondary rally ahead of upward trend",
			closes: []float64{100, 108, 108, 116, 130, 120, 130},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.UpwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.SecondaryRally,
			},
		},
		{
			name:   "reaction resumes downward trend ahead of upward trend",
			closes: []float64{100, 86, 106, 108, 114, 82, 104, 94},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.UpwardTrend, entity.UpwardTrend, entity.NaturalReaction, entity.DownwardTrend,
			},
		},
		{
			name:   "reaction resumes upward trend ahead of rally",
			closes: []float64{100, 120, 96, 104, 108, 114},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalReaction, entity.UpwardTrend,
			},
		},
		{
			name:   "reaction holds red line ahead of rallies",
			closes: []float64{100, 100, 110, 118, 116, 124},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.UpwardTrend, entity.NaturalReaction, entity.DownwardTrend,
			},
		},
		{
			name:   "secondary reaction continues at the reaction close",
			closes: []float64{100, 82, 130, 128, 110, 128, 88, 128},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction, entity.NaturalRally, entity.SecondaryReaction, entity.SecondaryReaction, entity.SecondaryReaction,
			},
		},
	})
}

// TestClassify_ThresholdBoundaries は閾値ちょうどの変化率でルールが成り立つことを検証します。
// (c/ref-1)*100 が閾値と一致するよう、二進で正確に表せる閾値と終値を使います。
func TestClassify_ThresholdBoundaries(t *testing.T) {
	t.Parallel()

	th := classifier.Thresholds{SwingUp: 6.25, SwingDown: -6.25, ResumeUp: 3.125, ResumeDown: -3.125}

	runRuleCases(t, th, []ruleCase{
		{
			name:   "swing up at the threshold",
			closes: []float64{16, 15, 17},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally,
			},
		},
		{
			name:   "swing up just below",
			closes: []float64{16, 15, 16.99},
			expected: []entity.Category{
				entity.DownwardTrend, entity.DownwardTrend,
			},
		},
		{
			name:   "swing down at the threshold",
			closes: []float64{16, 15, 17, 15.9375},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalReaction,
			},
		},
		{
			name:   "swing down just below",
			closes: []float64{16, 15, 17, 15.9},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally,
			},
		},
		{
			name:   "resume up at the threshold",
			closes: []float64{64, 52, 72, 80, 82.5},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.UpwardTrend,
			},
		},
		{
			name:   "resume up just below",
			closes: []float64{64, 52, 72, 80, 82.4375},
			expected: []entity.Category{
				entity.DownwardTrend, entity.NaturalRally, entity.NaturalRally, entity.NaturalRally,
			},
		},
		{
			name:   "resume down at the threshold",
			closes: []float64{64, 72, 60, 64, 60, 62},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalReaction, entity.DownwardTrend,
			},
		},
		{
			name:   "resume down just below",
			closes: []float64{64, 72, 60, 64, 60, 61.9375},
			expected: []entity.Category{
				entity.UpwardTrend, entity.NaturalReaction, entity.NaturalRally, entity.NaturalReaction, entity.NaturalRally,
			},
		},
	})
}

func TestClassify_DefaultSwingUpBoundary(t *testing.T) {
	t.Parallel()

	// 106/100 は +6% で反発、105.99 は届かない
	res, err := classifier.Classify(series(100, 94, 106), classifier.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{entity.DownwardTrend, entity.NaturalRally}, categories(res.Records))

	res, err = classifier.Classify(series(100, 94, 105.99), classifier.DefaultThresholds())
	require.NoError(t, err)
	assert.Equal(t, []entity.Category{entity.DownwardTrend, entity.DownwardTrend}, categories(res.Records))
}
