package htm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrivialPredictorLast(t *testing.T) {
	tp := NewTrivialPredictor(10, []PredictorMethod{Last, All}, 1)

	tp.Learn([]int{1, 2})
	assert.Equal(t, []int{1, 2}, tp.Predicted(Last))
	assert.Len(t, tp.Predicted(All), 10)

	tp.Learn([]int{1, 2})
	stats := tp.Stats(Last)
	assert.Equal(t, 0.0, stats.CurMissing)
	assert.Equal(t, 0.0, stats.CurExtra)

	stats = tp.Stats(All)
	assert.Equal(t, 8.0, stats.CurExtra)
	assert.Equal(t, 0.0, stats.CurMissing)
}

func TestTrivialPredictorZerothAndLots(t *testing.T) {
	tp := NewTrivialPredictor(20, []PredictorMethod{Zeroth, Lots}, 1)
	tp.AverageDensity = 0.1

	for i := 0; i < 5; i++ {
		tp.Learn([]int{7, 3})
	}
	tp.Learn([]int{5, 3})

	// density settles near 0.1, so n = 2 columns
	assert.Equal(t, []int{3, 7}, tp.Predicted(Zeroth))
	assert.Equal(t, []int{0, 3, 5, 7}, tp.Predicted(Lots))
}

func TestTrivialPredictorRandomIsSeeded(t *testing.T) {
	a := NewTrivialPredictor(50, []PredictorMethod{Random}, 9)
	b := NewTrivialPredictor(50, []PredictorMethod{Random}, 9)
	for i := 0; i < 5; i++ {
		a.Learn([]int{i, i + 1, i + 2})
		b.Learn([]int{i, i + 1, i + 2})
		assert.Equal(t, a.Predicted(Random), b.Predicted(Random))
	}
}

func TestTrivialPredictorReset(t *testing.T) {
	tp := NewTrivialPredictor(10, []PredictorMethod{Last}, 1)
	tp.Learn([]int{4})
	tp.Learn([]int{4})
	require.Equal(t, 2, tp.Stats(Last).NInfersSinceReset)

	tp.Reset()
	assert.Empty(t, tp.Predicted(Last))
	assert.Equal(t, 0, tp.Stats(Last).NInfersSinceReset)
	assert.Equal(t, 2, tp.ColumnCount[4])

	tp.ResetStats()
	assert.Equal(t, 0, tp.Stats(Last).NPredictions)
	assert.Empty(t, tp.Predicted(Zeroth))
}

func TestParsePredictorMethod(t *testing.T) {
	for _, m := range []PredictorMethod{Random, Zeroth, Last, All, Lots} {
		parsed, err := ParsePredictorMethod(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
	_, err := ParsePredictorMethod("oracle")
	assert.True(t, errors.Is(err, ErrInvalidParams))
}
