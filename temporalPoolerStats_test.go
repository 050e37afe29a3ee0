package htm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckPrediction(t *testing.T) {
	extra, missing := checkPrediction([]int{1, 2, 3, 4}, []int{3, 4, 5})
	assert.Equal(t, 1, extra)
	assert.Equal(t, 2, missing)

	extra, missing = checkPrediction([]int{1, 2}, nil)
	assert.Equal(t, 0, extra)
	assert.Equal(t, 2, missing)
}

func TestUpdateStatsInferEnd(t *testing.T) {
	s := TpStats{BurnIn: 1}

	s.updateStatsInferEnd([]int{1, 2, 3, 4}, nil, 4)
	assert.Equal(t, 1, s.NInfersSinceReset)
	assert.Equal(t, 0, s.NPredictions)
	assert.Equal(t, 1.0, s.BurstingFraction())
	assert.Equal(t, 0.0, s.AvgBurstingFraction())

	s.updateStatsInferEnd([]int{1, 2, 3, 4}, []int{1, 2, 9}, 2)
	assert.Equal(t, 1, s.NPredictions)
	assert.Equal(t, 1.0, s.CurExtra)
	assert.Equal(t, 2.0, s.CurMissing)
	assert.Equal(t, 0.5, s.BurstingFraction())
	assert.Equal(t, 0.5, s.AvgBurstingFraction())
	assert.Equal(t, 50.0, s.AvgPctMissing())
	assert.Equal(t, 25.0, s.AvgPctExtra())

	s.reset()
	assert.Equal(t, 0, s.NInfersSinceReset)
	assert.Equal(t, 1, s.NPredictions)
	assert.Equal(t, 0.0, s.BurstingFraction())

	s.resetStats()
	assert.Equal(t, TpStats{BurnIn: 1}, s)
	assert.Contains(t, s.ToString(), "nPredictions 0")
}
