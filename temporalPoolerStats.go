//
// Code related to temporal pooler stats
//

package htm

import (
	"fmt"

	"github.com/cznic/mathutil"
	"github.com/htm-community/htmseq/utils"
)

/*
 Prediction quality counters. Cur* fields describe the last tick, the
remaining fields accumulate over every tick past the burn-in since the last
stats reset.
*/
type TpStats struct {
	BurnIn int

	NInfersSinceReset int
	NPredictions      int
	PctExtraTotal     float64
	PctMissingTotal   float64
	TotalMissing      float64
	TotalExtra        float64
	TotalActiveCols   int
	TotalBurstingCols int

	CurMissing       float64
	CurExtra         float64
	CurActiveCols    int
	CurPredictedCols int
	CurBurstingCols  int
}

func (s *TpStats) ToString() string {
	result := "Stats: \n"

	result += fmt.Sprintf("nInferSinceReset %v \n", s.NInfersSinceReset)
	result += fmt.Sprintf("nPredictions %v \n", s.NPredictions)
	result += fmt.Sprintf("PctExtraTotal %v \n", s.PctExtraTotal)
	result += fmt.Sprintf("PctMissingTotal %v \n", s.PctMissingTotal)
	result += fmt.Sprintf("TotalMissing %v \n", s.TotalMissing)
	result += fmt.Sprintf("TotalExtra %v \n", s.TotalExtra)
	result += fmt.Sprintf("TotalBurstingCols %v/%v \n", s.TotalBurstingCols, s.TotalActiveCols)
	result += fmt.Sprintf("CurMissing %v \n", s.CurMissing)
	result += fmt.Sprintf("CurExtra %v \n", s.CurExtra)
	result += fmt.Sprintf("CurPredictedCols %v \n", s.CurPredictedCols)
	result += fmt.Sprintf("CurBurstingCols %v/%v \n", s.CurBurstingCols, s.CurActiveCols)

	return result
}

//Fraction of last tick's active columns that burst
func (s *TpStats) BurstingFraction() float64 {
	if s.CurActiveCols == 0 {
		return 0
	}
	return float64(s.CurBurstingCols) / float64(s.CurActiveCols)
}

//Fraction of active columns that burst over every tick past the burn-in
func (s *TpStats) AvgBurstingFraction() float64 {
	if s.TotalActiveCols == 0 {
		return 0
	}
	return float64(s.TotalBurstingCols) / float64(s.TotalActiveCols)
}

//Average percentage of active columns that were not predicted
func (s *TpStats) AvgPctMissing() float64 {
	return s.PctMissingTotal / float64(mathutil.Max(1, s.NPredictions))
}

//Average number of predicted columns that did not become active, as a
//percentage of the active columns
func (s *TpStats) AvgPctExtra() float64 {
	return s.PctExtraTotal / float64(mathutil.Max(1, s.NPredictions))
}

/*
 Compares the columns predicted on the last tick against the columns that
became active. Extras were predicted but did not fire, missing fired without
being predicted.
*/
func checkPrediction(activeColumns []int, predictedColumns []int) (totalExtras int, totalMissing int) {
	totalExtras = len(utils.Complement(predictedColumns, activeColumns))
	totalMissing = len(utils.Complement(activeColumns, predictedColumns))
	return
}

/*
 Called at the end of each compute to update the stats.

param activeColumns columns active on this tick
param predictedColumns columns predicted on the last tick
param burstingCols number of active columns that burst
*/
func (s *TpStats) updateStatsInferEnd(activeColumns []int, predictedColumns []int, burstingCols int) {
	s.NInfersSinceReset++

	numExtra, numMissing := checkPrediction(activeColumns, predictedColumns)

	// Store the stats that don't depend on burn-in
	s.CurMissing = float64(numMissing)
	s.CurExtra = float64(numExtra)
	s.CurActiveCols = len(activeColumns)
	s.CurPredictedCols = len(predictedColumns)
	s.CurBurstingCols = burstingCols

	// 0: try to predict the first element of each sequence and all subsequent
	// 1: try to predict the second element of each sequence and all subsequent
	// etc.
	if s.NInfersSinceReset <= s.BurnIn {
		return
	}

	s.NPredictions++
	numExpected := mathutil.Max(1, len(activeColumns))

	s.TotalMissing += float64(numMissing)
	s.TotalExtra += float64(numExtra)
	s.PctExtraTotal += 100.0 * float64(numExtra) / float64(numExpected)
	s.PctMissingTotal += 100.0 * float64(numMissing) / float64(numExpected)
	s.TotalActiveCols += len(activeColumns)
	s.TotalBurstingCols += burstingCols
}

//Clears per sequence state, totals are kept
func (s *TpStats) reset() {
	s.NInfersSinceReset = 0
	s.CurMissing = 0
	s.CurExtra = 0
	s.CurActiveCols = 0
	s.CurPredictedCols = 0
	s.CurBurstingCols = 0
}

//Clears everything but the burn-in
func (s *TpStats) resetStats() {
	*s = TpStats{BurnIn: s.BurnIn}
}
