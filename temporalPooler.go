package htm

import (
	"math/rand"
)

/*
 TemporalPooler decides which cells of the active columns fire, learns the
transitions between consecutive inputs on distal segments and computes the
predictive state for the next tick.
*/
type TemporalPooler struct {
	params  *RegionParams
	columns []*Column
	rnd     *rand.Rand

	lrnIterationIdx int
	iterationIdx    int

	//ephemeral state
	segmentUpdates []*segmentUpdate
	prevLearning   []Source
}

func NewTemporalPooler(columns []*Column, p *RegionParams, rnd *rand.Rand) *TemporalPooler {
	tp := new(TemporalPooler)
	tp.params = p
	tp.columns = columns
	tp.rnd = rnd
	return tp
}

/*
 Runs one tick of the temporal pooler for the given active columns. Expects
every cell to have been advanced for this tick so the was* flags hold the
previous tick's state.
*/
func (tp *TemporalPooler) Compute(activeColumns []int, learn bool) {
	tp.iterationIdx++
	if learn {
		tp.lrnIterationIdx++
	}

	tp.prevLearning = tp.learningCellsLast()

	tp.inferPhase1(activeColumns, learn)

	if learn {
		tp.processSegmentUpdates()
	}

	tp.inferPhase2()

	// Phase 3: wrong predictions are punished once this tick's predictions
	// are made
	if learn {
		tp.punishIncorrectPredictions()
	}
}

//Cells that were learning on the previous tick, column then cell order
func (tp *TemporalPooler) learningCellsLast() []Source {
	var result []Source
	for _, col := range tp.columns {
		for _, cell := range col.cells {
			if cell.wasLearning {
				result = append(result, cell)
			}
		}
	}
	return result
}

/*
 Phase 1 turns on cells in each active column. Cells that were predicted on
the previous tick fire; when none was predicted the whole column bursts and
one winner cell is chosen to learn the transition.

returns the number of active columns that were correctly predicted
*/
func (tp *TemporalPooler) inferPhase1(activeColumns []int, learn bool) int {
	numPredictedColumns := 0

	for _, c := range activeColumns {
		col := tp.columns[c]

		predicted := false
		for _, cell := range col.cells {
			if cell.wasPredictive {
				predicted = true
				cell.isActive = true
				if tp.params.LearnOnPredicted {
					tp.learnOnPredictedCell(cell, learn)
				}
			}
		}

		if predicted {
			numPredictedColumns++
			continue
		}

		// whole column bursts
		col.isBursting = true
		for _, cell := range col.cells {
			cell.isActive = true
		}

		winner, seg := col.bestMatchingCell()
		if winner == nil {
			winner = col.leastUsedCell()
		}
		winner.isLearning = true

		if learn {
			update := &segmentUpdate{columnIdx: c, cellIdx: winner.index, cell: winner, segment: seg}
			if seg == nil {
				update.newSources = tp.prevLearning
			}
			tp.addToSegmentUpdates(update)
		}
	}

	return numPredictedColumns
}

func (tp *TemporalPooler) learnOnPredictedCell(cell *Cell, learn bool) {
	cell.isLearning = true
	if !learn {
		return
	}
	if seg := cell.activeSegmentFromPrev(); seg != nil {
		tp.addToSegmentUpdates(&segmentUpdate{columnIdx: cell.column, cellIdx: cell.index,
			cell: cell, segment: seg})
	}
}

/*
 Weakens the segments that made a prediction for a column that did not
become active. Only the synapses that contributed to the prediction are
decremented, the others are left alone.
*/
func (tp *TemporalPooler) punishIncorrectPredictions() {
	var wrong []*Segment
	for _, col := range tp.columns {
		if col.isActive {
			continue
		}
		for _, cell := range col.cells {
			if !cell.wasPredictive {
				continue
			}
			for _, seg := range cell.segments {
				if seg.IsActiveFromPrev() {
					wrong = append(wrong, seg)
				}
			}
		}
	}
	for _, seg := range wrong {
		seg.weakenPrevActive()
	}
	if len(wrong) > 0 {
		tp.logf(4, "punished %v segments", len(wrong))
	}
}

/*
 Phase 2 computes the predicted state. Every cell with a segment whose
connected synapses see at least the activation threshold of currently
active cells becomes predictive for the next tick.

returns the number of predictive cells
*/
func (tp *TemporalPooler) inferPhase2() int {
	numPredictive := 0
	for _, col := range tp.columns {
		for _, cell := range col.cells {
			for _, seg := range cell.segments {
				if seg.IsActive() {
					cell.isPredictive = true
					numPredictive++
					break
				}
			}
		}
	}
	return numPredictive
}

func (tp *TemporalPooler) logf(level int, format string, args ...interface{}) {
	if tp.params.Verbosity >= level && tp.params.Logger != nil {
		tp.params.Logger.Printf(format, args...)
	}
}

//Drops queued work, used on sequence reset
func (tp *TemporalPooler) reset() {
	tp.segmentUpdates = tp.segmentUpdates[:0]
	tp.prevLearning = nil
}
