//
// Code related to temporal pooler printing
//

package htm

import (
	"bytes"
	"fmt"

	"github.com/gonum/floats"
)

type SegmentStats struct {
	NumSegments          int
	NumSynapses          int
	NumConnectedSynapses int
	NumActiveSegments    int
	NumActiveSynapses    int
	MeanPermanence       float64
	//Number of cells with a given segment count
	DistNumSegsPerCell map[int]int
	//Number of segments with a given synapse count
	DistSegSizes map[int]int
	//Number of synapses per permanence decile, 0-9 (1.0 falls in 10)
	DistPermValues map[int]int
}

/*
Returns information about the distribution of segments, synapses and
permanence values in the region's cells. If requested, also returns
information regarding the number of currently active segments and synapses.
*/
func (r *Region) CalcSegmentStats(collectActiveData bool) SegmentStats {
	result := SegmentStats{}
	result.DistNumSegsPerCell = make(map[int]int)
	result.DistSegSizes = make(map[int]int)
	result.DistPermValues = make(map[int]int)

	var perms []float64

	for _, col := range r.columns {
		for _, cell := range col.cells {
			result.NumSegments += len(cell.segments)
			result.DistNumSegsPerCell[len(cell.segments)]++

			for _, seg := range cell.segments {
				result.NumSynapses += len(seg.synapses)
				result.DistSegSizes[len(seg.synapses)]++

				for i := range seg.synapses {
					syn := &seg.synapses[i]
					perms = append(perms, syn.permanence)
					result.DistPermValues[int(syn.permanence*10)]++
					if syn.Connected() {
						result.NumConnectedSynapses++
					}
					if collectActiveData && syn.IsActive() {
						result.NumActiveSynapses++
					}
				}

				if collectActiveData && seg.IsActive() {
					result.NumActiveSegments++
				}
			}
		}
	}

	if len(perms) > 0 {
		result.MeanPermanence = floats.Sum(perms) / float64(len(perms))
	}

	return result
}

/*
	Returns a cell's segments, one per line. Segments active on the current
	tick are starred.
*/
func (r *Region) SprintCell(c int, i int, onlyActiveSegments bool) string {
	var buffer bytes.Buffer
	cell := r.columns[c].cells[i]

	buffer.WriteString(fmt.Sprintf("Column: %v Cell: %v - %v segment(s) active=%v predictive=%v learning=%v\n",
		c, i, len(cell.segments), cell.isActive, cell.isPredictive, cell.isLearning))
	for idx, seg := range cell.segments {
		isActive := seg.IsActive()
		if !onlyActiveSegments || isActive {
			str := " "
			if isActive {
				str = "*"
			}
			buffer.WriteString(fmt.Sprintf("%vSeg: %v %v\n", str, idx, seg.ToString()))
		}
	}

	return buffer.String()
}

/*
	Prints a cells information
*/
func (r *Region) PrintCell(c int, i int, onlyActiveSegments bool) {
	r.logger.Print(r.SprintCell(c, i, onlyActiveSegments))
}

/*
 Print all cell information
*/
func (r *Region) PrintCells(predictedOnly bool) {
	if predictedOnly {
		r.logger.Println("--- PREDICTED CELLS ---")
	} else {
		r.logger.Println("--- ALL CELLS ---")
	}

	r.logger.Println("Activation threshold:", ActivationThreshold)
	r.logger.Println("learning threshold:", LearningThreshold)
	r.logger.Println("connected perm:", ConnectedPermanence)

	for _, col := range r.columns {
		for _, cell := range col.cells {
			if len(cell.segments) == 0 {
				continue
			}
			if !predictedOnly || cell.isPredictive {
				r.PrintCell(col.index, cell.index, predictedOnly)
			}
		}
	}
}

/*
 Called at the end of each compute to print out various diagnostic
information based on the current verbosity level.
*/
func (r *Region) printComputeEnd() {
	if r.params.Verbosity < 1 {
		return
	}

	if r.params.Verbosity < 3 {
		r.logger.Printf("tick %v learn=%v active=%v bursting=%v predicted=%v",
			r.iteration, r.learn, r.stats.CurActiveCols, r.stats.CurBurstingCols,
			len(r.PredictedColumnIndices()))
		return
	}

	r.logger.Println("----- computeEnd summary: ")
	r.logger.Println("iteration:", r.iteration, "learn:", r.learn)
	r.logger.Println("numBurstingCols:", r.stats.CurBurstingCols)
	r.logger.Println("curExtra:", r.stats.CurExtra, "curMissing:", r.stats.CurMissing)

	stats := r.CalcSegmentStats(true)
	r.logger.Println("numSegments", stats.NumSegments, "numSynapses", stats.NumSynapses,
		"activeSegments", stats.NumActiveSegments)

	r.logger.Printf("----- active columns (%v) ------\n", len(r.activeColumns))
	r.logger.Println(r.activeColumns)

	active := r.ActiveCellIndices()
	r.logger.Printf("----- active cells (%v on) ------\n", len(active))
	r.logger.Println(active)

	predictive := r.PredictiveCellIndices()
	r.logger.Printf("----- predictive cells (%v on) -----\n", len(predictive))
	r.logger.Println(predictive)

	learning := r.LearningCellIndices()
	r.logger.Printf("----- learning cells (%v on) ------\n", len(learning))
	r.logger.Println(learning)

	if r.params.Verbosity == 4 {
		r.logger.Println("Cells, predicted segments only:")
		r.PrintCells(true)
	} else if r.params.Verbosity >= 5 {
		r.logger.Println("Cells, all segments:")
		r.PrintCells(false)
	}
}
