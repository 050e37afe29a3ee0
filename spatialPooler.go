package htm

import (
	"log"
	"sort"

	"github.com/cznic/mathutil"
	"github.com/gonum/floats"
)

/*
 SpatialPooler picks a fixed number of winning columns per input and keeps
column usage roughly uniform over time through boosting. It works on the
region's columns in place.
*/
type SpatialPooler struct {
	NumColumns             int
	NumActiveColumns       int
	StimulusThreshold      int
	DutyCyclePeriod        int
	MinPctActiveDutyCycles float64
	UpdatePeriod           int
	MaxBoost               float64
	BoostStep              float64
	OveractiveFactor       float64
	SpVerbosity            int
	Logger                 *log.Logger

	// Internal state
	IterationNum      int
	IterationLearnNum int

	columns            []*Column
	minActiveDutyCycle float64
}

func NewSpatialPooler(columns []*Column, p *RegionParams) *SpatialPooler {
	sp := new(SpatialPooler)
	sp.columns = columns
	sp.NumColumns = len(columns)
	sp.NumActiveColumns = numActiveColumns(p, len(columns))
	sp.StimulusThreshold = p.StimulusThreshold
	sp.DutyCyclePeriod = p.DutyCyclePeriod
	sp.MinPctActiveDutyCycles = p.MinPctActiveDutyCycles
	sp.UpdatePeriod = p.UpdatePeriod
	sp.MaxBoost = p.MaxBoost
	sp.BoostStep = p.BoostStep
	sp.OveractiveFactor = p.OveractiveFactor
	sp.SpVerbosity = p.Verbosity
	sp.Logger = p.Logger
	return sp
}

//Number of winners per tick, never less than one nor more than the column count
func numActiveColumns(p *RegionParams, numColumns int) int {
	if p.NumActiveColumns > 0 {
		return mathutil.Min(p.NumActiveColumns, numColumns)
	}
	k := int(p.LocalAreaDensity*float64(numColumns) + 0.5)
	return mathutil.Min(numColumns, mathutil.Max(1, k))
}

//Main func, returns active column indices in ascending order.
//Expects every column to have been advanced for this tick.
func (sp *SpatialPooler) Compute(learn bool) []int {
	sp.updateBookeepingVars(learn)
	sp.calculateOverlap()
	activeColumns := sp.inhibitColumns()

	if learn {
		sp.adaptSynapses(activeColumns)
		sp.updateDutyCycles()
		if sp.isUpdateRound() {
			sp.updateMinDutyCyclesGlobal()
			boosted := sp.updateBoostFactors()
			if sp.SpVerbosity >= 3 && sp.Logger != nil {
				sp.Logger.Printf("boost update at learn iteration %v: min duty cycle %.4f, %v columns boosted",
					sp.IterationLearnNum, sp.minActiveDutyCycle, boosted)
			}
		}
	}

	return activeColumns
}

func (sp *SpatialPooler) updateBookeepingVars(learn bool) {
	sp.IterationNum++
	if learn {
		sp.IterationLearnNum++
	}
}

func (sp *SpatialPooler) calculateOverlap() {
	for _, col := range sp.columns {
		col.computeOverlap(sp.StimulusThreshold)
	}
}

/*
 Ranks columns by boosted overlap, highest first, ties by lowest column
index, and activates exactly NumActiveColumns of them. When fewer columns
than that have a non-zero overlap the remaining slots go to the lowest
index zero-overlap columns, which the stable ordering yields directly.
*/
func (sp *SpatialPooler) inhibitColumns() []int {
	order := make([]int, len(sp.columns))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return sp.columns[order[a]].overlap > sp.columns[order[b]].overlap
	})

	winners := order[:sp.NumActiveColumns]
	for _, idx := range winners {
		sp.columns[idx].isActive = true
	}

	result := make([]int, len(winners))
	copy(result, winners)
	sort.Ints(result)
	return result
}

func (sp *SpatialPooler) adaptSynapses(activeColumns []int) {
	for _, idx := range activeColumns {
		sp.columns[idx].adaptProximal()
	}
}

//Moving average of column activity over min(DutyCyclePeriod, learn iterations)
func (sp *SpatialPooler) updateDutyCycles() {
	period := float64(mathutil.Max(1, mathutil.Min(sp.DutyCyclePeriod, sp.IterationLearnNum)))
	for _, col := range sp.columns {
		active := 0.0
		if col.isActive {
			active = 1.0
		}
		col.activeDutyCycle = (col.activeDutyCycle*(period-1) + active) / period
	}
}

func (sp *SpatialPooler) isUpdateRound() bool {
	return sp.IterationLearnNum%sp.UpdatePeriod == 0
}

// Sets the minimum duty cycle to a percent of the highest duty cycle in the
// region. A column whose duty cycle stays below it is a boosting candidate.
func (sp *SpatialPooler) updateMinDutyCyclesGlobal() {
	sp.minActiveDutyCycle = sp.MinPctActiveDutyCycles * floats.Max(sp.ActiveDutyCycles())
}

/*
 Raises the boost of columns that lost this tick without clearing the
stimulus threshold and whose duty cycle is below the minimum, and lowers
the boost of winners that are active far more often than the target
density. Losers that cleared the threshold keep their boost.

returns the number of columns whose boost is above 1 afterwards
*/
func (sp *SpatialPooler) updateBoostFactors() int {
	targetDensity := float64(sp.NumActiveColumns) / float64(sp.NumColumns)
	boosted := 0
	for _, col := range sp.columns {
		switch {
		case col.isActive:
			if col.activeDutyCycle > sp.OveractiveFactor*targetDensity {
				col.boost -= sp.BoostStep
				if col.boost < 1.0 {
					col.boost = 1.0
				}
			}
		case col.rawOverlap < sp.StimulusThreshold && col.activeDutyCycle < sp.minActiveDutyCycle:
			col.boost += sp.BoostStep
			if col.boost > sp.MaxBoost {
				col.boost = sp.MaxBoost
			}
		}
		if col.boost > 1.0 {
			boosted++
		}
	}
	return boosted
}

//Current duty cycle of every column, by column index
func (sp *SpatialPooler) ActiveDutyCycles() []float64 {
	result := make([]float64, len(sp.columns))
	for i, col := range sp.columns {
		result[i] = col.activeDutyCycle
	}
	return result
}

//Boost factor of every column, by column index
func (sp *SpatialPooler) BoostFactors() []float64 {
	result := make([]float64, len(sp.columns))
	for i, col := range sp.columns {
		result[i] = col.boost
	}
	return result
}

func (sp *SpatialPooler) MinActiveDutyCycle() float64 {
	return sp.minActiveDutyCycle
}
