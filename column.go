package htm

import (
	"math/rand"
)

/*
 Column owns a fixed set of cells and a pool of proximal synapses into the
region's input space. Overlap and activity are recomputed every tick; boost
and the duty cycles persist.
*/
type Column struct {
	index int
	x     int
	y     int
	cells []*Cell

	proximal  []Synapse
	potential []int //input index of each proximal synapse

	overlap    float64
	rawOverlap int
	isActive   bool
	isBursting bool

	boost           float64
	activeDutyCycle float64
}

func newColumn(index, x, y int) *Column {
	col := new(Column)
	col.index = index
	col.x = x
	col.y = y
	col.boost = 1.0
	col.cells = make([]*Cell, CellsPerColumn)
	for i := range col.cells {
		col.cells[i] = newCell(index, i)
	}
	return col
}

/*
 Creates the proximal synapse pool. Each input bit is sampled with probability
potentialPct; a sampled bit gets a synapse starting just above the connected
threshold with probability ProximalConnectedPct, otherwise well below it.
Input bits are visited in ascending order so the pool is ordered by input
index.
*/
func (c *Column) connectToInput(input *InputSpace, potentialPct float64, rnd *rand.Rand) {
	c.proximal = c.proximal[:0]
	c.potential = c.potential[:0]
	for i := 0; i < input.Size(); i++ {
		if rnd.Float64() >= potentialPct {
			continue
		}
		perm := ProximalDisconnectedPermanence
		if rnd.Float64() < ProximalConnectedPct {
			perm = ProximalConnectedPermanence
		}
		c.proximal = append(c.proximal, newSynapse(input.Bit(i), nil, perm))
		c.potential = append(c.potential, i)
	}
}

//Clears per tick column state and advances every cell
func (c *Column) NextTimeStep() {
	c.overlap = 0
	c.rawOverlap = 0
	c.isActive = false
	c.isBursting = false
	for _, cell := range c.cells {
		cell.NextTimeStep()
	}
}

//Counts connected active proximal synapses. Counts under the stimulus
//threshold score zero, the rest are scaled by boost.
func (c *Column) computeOverlap(stimulusThreshold int) {
	raw := 0
	for i := range c.proximal {
		if c.proximal[i].Connected() && c.proximal[i].IsActive() {
			raw++
		}
	}
	c.rawOverlap = raw
	if raw < stimulusThreshold {
		c.overlap = 0
		return
	}
	c.overlap = c.boost * float64(raw)
}

//Reinforces proximal synapses on active input bits and weakens the rest
func (c *Column) adaptProximal() {
	for i := range c.proximal {
		syn := &c.proximal[i]
		if syn.IsActive() {
			syn.IncrementPermanence()
		} else {
			syn.DecrementPermanence()
		}
	}
}

//Returns the cell with the fewest segments, lowest index on ties
func (c *Column) leastUsedCell() *Cell {
	best := c.cells[0]
	for _, cell := range c.cells[1:] {
		if cell.NumSegments() < best.NumSegments() {
			best = cell
		}
	}
	return best
}

/*
 Returns the cell owning the best matching segment in the column, scored by
previously active synapses. Cells are scanned by index and the first maximum
wins. Returns nil, nil when no cell has a matching segment.
*/
func (c *Column) bestMatchingCell() (*Cell, *Segment) {
	var bestCell *Cell
	var bestSeg *Segment
	bestCount := -1

	for _, cell := range c.cells {
		seg := cell.BestMatchingSegment(true)
		if seg == nil {
			continue
		}
		count := seg.PotentialPrevActiveSynapseCount()
		if count > bestCount {
			bestCount = count
			bestCell = cell
			bestSeg = seg
		}
	}

	return bestCell, bestSeg
}

func (c *Column) reset() {
	c.overlap = 0
	c.rawOverlap = 0
	c.isActive = false
	c.isBursting = false
	for _, cell := range c.cells {
		cell.reset()
	}
}

func (c *Column) Index() int { return c.index }
func (c *Column) X() int     { return c.x }
func (c *Column) Y() int     { return c.y }

//Boosted overlap score of the current tick
func (c *Column) Overlap() float64 { return c.overlap }

//Connected active proximal synapse count of the current tick
func (c *Column) RawOverlap() int { return c.rawOverlap }

func (c *Column) Boost() float64           { return c.boost }
func (c *Column) ActiveDutyCycle() float64 { return c.activeDutyCycle }
func (c *Column) IsActive() bool           { return c.isActive }

//True when the column is active and none of its cells was predicted
func (c *Column) IsBursting() bool { return c.isBursting }

//Copy of the column's cells
func (c *Column) Cells() []*Cell {
	result := make([]*Cell, len(c.cells))
	copy(result, c.cells)
	return result
}

func (c *Column) Cell(i int) *Cell {
	return c.cells[i]
}

//True if any cell is predictive for the next tick
func (c *Column) IsPredictive() bool {
	for _, cell := range c.cells {
		if cell.isPredictive {
			return true
		}
	}
	return false
}

//True if any cell was predictive on the previous tick
func (c *Column) WasPredicted() bool {
	for _, cell := range c.cells {
		if cell.wasPredictive {
			return true
		}
	}
	return false
}

//Copy of the proximal synapse pool, ordered by input index
func (c *Column) ProximalSynapses() []Synapse {
	result := make([]Synapse, len(c.proximal))
	copy(result, c.proximal)
	return result
}

//Input indices of the pool
func (c *Column) PotentialInputs() []int {
	result := make([]int, len(c.potential))
	copy(result, c.potential)
	return result
}

//Input indices reached by connected proximal synapses, ascending
func (c *Column) ConnectedInputs() []int {
	result := make([]int, 0, len(c.potential))
	for i := range c.proximal {
		if c.proximal[i].Connected() {
			result = append(result, c.potential[i])
		}
	}
	return result
}
