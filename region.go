package htm

import (
	"fmt"
	"io"
	"log"
	"math/rand"

	"github.com/skelterjohn/go.matrix"
)

/*
 Region owns a grid of columns, the input space they share, and the spatial
and temporal poolers that run over them. A region is created with fixed
dimensions, initialized once with the input size, then driven one tick per
Compute call.
*/
type Region struct {
	params  RegionParams
	columns []*Column
	input   *InputSpace

	sp  *SpatialPooler
	tp  *TemporalPooler
	rnd *rand.Rand

	logger        *log.Logger
	learn         bool
	iteration     int
	activeColumns []int
	stats         TpStats
}

//Create new region, columns are laid out row major
func NewRegion(params *RegionParams) (*Region, error) {
	if params == nil {
		params = NewRegionParams()
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	r := new(Region)
	r.params = *params
	r.learn = true
	r.rnd = rand.New(rand.NewSource(params.Seed))
	r.logger = params.Logger
	if r.logger == nil {
		r.logger = log.New(io.Discard, "", 0)
	}
	r.params.Logger = r.logger

	r.columns = make([]*Column, params.Width*params.Height)
	for y := 0; y < params.Height; y++ {
		for x := 0; x < params.Width; x++ {
			idx := y*params.Width + x
			r.columns[idx] = newColumn(idx, x, y)
		}
	}

	r.sp = NewSpatialPooler(r.columns, &r.params)
	r.tp = NewTemporalPooler(r.columns, &r.params, r.rnd)
	r.stats.BurnIn = params.BurnIn

	// a segment grows at most one synapse per winner of the previous tick
	if r.sp.NumActiveColumns < ActivationThreshold {
		r.logger.Printf("warning: %v winners per tick is below the activation threshold %v, no cell can become predictive",
			r.sp.NumActiveColumns, ActivationThreshold)
	}

	return r, nil
}

/*
 Creates the input space and wires every column's proximal synapses into it.
May be called once.
*/
func (r *Region) Initialize(inputSize int) error {
	if r.input != nil {
		return ErrAlreadyInitialized
	}
	input, err := NewInputSpace(inputSize)
	if err != nil {
		return err
	}

	r.input = input
	for _, col := range r.columns {
		col.connectToInput(input, r.params.PotentialPct, r.rnd)
	}

	r.logf(1, "initialized %vx%v region, %v columns, input size %v, %v winners per tick",
		r.params.Width, r.params.Height, len(r.columns), inputSize, r.sp.NumActiveColumns)
	return nil
}

/*
 Runs one tick: advances every column and cell, picks the active columns,
activates and learns cells, and computes the predictive state for the next
tick. The input is validated before any state changes; on error the region
is untouched.
*/
func (r *Region) Compute(input []bool) error {
	if r.input == nil {
		return ErrNotInitialized
	}
	if len(input) != r.input.Size() {
		return fmt.Errorf("%w: got %v bits, want %v", ErrInputLength, len(input), r.input.Size())
	}

	predictedLast := r.PredictedColumnIndices()

	r.input.Advance()
	if err := r.input.SetCurrent(input); err != nil {
		return err
	}

	for _, col := range r.columns {
		col.NextTimeStep()
	}

	r.activeColumns = r.sp.Compute(r.learn)
	r.tp.Compute(r.activeColumns, r.learn)

	bursting := 0
	for _, c := range r.activeColumns {
		if r.columns[c].isBursting {
			bursting++
		}
	}
	r.stats.updateStatsInferEnd(r.activeColumns, predictedLast, bursting)
	r.iteration++

	r.printComputeEnd()
	return nil
}

//Clears all cell and column activity and the input buffers. Learned
//segments, permanences, boosts and duty cycles are kept.
func (r *Region) Reset() {
	for _, col := range r.columns {
		col.reset()
	}
	if r.input != nil {
		r.input.reset()
	}
	r.tp.reset()
	r.activeColumns = nil
	r.stats.reset()
	r.logf(1, "reset at iteration %v", r.iteration)
}

//Turns spatial and temporal learning on or off
func (r *Region) SetLearning(learn bool) {
	r.learn = learn
}

func (r *Region) Learning() bool {
	return r.learn
}

func (r *Region) Width() int  { return r.params.Width }
func (r *Region) Height() int { return r.params.Height }

//Number of ticks computed
func (r *Region) Iteration() int { return r.iteration }

//Input size, 0 before Initialize
func (r *Region) InputSize() int {
	if r.input == nil {
		return 0
	}
	return r.input.Size()
}

func (r *Region) IsInitialized() bool {
	return r.input != nil
}

//Copy of the column list, row major
func (r *Region) Columns() []*Column {
	result := make([]*Column, len(r.columns))
	copy(result, r.columns)
	return result
}

//Column at grid position x,y or nil when out of range
func (r *Region) Column(x, y int) *Column {
	if x < 0 || y < 0 || x >= r.params.Width || y >= r.params.Height {
		return nil
	}
	return r.columns[y*r.params.Width+x]
}

func (r *Region) NumColumns() int {
	return len(r.columns)
}

func (r *Region) SpatialPooler() *SpatialPooler {
	return r.sp
}

//Active columns of the last tick, ascending
func (r *Region) ActiveColumnIndices() []int {
	result := make([]int, 0, r.sp.NumActiveColumns)
	for _, col := range r.columns {
		if col.isActive {
			result = append(result, col.index)
		}
	}
	return result
}

//Columns with at least one predictive cell, ascending. These are the
//columns expected to be active on the next tick.
func (r *Region) PredictedColumnIndices() []int {
	result := make([]int, 0, r.sp.NumActiveColumns)
	for _, col := range r.columns {
		if col.IsPredictive() {
			result = append(result, col.index)
		}
	}
	return result
}

//Columns that burst on the last tick, ascending
func (r *Region) BurstingColumnIndices() []int {
	result := make([]int, 0)
	for _, col := range r.columns {
		if col.isBursting {
			result = append(result, col.index)
		}
	}
	return result
}

/*
 Projects the predicted columns back onto the input space: the ascending
union of the input bits reached by connected proximal synapses of every
predicted column.
*/
func (r *Region) PredictedInput() []int {
	if r.input == nil {
		return []int{}
	}
	return r.ProximalConnections().RowUnion(r.PredictedColumnIndices())
}

/*
 Returns the connected proximal synapses as a columns x input size sparse
matrix. Returns nil before Initialize.
*/
func (r *Region) ProximalConnections() *SparseBinaryMatrix {
	if r.input == nil {
		return nil
	}
	m := NewSparseBinaryMatrix(len(r.columns), r.input.Size())
	for i, col := range r.columns {
		m.ReplaceRowByIndices(i, col.ConnectedInputs())
	}
	return m
}

/*
 Returns the proximal permanences as a columns x input size matrix. Input
bits outside a column's pool read zero. Returns nil before Initialize.
*/
func (r *Region) ProximalPermanences() *matrix.DenseMatrix {
	if r.input == nil {
		return nil
	}
	m := matrix.Zeros(len(r.columns), r.input.Size())
	for i, col := range r.columns {
		for j := range col.proximal {
			m.Set(i, col.potential[j], col.proximal[j].permanence)
		}
	}
	return m
}

//Copy of the prediction stats
func (r *Region) Stats() TpStats {
	return r.stats
}

func (r *Region) ResetStats() {
	r.stats.resetStats()
}

func (r *Region) logf(level int, format string, args ...interface{}) {
	if r.params.Verbosity >= level {
		r.logger.Printf(format, args...)
	}
}
