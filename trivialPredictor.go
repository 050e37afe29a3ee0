package htm

import (
	"fmt"
	"io"
	"log"
	"math/rand"
	"sort"
	"strings"

	"github.com/cznic/mathutil"
	"github.com/htm-community/htmseq/utils"
)

/*
(n = half the number of average input columns on)
"random" - predict n random columns
"zeroth" - predict the n most common columns learned from the input
"last" - predict the last input
"all" - predict all columns
"lots" - predict the 2n most common columns learned from the input

Both "random" and "all" should give a prediction score of zero"
*/
type PredictorMethod int

const (
	Random PredictorMethod = 1
	Zeroth PredictorMethod = 2
	Last   PredictorMethod = 3
	All    PredictorMethod = 4
	Lots   PredictorMethod = 5
)

var predictorMethodNames = map[PredictorMethod]string{
	Random: "random",
	Zeroth: "zeroth",
	Last:   "last",
	All:    "all",
	Lots:   "lots",
}

func (m PredictorMethod) String() string {
	if name, ok := predictorMethodNames[m]; ok {
		return name
	}
	return fmt.Sprintf("PredictorMethod(%d)", int(m))
}

//Parses a method name as printed by String
func ParsePredictorMethod(name string) (PredictorMethod, error) {
	for m, n := range predictorMethodNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown predictor method %q", ErrInvalidParams, name)
}

type TrivialPredictorState struct {
	ActiveState        []bool
	ActiveStateLast    []bool
	PredictedState     []bool
	PredictedStateLast []bool
}

/*
 TrivialPredictor produces baseline column predictions that need no
learning beyond column usage counts. Comparing its stats with the region's
shows how much of the region's prediction is actual sequence learning.
*/
type TrivialPredictor struct {
	NumOfCols      int
	Methods        []PredictorMethod
	Verbosity      int
	Logger         *log.Logger
	InternalStats  map[PredictorMethod]*TpStats
	State          map[PredictorMethod]*TrivialPredictorState
	ColumnCount    []int
	AverageDensity float64

	rnd *rand.Rand
}

func NewTrivialPredictor(numberOfCols int, methods []PredictorMethod, seed int64) *TrivialPredictor {
	tp := new(TrivialPredictor)
	tp.NumOfCols = numberOfCols
	tp.Methods = methods
	tp.InternalStats = make(map[PredictorMethod]*TpStats, len(methods))
	tp.State = make(map[PredictorMethod]*TrivialPredictorState, len(methods))
	tp.Logger = log.New(io.Discard, "", 0)
	tp.rnd = rand.New(rand.NewSource(seed))

	for _, method := range methods {
		tps := new(TrivialPredictorState)
		tps.ActiveState = make([]bool, numberOfCols)
		tps.ActiveStateLast = make([]bool, numberOfCols)
		tps.PredictedState = make([]bool, numberOfCols)
		tps.PredictedStateLast = make([]bool, numberOfCols)
		tp.State[method] = tps

		tp.InternalStats[method] = new(TpStats)
	}

	// Number of times each column has been active during learning
	tp.ColumnCount = make([]int, numberOfCols)

	// Running average of input density
	tp.AverageDensity = 0.05

	return tp
}

//Columns ordered by usage count, most used first, lowest index on ties
func (tp *TrivialPredictor) mostUsedColumns(n int) []int {
	inds := make([]int, tp.NumOfCols)
	for i := range inds {
		inds[i] = i
	}
	sort.SliceStable(inds, func(a, b int) bool {
		return tp.ColumnCount[inds[a]] > tp.ColumnCount[inds[b]]
	})
	result := inds[:n]
	sort.Ints(result)
	return result
}

/*
 Scores the last prediction of every method against activeColumns, then
makes the next prediction.
*/
func (tp *TrivialPredictor) Infer(activeColumns []int) {
	numColsToPredict := mathutil.Min(tp.NumOfCols, int(0.5+tp.AverageDensity*float64(tp.NumOfCols)))

	for _, method := range tp.Methods {
		state := tp.State[method]

		// Copy t-1 into t
		copy(state.ActiveStateLast, state.ActiveState)
		copy(state.PredictedStateLast, state.PredictedState)

		tp.InternalStats[method].updateStatsInferEnd(activeColumns,
			utils.OnIndices(state.PredictedStateLast), 0)

		utils.FillSliceBool(state.ActiveState, false)
		utils.FillSliceBool(state.PredictedState, false)

		for _, val := range activeColumns {
			state.ActiveState[val] = true
		}

		var predictedCols []int

		switch method {
		case Random:
			// Randomly predict N columns
			predictedCols = tp.rnd.Perm(tp.NumOfCols)[:numColsToPredict]
		case Zeroth:
			// Always predict the top N most frequent columns
			predictedCols = tp.mostUsedColumns(numColsToPredict)
		case Last:
			// Always predict the last input
			predictedCols = activeColumns
		case All:
			// Always predict all columns
			predictedCols = make([]int, tp.NumOfCols)
			for i := range predictedCols {
				predictedCols[i] = i
			}
		case Lots:
			// Always predict 2 * the top N most frequent columns
			predictedCols = tp.mostUsedColumns(mathutil.Min(2*numColsToPredict, tp.NumOfCols))
		default:
			panic("prediction method not implemented")
		}

		for _, val := range predictedCols {
			state.PredictedState[val] = true
		}

		if tp.Verbosity > 1 {
			tp.Logger.Println("Trivial prediction:", method, "numColsToPredict:", numColsToPredict, predictedCols)
		}
	}
}

/*
 Do one iteration of trivial predictor learning: update the density average
and the column counts, then infer.
*/
func (tp *TrivialPredictor) Learn(activeColumns []int) {
	// Running average of bottom up density
	density := float64(len(activeColumns)) / float64(tp.NumOfCols)

	tp.AverageDensity = 0.95*tp.AverageDensity + 0.05*density

	// Running count of how often each column has been active
	for _, val := range activeColumns {
		tp.ColumnCount[val]++
	}

	tp.Infer(activeColumns)
}

//Columns the method predicts for the next tick, ascending
func (tp *TrivialPredictor) Predicted(method PredictorMethod) []int {
	state, ok := tp.State[method]
	if !ok {
		return []int{}
	}
	return utils.OnIndices(state.PredictedState)
}

//Copy of the method's stats
func (tp *TrivialPredictor) Stats(method PredictorMethod) TpStats {
	if stats, ok := tp.InternalStats[method]; ok {
		return *stats
	}
	return TpStats{}
}

/*
Reset the state of all methods.
This is normally used between sequences. Column counts are kept.
*/
func (tp *TrivialPredictor) Reset() {
	for _, method := range tp.Methods {
		state := tp.State[method]
		utils.FillSliceBool(state.ActiveState, false)
		utils.FillSliceBool(state.ActiveStateLast, false)
		utils.FillSliceBool(state.PredictedState, false)
		utils.FillSliceBool(state.PredictedStateLast, false)

		tp.InternalStats[method].reset()
	}
}

/*
Reset the learning and inference stats, including all the totals.
*/
func (tp *TrivialPredictor) ResetStats() {
	tp.Reset()
	for _, method := range tp.Methods {
		tp.InternalStats[method].resetStats()
	}
}
