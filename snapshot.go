package htm

import (
	"bytes"
	"fmt"

	"github.com/gonum/floats"
)

/*
 Snapshot is a copy of a region's observable state after a tick. Cell
matrices have one row per column and one col per cell.
*/
type Snapshot struct {
	Iteration       int
	ActiveColumns   []int
	ActiveCells     *DenseBinaryMatrix
	PredictiveCells *DenseBinaryMatrix
	LearningCells   *DenseBinaryMatrix
	WasActiveCells  *DenseBinaryMatrix
	Overlaps        []float64
	Boosts          []float64
}

//Captures the current state of the region
func (r *Region) Snapshot() *Snapshot {
	s := new(Snapshot)
	s.Iteration = r.iteration
	s.ActiveColumns = r.ActiveColumnIndices()

	n := len(r.columns)
	s.ActiveCells = NewDenseBinaryMatrix(n, CellsPerColumn)
	s.PredictiveCells = NewDenseBinaryMatrix(n, CellsPerColumn)
	s.LearningCells = NewDenseBinaryMatrix(n, CellsPerColumn)
	s.WasActiveCells = NewDenseBinaryMatrix(n, CellsPerColumn)
	s.Overlaps = make([]float64, n)
	s.Boosts = make([]float64, n)

	for c, col := range r.columns {
		s.Overlaps[c] = col.overlap
		s.Boosts[c] = col.boost
		for i, cell := range col.cells {
			s.ActiveCells.Set(c, i, cell.isActive)
			s.PredictiveCells.Set(c, i, cell.isPredictive)
			s.LearningCells.Set(c, i, cell.isLearning)
			s.WasActiveCells.Set(c, i, cell.wasActive)
		}
	}

	return s
}

func (s *Snapshot) Equals(o *Snapshot) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.Iteration != o.Iteration || !equalInts(s.ActiveColumns, o.ActiveColumns) {
		return false
	}
	if !floats.Equal(s.Overlaps, o.Overlaps) || !floats.Equal(s.Boosts, o.Boosts) {
		return false
	}
	return s.ActiveCells.Equals(o.ActiveCells) &&
		s.PredictiveCells.Equals(o.PredictiveCells) &&
		s.LearningCells.Equals(o.LearningCells) &&
		s.WasActiveCells.Equals(o.WasActiveCells)
}

//Counts of the captured cell states
func (s *Snapshot) Summary() string {
	return fmt.Sprintf("iteration %v: %v active columns (%v with every cell active), %v active cells, "+
		"%v predictive cells on %v columns, %v learning cells",
		s.Iteration, s.ActiveCells.TotalTrueRows(), s.ActiveCells.TotalFullRows(), s.ActiveCells.TotalNonZeroCount(),
		s.PredictiveCells.TotalNonZeroCount(), len(s.PredictiveCells.NonZeroRows()), s.LearningCells.TotalNonZeroCount())
}

//Per cell states of one column. Panics if col is out of range.
func (s *Snapshot) DescribeColumn(col int) string {
	var buffer bytes.Buffer
	fmt.Fprintf(&buffer, "column %v overlap %.1f boost %.2f active cells %v\n",
		col, s.Overlaps[col], s.Boosts[col], s.ActiveCells.GetRowIndices(col))
	for i := 0; i < s.ActiveCells.Width; i++ {
		fmt.Fprintf(&buffer, "  cell %v active=%v predictive=%v learning=%v wasActive=%v\n", i,
			s.ActiveCells.Get(col, i), s.PredictiveCells.Get(col, i),
			s.LearningCells.Get(col, i), s.WasActiveCells.Get(col, i))
	}
	return buffer.String()
}

//Dumps every cell matrix, one line per column
func (s *Snapshot) ToString() string {
	var buffer bytes.Buffer
	buffer.WriteString(s.Summary())
	buffer.WriteByte('\n')
	for _, m := range []struct {
		name   string
		matrix *DenseBinaryMatrix
	}{
		{"active", s.ActiveCells},
		{"predictive", s.PredictiveCells},
		{"learning", s.LearningCells},
		{"was active", s.WasActiveCells},
	} {
		fmt.Fprintf(&buffer, "----- %v cells -----\n", m.name)
		buffer.WriteString(m.matrix.ToString())
	}
	return buffer.String()
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
