package htm

import (
	"fmt"
	"sort"

	"github.com/htm-community/htmseq/utils"
)

//Items are ascending indices of the row's non-zero columns
type SparseRow []int

//Sparse binary matrix stores indexes of non-zero entries in matrix
//to conserve space. Rows without entries are not stored.
type SparseBinaryMatrix struct {
	Width  int
	Height int
	rows   map[int]SparseRow
}

func NewSparseBinaryMatrix(height, width int) *SparseBinaryMatrix {
	m := new(SparseBinaryMatrix)
	m.Height = height
	m.Width = width
	m.rows = make(map[int]SparseRow)
	return m
}

func (sm *SparseBinaryMatrix) validate(row, col int) {
	if row < 0 || row >= sm.Height || col < 0 || col >= sm.Width {
		panic(fmt.Sprintf("index (%v,%v) out of range for %vx%v matrix", row, col, sm.Height, sm.Width))
	}
}

func (sm *SparseBinaryMatrix) Set(row int, col int, value bool) {
	sm.validate(row, col)
	r := sm.rows[row]
	i := sort.SearchInts(r, col)
	present := i < len(r) && r[i] == col

	switch {
	case value && !present:
		r = append(r, 0)
		copy(r[i+1:], r[i:])
		r[i] = col
		sm.rows[row] = r
	case !value && present:
		r = append(r[:i], r[i+1:]...)
		if len(r) == 0 {
			delete(sm.rows, row)
		} else {
			sm.rows[row] = r
		}
	}
}

//Replaces a row with the given column indices
func (sm *SparseBinaryMatrix) ReplaceRowByIndices(row int, indices []int) {
	sm.validate(row, 0)
	delete(sm.rows, row)
	for _, col := range indices {
		sm.Set(row, col, true)
	}
}

//Column indices of a row's non-zero entries, ascending
func (sm *SparseBinaryMatrix) GetRowIndices(row int) []int {
	sm.validate(row, 0)
	result := make([]int, len(sm.rows[row]))
	copy(result, sm.rows[row])
	return result
}

//Ascending column indices set in any of the given rows
func (sm *SparseBinaryMatrix) RowUnion(rows []int) []int {
	bits := make([]bool, sm.Width)
	for _, row := range rows {
		sm.validate(row, 0)
		for _, col := range sm.rows[row] {
			bits[col] = true
		}
	}
	return utils.OnIndices(bits)
}

//Indices of rows with at least one entry, ascending
func (sm *SparseBinaryMatrix) NonZeroRows() []int {
	result := make([]int, 0, len(sm.rows))
	for row := range sm.rows {
		result = append(result, row)
	}
	sort.Ints(result)
	return result
}

func (sm *SparseBinaryMatrix) TotalNonZeroCount() int {
	count := 0
	for _, r := range sm.rows {
		count += len(r)
	}
	return count
}
