package htm

import (
	"bytes"
	"fmt"

	"github.com/htm-community/htmseq/utils"
)

//Row/col position of a true entry
type SparseEntry struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

//Dense binary matrix stores one bool per entry, row major. Snapshots use it
//with one row per column and one col per cell.
type DenseBinaryMatrix struct {
	Width   int
	Height  int
	entries []bool
}

//Create new dense binary matrix of specified size
func NewDenseBinaryMatrix(height, width int) *DenseBinaryMatrix {
	m := &DenseBinaryMatrix{}
	m.Height = height
	m.Width = width
	m.entries = make([]bool, width*height)
	return m
}

//Converts index to col/row
func (sm *DenseBinaryMatrix) toIndex(index int) (row int, col int) {
	row = index / sm.Width
	col = index % sm.Width
	return
}

//Returns all true/on entries, row major
func (sm *DenseBinaryMatrix) Entries() []SparseEntry {
	result := make([]SparseEntry, 0, utils.CountTrue(sm.entries))
	for idx, val := range sm.entries {
		if val {
			i, j := sm.toIndex(idx)
			result = append(result, SparseEntry{i, j})
		}
	}
	return result
}

//Get value at row,col position
func (sm *DenseBinaryMatrix) Get(row int, col int) bool {
	sm.validateIndex(row, col)
	return sm.entries[row*sm.Width+col]
}

//Set value at row,col position
func (sm *DenseBinaryMatrix) Set(row int, col int, value bool) {
	sm.validateIndex(row, col)
	sm.entries[row*sm.Width+col] = value
}

//Returns a rows "on" indices
func (sm *DenseBinaryMatrix) GetRowIndices(row int) []int {
	sm.validateRow(row)
	return utils.OnIndices(sm.entries[row*sm.Width : (row+1)*sm.Width])
}

//Returns row indexes with at least 1 true column, ascending
func (sm *DenseBinaryMatrix) NonZeroRows() []int {
	result := make([]int, 0, sm.Height)
	for r := 0; r < sm.Height; r++ {
		for c := 0; c < sm.Width; c++ {
			if sm.entries[r*sm.Width+c] {
				result = append(result, r)
				break
			}
		}
	}
	return result
}

//Returns # of rows with at least 1 true value
func (sm *DenseBinaryMatrix) TotalTrueRows() int {
	return len(sm.NonZeroRows())
}

//Returns # of rows where every entry is true
func (sm *DenseBinaryMatrix) TotalFullRows() int {
	count := 0
	for r := 0; r < sm.Height; r++ {
		if utils.CountTrue(sm.entries[r*sm.Width:(r+1)*sm.Width]) == sm.Width {
			count++
		}
	}
	return count
}

//Returns total true entries
func (sm *DenseBinaryMatrix) TotalNonZeroCount() int {
	return utils.CountTrue(sm.entries)
}

//Returns true if both matrices have the same shape and entries
func (sm *DenseBinaryMatrix) Equals(sm2 *DenseBinaryMatrix) bool {
	if sm == nil || sm2 == nil {
		return sm == sm2
	}
	if sm.Width != sm2.Width || sm.Height != sm2.Height {
		return false
	}
	for idx := range sm.entries {
		if sm.entries[idx] != sm2.entries[idx] {
			return false
		}
	}
	return true
}

func (sm *DenseBinaryMatrix) ToString() string {
	var buffer bytes.Buffer

	for r := 0; r < sm.Height; r++ {
		for c := 0; c < sm.Width; c++ {
			if sm.entries[r*sm.Width+c] {
				buffer.WriteByte('1')
			} else {
				buffer.WriteByte('0')
			}
		}
		buffer.WriteByte('\n')
	}

	return buffer.String()
}

func (sm *DenseBinaryMatrix) validateRow(row int) {
	if row < 0 || row >= sm.Height {
		panic(fmt.Sprintf("Row %v is out of bounds.", row))
	}
}

func (sm *DenseBinaryMatrix) validateIndex(row int, col int) {
	sm.validateRow(row)
	if col < 0 || col >= sm.Width {
		panic(fmt.Sprintf("Col %v is out of bounds.", col))
	}
}
