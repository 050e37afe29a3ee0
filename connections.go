package htm

// Cells are addressed region wide by a flat index, column major:
// column*CellsPerColumn + cell.

//Returns the flat index of cell i in column c
func CellIndex(c, i int) int {
	return c*CellsPerColumn + i
}

//Returns the column and in-column index of a flat cell index
func CellFromIndex(idx int) (column int, cell int) {
	return idx / CellsPerColumn, idx % CellsPerColumn
}

//Flat index of the cell
func (c *Cell) FlatIndex() int {
	return CellIndex(c.column, c.index)
}

//Total number of cells in the region
func (r *Region) NumCells() int {
	return len(r.columns) * CellsPerColumn
}

//Returns the cell at the given flat index
func (r *Region) Cell(idx int) *Cell {
	c, i := CellFromIndex(idx)
	return r.columns[c].cells[i]
}

func (r *Region) cellIndicesWhere(pred func(*Cell) bool) []int {
	result := make([]int, 0)
	for _, col := range r.columns {
		for _, cell := range col.cells {
			if pred(cell) {
				result = append(result, cell.FlatIndex())
			}
		}
	}
	return result
}

//Flat indices of active cells, ascending
func (r *Region) ActiveCellIndices() []int {
	return r.cellIndicesWhere((*Cell).IsActive)
}

//Flat indices of predictive cells, ascending
func (r *Region) PredictiveCellIndices() []int {
	return r.cellIndicesWhere((*Cell).IsPredictive)
}

//Flat indices of learning cells, ascending
func (r *Region) LearningCellIndices() []int {
	return r.cellIndicesWhere((*Cell).IsLearning)
}
