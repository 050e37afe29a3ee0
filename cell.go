package htm

/*
 Cell is one of the fixed cells of a column. Its six flags are the whole
temporal state: current and previous activity, prediction and learning.
Only NextTimeStep moves current flags into the previous ones.
*/
type Cell struct {
	column   int
	index    int
	segments []*Segment

	isActive      bool
	wasActive     bool
	isPredictive  bool
	wasPredictive bool
	isLearning    bool
	wasLearning   bool
}

func newCell(column, index int) *Cell {
	return &Cell{column: column, index: index}
}

//Moves current state to previous state and clears current state
func (c *Cell) NextTimeStep() {
	c.wasActive = c.isActive
	c.wasPredictive = c.isPredictive
	c.wasLearning = c.isLearning

	c.isActive = false
	c.isPredictive = false
	c.isLearning = false
}

//Appends and returns a new empty segment
func (c *Cell) CreateSegment() *Segment {
	seg := newSegment(c)
	c.segments = append(c.segments, seg)
	return seg
}

/*
 Returns the segment with the highest score, where the score is the count of
previously active synapses (usePrevious) or of connected currently active
synapses. The first segment with the maximum wins. Returns nil when the
best score is below that segment's learning threshold, or when the cell has
no segments.
*/
func (c *Cell) BestMatchingSegment(usePrevious bool) *Segment {
	var best *Segment
	maxCount := -1

	for _, seg := range c.segments {
		var count int
		if usePrevious {
			count = seg.PotentialPrevActiveSynapseCount()
		} else {
			count = seg.ActiveSynapseCount()
		}
		if count > maxCount {
			maxCount = count
			best = seg
		}
	}

	threshold := 1
	if best != nil {
		threshold = best.learningThreshold
	}
	if maxCount < threshold {
		return nil
	}
	return best
}

//Returns the first segment that was active given last tick's sources
func (c *Cell) activeSegmentFromPrev() *Segment {
	for _, seg := range c.segments {
		if seg.IsActiveFromPrev() {
			return seg
		}
	}
	return nil
}

func (c *Cell) reset() {
	c.isActive, c.wasActive = false, false
	c.isPredictive, c.wasPredictive = false, false
	c.isLearning, c.wasLearning = false, false
}

func (c *Cell) Index() int         { return c.index }
func (c *Cell) ColumnIndex() int   { return c.column }
func (c *Cell) IsActive() bool      { return c.isActive }
func (c *Cell) WasActive() bool     { return c.wasActive }
func (c *Cell) IsPredictive() bool  { return c.isPredictive }
func (c *Cell) WasPredictive() bool { return c.wasPredictive }
func (c *Cell) IsLearning() bool    { return c.isLearning }
func (c *Cell) WasLearning() bool   { return c.wasLearning }

func (c *Cell) NumSegments() int {
	return len(c.segments)
}

//Copy of the cell's segment list
func (c *Cell) Segments() []*Segment {
	result := make([]*Segment, len(c.segments))
	copy(result, c.segments)
	return result
}
