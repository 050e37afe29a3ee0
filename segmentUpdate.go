package htm

import (
	"sort"
)

/*
 A learning decision made while walking the active columns. Updates are
queued and applied after the walk so that no column's learning changes what
another column sees in the same phase.

When segment is nil a new segment is grown on cell with one synapse per
entry in newSources. Otherwise the existing segment is reinforced.
*/
type segmentUpdate struct {
	columnIdx       int
	cellIdx         int
	cell            *Cell
	segment         *Segment
	newSources      []Source
	lrnIterationIdx int
}

/*
 Store a potential segment update. Updates that would grow a segment with no
synapses are dropped.
*/
func (tp *TemporalPooler) addToSegmentUpdates(segUpdate *segmentUpdate) {
	if segUpdate == nil {
		return
	}
	if segUpdate.segment == nil && len(segUpdate.newSources) == 0 {
		return
	}
	segUpdate.lrnIterationIdx = tp.lrnIterationIdx
	tp.segmentUpdates = append(tp.segmentUpdates, segUpdate)
}

//Applies queued updates in the order they were queued and clears the queue
func (tp *TemporalPooler) processSegmentUpdates() {
	for _, update := range tp.segmentUpdates {
		update.adaptSegments(tp)
		if update.segment != nil {
			tp.logf(4, "segment update col %v cell %v (learn iteration %v): reinforced %v synapses",
				update.columnIdx, update.cellIdx, update.lrnIterationIdx, update.segment.NumSynapses())
		} else {
			tp.logf(4, "segment update col %v cell %v (learn iteration %v): new segment from %v sources",
				update.columnIdx, update.cellIdx, update.lrnIterationIdx, len(update.newSources))
		}
	}
	tp.segmentUpdates = tp.segmentUpdates[:0]
}

/*
 This function applies segment update information to a segment in a
cell. Existing segments are adapted with positive reinforcement, new
segments are created and seeded at InitialDistalPermanence.
*/
func (segUpdate *segmentUpdate) adaptSegments(tp *TemporalPooler) {
	if segUpdate.segment != nil {
		segUpdate.segment.Adapt(true)
		return
	}

	sources := tp.sampleSources(segUpdate.newSources)
	seg := segUpdate.cell.CreateSegment()
	for _, src := range sources {
		seg.AddSynapse(src, InitialDistalPermanence)
	}
}

//Picks at most MaxNewSynapseCount sources, keeping their original order
func (tp *TemporalPooler) sampleSources(sources []Source) []Source {
	max := tp.params.MaxNewSynapseCount
	if max <= 0 || len(sources) <= max {
		return sources
	}

	picked := tp.rnd.Perm(len(sources))[:max]
	sort.Ints(picked)

	result := make([]Source, 0, max)
	for _, idx := range picked {
		result = append(result, sources[idx])
	}
	return result
}
