package htm

import "math"

// Source is anything a synapse can listen to: an input bit or a cell.
type Source interface {
	IsActive() bool
	WasActive() bool
}

/*
 A synapse connects a source to a dendrite. Distal synapses belong to a
segment; proximal synapses have no segment and belong to their column.
*/
type Synapse struct {
	source     Source
	segment    *Segment
	permanence float64
}

func newSynapse(source Source, segment *Segment, permanence float64) Synapse {
	return Synapse{source: source, segment: segment, permanence: permanence}
}

func (s *Synapse) Permanence() float64 {
	return s.permanence
}

func (s *Synapse) Source() Source {
	return s.source
}

//Owning segment, nil for proximal synapses
func (s *Synapse) Segment() *Segment {
	return s.segment
}

func (s *Synapse) Connected() bool {
	return s.permanence >= ConnectedPermanence-permanenceEpsilon
}

func (s *Synapse) IsActive() bool {
	return s.source.IsActive()
}

func (s *Synapse) WasActive() bool {
	return s.source.WasActive()
}

func (s *Synapse) IncrementPermanence() {
	s.permanence = math.Min(PermanenceMax, s.permanence+PermanenceIncrement)
}

func (s *Synapse) DecrementPermanence() {
	s.permanence = math.Max(PermanenceMin, s.permanence-PermanenceDecrement)
}
