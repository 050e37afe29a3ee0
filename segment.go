package htm

import (
	"bytes"
	"fmt"
)

// The Segment struct is a distal dendrite: a container for the synapses a
// cell uses to recognise the context that precedes its activation.
type Segment struct {
	cell     *Cell
	synapses []Synapse

	activationThreshold int
	learningThreshold   int
}

//Creates a new segment
func newSegment(cell *Cell) *Segment {
	seg := new(Segment)
	seg.cell = cell
	seg.activationThreshold = ActivationThreshold
	seg.learningThreshold = LearningThreshold
	return seg
}

//Appends a synapse to source, duplicates are allowed
func (s *Segment) AddSynapse(source Source, permanence float64) {
	s.synapses = append(s.synapses, newSynapse(source, s, permanence))
}

//Owning cell
func (s *Segment) Cell() *Cell {
	return s.cell
}

//Copy of the segment's synapses in insertion order
func (s *Segment) Synapses() []Synapse {
	result := make([]Synapse, len(s.synapses))
	copy(result, s.synapses)
	return result
}

func (s *Segment) NumSynapses() int {
	return len(s.synapses)
}

func (s *Segment) Permanences() []float64 {
	result := make([]float64, len(s.synapses))
	for i := range s.synapses {
		result[i] = s.synapses[i].permanence
	}
	return result
}

func (s *Segment) ActivationThreshold() int {
	return s.activationThreshold
}

func (s *Segment) LearningThreshold() int {
	return s.learningThreshold
}

//Number of connected synapses whose source is active this tick
func (s *Segment) ActiveSynapseCount() int {
	count := 0
	for i := range s.synapses {
		if s.synapses[i].Connected() && s.synapses[i].IsActive() {
			count++
		}
	}
	return count
}

//Number of connected synapses whose source was active last tick
func (s *Segment) PrevActiveSynapseCount() int {
	count := 0
	for i := range s.synapses {
		if s.synapses[i].Connected() && s.synapses[i].WasActive() {
			count++
		}
	}
	return count
}

//Number of synapses whose source was active last tick, connected or not
func (s *Segment) PotentialPrevActiveSynapseCount() int {
	count := 0
	for i := range s.synapses {
		if s.synapses[i].WasActive() {
			count++
		}
	}
	return count
}

func (s *Segment) IsActive() bool {
	return s.ActiveSynapseCount() >= s.activationThreshold
}

//True when the segment was active given last tick's sources, which is what
//made its cell predictive
func (s *Segment) IsActiveFromPrev() bool {
	return s.PrevActiveSynapseCount() >= s.activationThreshold
}

/*
 Adapts synapses against last tick's sources: synapses whose source was
active are incremented, all others are decremented. The flag only records
whether the caller is rewarding a correct prediction or punishing a wrong
one; the mechanics are the same for both.
*/
func (s *Segment) Adapt(positiveReinforcement bool) {
	for i := range s.synapses {
		syn := &s.synapses[i]
		if syn.WasActive() {
			syn.IncrementPermanence()
		} else {
			syn.DecrementPermanence()
		}
	}
}

//Decrements only the synapses whose source was active last tick
func (s *Segment) weakenPrevActive() {
	for i := range s.synapses {
		if s.synapses[i].WasActive() {
			s.synapses[i].DecrementPermanence()
		}
	}
}

func (s *Segment) ToString() string {
	var buffer bytes.Buffer
	buffer.WriteString(fmt.Sprintf("[%v syns, active=%v, prevActive=%v]", len(s.synapses),
		s.ActiveSynapseCount(), s.PrevActiveSynapseCount()))
	for i := range s.synapses {
		syn := &s.synapses[i]
		if cell, ok := syn.source.(*Cell); ok {
			buffer.WriteString(fmt.Sprintf(" (%v,%v)%.3f", cell.column, cell.index, syn.permanence))
		} else {
			buffer.WriteString(fmt.Sprintf(" %.3f", syn.permanence))
		}
	}
	return buffer.String()
}
