package htm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSegmentActiveCounts(t *testing.T) {
	seg := newSegment(nil)

	// connected, active now
	for _, src := range makeSources(3, true, false) {
		seg.AddSynapse(src, 0.3)
	}
	// connected, active last tick
	for _, src := range makeSources(2, false, true) {
		seg.AddSynapse(src, 0.25)
	}
	// disconnected, active both ticks
	for _, src := range makeSources(4, true, true) {
		seg.AddSynapse(src, 0.1)
	}

	assert.Equal(t, 9, seg.NumSynapses())
	assert.Equal(t, 3, seg.ActiveSynapseCount())
	assert.Equal(t, 2, seg.PrevActiveSynapseCount())
	assert.Equal(t, 6, seg.PotentialPrevActiveSynapseCount())
	assert.False(t, seg.IsActive())
	assert.False(t, seg.IsActiveFromPrev())
}

func TestSegmentBelowThresholdNeverActive(t *testing.T) {
	for n := 0; n < ActivationThreshold; n++ {
		seg := newSegment(nil)
		for _, src := range makeSources(n, true, true) {
			seg.AddSynapse(src, 1.0)
		}
		// plenty of active but disconnected synapses
		for _, src := range makeSources(10, true, true) {
			seg.AddSynapse(src, 0.1)
		}
		assert.False(t, seg.IsActive(), "%v connected active synapses", n)
		assert.False(t, seg.IsActiveFromPrev(), "%v connected prev active synapses", n)
	}

	seg := newSegment(nil)
	for _, src := range makeSources(ActivationThreshold, true, true) {
		seg.AddSynapse(src, 0.2)
	}
	assert.True(t, seg.IsActive())
	assert.True(t, seg.IsActiveFromPrev())
}

func TestSegmentAddSynapseKeepsDuplicates(t *testing.T) {
	cell := newCell(3, 1)
	seg := cell.CreateSegment()
	src := &testSource{}
	seg.AddSynapse(src, 0.3)
	seg.AddSynapse(src, 0.4)

	syns := seg.Synapses()
	assert.Len(t, syns, 2)
	assert.Same(t, seg, syns[0].Segment())
	assert.Same(t, cell, seg.Cell())
	assert.Equal(t, []float64{0.3, 0.4}, seg.Permanences())

	// copies do not alias the segment
	syns[0].IncrementPermanence()
	assert.Equal(t, 0.3, seg.Permanences()[0])
}

func TestSegmentAdaptPositive(t *testing.T) {
	seg := newSegment(nil)
	seg.AddSynapse(&testSource{wasActive: true}, 0.3)
	seg.AddSynapse(&testSource{active: true}, 0.3)
	seg.AddSynapse(&testSource{}, 0.0)

	seg.Adapt(true)

	perms := seg.Permanences()
	assert.InDelta(t, 0.35, perms[0], 1e-9)
	assert.InDelta(t, 0.25, perms[1], 1e-9)
	assert.Equal(t, 0.0, perms[2])
}

func TestSegmentAdaptNegative(t *testing.T) {
	seg := newSegment(nil)
	seg.AddSynapse(&testSource{wasActive: true}, 0.3)
	seg.AddSynapse(&testSource{}, 0.3)

	// same mechanics as a positive pass
	seg.Adapt(false)

	perms := seg.Permanences()
	assert.InDelta(t, 0.35, perms[0], 1e-9)
	assert.InDelta(t, 0.25, perms[1], 1e-9)
}

func TestSegmentWeakenPrevActive(t *testing.T) {
	seg := newSegment(nil)
	seg.AddSynapse(&testSource{wasActive: true}, 0.3)
	seg.AddSynapse(&testSource{}, 0.3)

	seg.weakenPrevActive()

	perms := seg.Permanences()
	assert.InDelta(t, 0.25, perms[0], 1e-9)
	assert.Equal(t, 0.3, perms[1])
}

func TestSegmentThresholds(t *testing.T) {
	seg := newSegment(nil)
	assert.Equal(t, ActivationThreshold, seg.ActivationThreshold())
	assert.Equal(t, LearningThreshold, seg.LearningThreshold())
}
