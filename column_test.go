package htm

import (
	"math/rand"
	"testing"

	"github.com/htm-community/htmseq/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnConnectToInput(t *testing.T) {
	input, err := NewInputSpace(200)
	require.NoError(t, err)
	rnd := rand.New(rand.NewSource(7))

	col := newColumn(0, 0, 0)
	col.connectToInput(input, 1.0, rnd)

	syns := col.ProximalSynapses()
	assert.Len(t, syns, 200)
	connected := 0
	for i, syn := range syns {
		assert.Equal(t, i, syn.Source().(InputBit).Index())
		assert.Nil(t, syn.Segment())
		perm := syn.Permanence()
		assert.True(t, perm == ProximalConnectedPermanence || perm == ProximalDisconnectedPermanence)
		if syn.Connected() {
			connected++
		}
	}
	assert.Equal(t, connected, len(col.ConnectedInputs()))
	// roughly ProximalConnectedPct of the pool starts connected
	assert.InDelta(t, 40, connected, 25)

	empty := newColumn(1, 1, 0)
	empty.connectToInput(input, 0.0, rnd)
	assert.Len(t, empty.ProximalSynapses(), 0)
	assert.Equal(t, []int{}, empty.ConnectedInputs())
}

func TestColumnPotentialPct(t *testing.T) {
	input, err := NewInputSpace(1000)
	require.NoError(t, err)
	col := newColumn(0, 0, 0)
	col.connectToInput(input, 0.5, rand.New(rand.NewSource(1)))

	assert.InDelta(t, 500, len(col.PotentialInputs()), 80)
	inputs := col.PotentialInputs()
	for i := 1; i < len(inputs); i++ {
		assert.True(t, inputs[i-1] < inputs[i])
	}
}

func TestColumnOverlap(t *testing.T) {
	input, err := NewInputSpace(6)
	require.NoError(t, err)
	col := newColumn(0, 0, 0)
	for i := 0; i < 6; i++ {
		perm := 0.3
		if i >= 4 {
			perm = 0.1
		}
		col.proximal = append(col.proximal, newSynapse(input.Bit(i), nil, perm))
		col.potential = append(col.potential, i)
	}
	require.NoError(t, input.SetCurrent(utils.Make1DBool([]int{1, 1, 1, 0, 1, 1})))

	col.boost = 1.5
	col.computeOverlap(2)
	assert.Equal(t, 3, col.RawOverlap())
	assert.InDelta(t, 4.5, col.Overlap(), 1e-9)

	col.computeOverlap(4)
	assert.Equal(t, 3, col.RawOverlap())
	assert.Equal(t, 0.0, col.Overlap())

	col.adaptProximal()
	perms := make([]float64, 6)
	for i, syn := range col.ProximalSynapses() {
		perms[i] = syn.Permanence()
	}
	assert.InDeltaSlice(t, []float64{0.35, 0.35, 0.35, 0.25, 0.15, 0.15}, perms, 1e-9)
}

func TestColumnNextTimeStep(t *testing.T) {
	col := newColumn(0, 0, 0)
	col.overlap, col.rawOverlap, col.isActive, col.isBursting = 3, 3, true, true
	col.cells[2].isActive = true
	col.cells[1].isPredictive = true
	assert.True(t, col.IsPredictive())

	col.NextTimeStep()

	assert.Equal(t, 0.0, col.Overlap())
	assert.Equal(t, 0, col.RawOverlap())
	assert.False(t, col.IsActive())
	assert.False(t, col.IsBursting())
	assert.False(t, col.IsPredictive())
	assert.True(t, col.WasPredicted())
	assert.True(t, col.Cell(2).WasActive())
	assert.Equal(t, 1.0, col.Boost())
}

func TestColumnLeastUsedCell(t *testing.T) {
	col := newColumn(0, 0, 0)
	assert.Same(t, col.cells[0], col.leastUsedCell())

	col.cells[0].CreateSegment()
	col.cells[2].CreateSegment()
	assert.Same(t, col.cells[1], col.leastUsedCell())

	col.cells[1].CreateSegment()
	col.cells[3].CreateSegment()
	assert.Same(t, col.cells[0], col.leastUsedCell())
}

func TestColumnBestMatchingCell(t *testing.T) {
	col := newColumn(0, 0, 0)
	cell, seg := col.bestMatchingCell()
	assert.Nil(t, cell)
	assert.Nil(t, seg)

	s1 := col.cells[1].CreateSegment()
	for _, src := range makeSources(3, false, true) {
		s1.AddSynapse(src, 0.1)
	}
	s3 := col.cells[3].CreateSegment()
	for _, src := range makeSources(4, false, true) {
		s3.AddSynapse(src, 0.1)
	}

	cell, seg = col.bestMatchingCell()
	assert.Same(t, col.cells[3], cell)
	assert.Same(t, s3, seg)

	s0 := col.cells[0].CreateSegment()
	for _, src := range makeSources(4, false, true) {
		s0.AddSynapse(src, 0.1)
	}
	cell, seg = col.bestMatchingCell()
	assert.Same(t, col.cells[0], cell)
	assert.Same(t, s0, seg)
}
