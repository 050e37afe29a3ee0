package htm

import (
	"fmt"
	"log"
)

// Fixed model constants. Cells per column and the segment thresholds are
// part of the model, not tuning knobs.
const (
	CellsPerColumn = 4

	//If the number of active connected synapses on a segment is at least
	//this threshold, the segment is said to be active.
	ActivationThreshold = 5
	//If the number of previously active synapses on a segment (connected or
	//not) is at least this threshold, the segment is said to be matching.
	LearningThreshold = 3

	//If the permanence value for a synapse is at least this value, it is said
	//to be connected.
	ConnectedPermanence = 0.2
	PermanenceIncrement = 0.05
	PermanenceDecrement = 0.05
	PermanenceMin       = 0.0
	PermanenceMax       = 1.0

	//Permanence of synapses grown on a new distal segment
	InitialDistalPermanence = 0.3

	//Proximal synapses start either just above or well below the connected
	//threshold; ProximalConnectedPct of them start above.
	ProximalConnectedPermanence    = 0.3
	ProximalDisconnectedPermanence = 0.1
	ProximalConnectedPct           = 0.2

	// absorbs float drift from repeated +/- 0.05 steps
	permanenceEpsilon = 1e-9
)

/*
Params for initializing a region
*/
type RegionParams struct {
	//Column grid dimensions
	Width  int
	Height int
	//Probability that a column connects a proximal synapse to a given input bit
	PotentialPct float64
	//Fraction of columns active per tick, used when NumActiveColumns is 0
	LocalAreaDensity float64
	//Exact number of active columns per tick, overrides LocalAreaDensity
	NumActiveColumns int
	//Minimum number of connected active proximal synapses for a column to
	//score a non-zero overlap
	StimulusThreshold int
	//Window of the active duty cycle moving average
	DutyCyclePeriod int
	//A column whose duty cycle is below this fraction of the region's highest
	//duty cycle is a boosting candidate
	MinPctActiveDutyCycles float64
	//Boost factors are revised every UpdatePeriod ticks
	UpdatePeriod int
	MaxBoost     float64
	BoostStep    float64
	//A winning column whose duty cycle exceeds OveractiveFactor times the
	//target density has its boost lowered
	OveractiveFactor float64
	//The maximum number of synapses added to a new segment. 0 means every
	//previous learning cell.
	MaxNewSynapseCount int
	//Whether correctly predicted cells also become learning cells
	LearnOnPredicted bool
	//Number of ticks after a reset that are left out of the accumulated stats
	BurnIn int
	//rand seed
	Seed int64

	Verbosity int
	Logger    *log.Logger
}

func NewRegionParams() *RegionParams {
	p := new(RegionParams)
	p.Width = 32
	p.Height = 32
	p.PotentialPct = 0.5
	p.LocalAreaDensity = 0.02
	p.StimulusThreshold = 2
	p.DutyCyclePeriod = 100
	p.MinPctActiveDutyCycles = 0.01
	p.UpdatePeriod = 50
	p.MaxBoost = 3.0
	p.BoostStep = 0.1
	p.OveractiveFactor = 4.0
	p.Seed = 42
	return p
}

func (p *RegionParams) validate() error {
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidDimensions, p.Width, p.Height)
	}
	if p.PotentialPct < 0 || p.PotentialPct > 1 {
		return fmt.Errorf("%w: potentialPct must be in [0,1], got %v", ErrInvalidParams, p.PotentialPct)
	}
	if p.NumActiveColumns < 0 {
		return fmt.Errorf("%w: numActiveColumns must not be negative, got %v", ErrInvalidParams, p.NumActiveColumns)
	}
	if p.NumActiveColumns == 0 && (p.LocalAreaDensity <= 0 || p.LocalAreaDensity > 1) {
		return fmt.Errorf("%w: localAreaDensity must be in (0,1], got %v", ErrInvalidParams, p.LocalAreaDensity)
	}
	if p.DutyCyclePeriod <= 0 {
		return fmt.Errorf("%w: dutyCyclePeriod must be positive, got %v", ErrInvalidParams, p.DutyCyclePeriod)
	}
	if p.UpdatePeriod <= 0 {
		return fmt.Errorf("%w: updatePeriod must be positive, got %v", ErrInvalidParams, p.UpdatePeriod)
	}
	if p.MaxBoost < 1.0 {
		return fmt.Errorf("%w: maxBoost must be at least 1, got %v", ErrInvalidParams, p.MaxBoost)
	}
	if p.BurnIn < 0 {
		return fmt.Errorf("%w: burnIn must not be negative, got %v", ErrInvalidParams, p.BurnIn)
	}
	if p.MaxNewSynapseCount < 0 {
		return fmt.Errorf("%w: maxNewSynapseCount must not be negative, got %v", ErrInvalidParams, p.MaxNewSynapseCount)
	}
	// a segment capped below the threshold can never become active
	if p.MaxNewSynapseCount > 0 && p.MaxNewSynapseCount < ActivationThreshold {
		return fmt.Errorf("%w: maxNewSynapseCount %v is below the activation threshold %v",
			ErrInvalidParams, p.MaxNewSynapseCount, ActivationThreshold)
	}
	return nil
}
