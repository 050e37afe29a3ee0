package encoders

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/cznic/mathutil"
)

const maxEncodeAttempts = 100

/*
	Params for the symbol encoder
*/
type SymbolEncoderParams struct {
	//Output length in bits
	Width int
	//Fraction of bits on per pattern
	Density float64
	//Patterns whose shared on bits exceed this fraction of the on bit count
	//are redrawn, within maxEncodeAttempts
	MaxOverlapPct float64
	Seed          int64
	Name          string
}

func NewSymbolEncoderParams() *SymbolEncoderParams {
	p := new(SymbolEncoderParams)

	//set defaults
	p.Width = 64
	p.Density = 0.15
	p.MaxOverlapPct = 0.5
	p.Seed = 42
	p.Name = "symbol"

	return p
}

/*
 Symbol encoder maps discrete symbols (characters, tokens) to random
sparse patterns. Patterns are generated on first use and cached, so the
mapping is stable for the lifetime of the encoder. Symbols are remembered
in the order they were first encoded; Decode resolves ties in that order.
*/
type SymbolEncoder struct {
	SymbolEncoderParams
	onBits   int
	rnd      *rand.Rand
	patterns map[string]SDR
	symbols  []string
}

func NewSymbolEncoder(p SymbolEncoderParams) (*SymbolEncoder, error) {
	if p.Width <= 0 {
		return nil, fmt.Errorf("encoder width must be positive, got %d", p.Width)
	}
	if p.Density <= 0 || p.Density > 1 {
		return nil, fmt.Errorf("encoder density must be in (0,1], got %v", p.Density)
	}

	e := new(SymbolEncoder)
	e.SymbolEncoderParams = p
	e.onBits = mathutil.Min(p.Width, mathutil.Max(1, int(math.Round(float64(p.Width)*p.Density))))
	e.rnd = rand.New(rand.NewSource(p.Seed))
	e.patterns = make(map[string]SDR)
	return e, nil
}

func (e *SymbolEncoder) Width() int {
	return e.SymbolEncoderParams.Width
}

//Number of on bits in every generated pattern
func (e *SymbolEncoder) OnBits() int {
	return e.onBits
}

func (e *SymbolEncoder) Name() string {
	return fmt.Sprintf("%v[%v:%v]", e.SymbolEncoderParams.Name, e.SymbolEncoderParams.Width, e.onBits)
}

//Symbols encoded so far, in first-seen order
func (e *SymbolEncoder) Symbols() []string {
	result := make([]string, len(e.symbols))
	copy(result, e.symbols)
	return result
}

//Returns the cached pattern for symbol, generating it on first use
func (e *SymbolEncoder) Encode(symbol string) SDR {
	if sdr, ok := e.patterns[symbol]; ok {
		return sdr
	}

	sdr := e.generate()
	e.patterns[symbol] = sdr
	e.symbols = append(e.symbols, symbol)
	return sdr
}

//Convenience wrapper returning a dense copy of the pattern
func (e *SymbolEncoder) EncodeIntoArray(symbol string) []bool {
	return e.Encode(symbol).Slice()
}

/*
 Draws candidate patterns until one is distinguishable from every cached
pattern. A candidate identical to a cached pattern is never kept while
attempts remain; after maxEncodeAttempts the least overlapping
non-identical candidate wins.
*/
func (e *SymbolEncoder) generate() SDR {
	maxOverlap := int(e.MaxOverlapPct * float64(e.onBits))

	var best SDR
	bestOverlap := -1
	for attempt := 0; attempt < maxEncodeAttempts; attempt++ {
		candidate := SDRFromIndices(e.SymbolEncoderParams.Width, e.rnd.Perm(e.SymbolEncoderParams.Width)[:e.onBits])

		worst := 0
		duplicate := false
		for _, sym := range e.symbols {
			existing := e.patterns[sym]
			if existing.Equals(candidate) {
				duplicate = true
				break
			}
			worst = mathutil.Max(worst, existing.Overlap(candidate))
		}
		if duplicate {
			continue
		}
		if worst <= maxOverlap {
			return candidate
		}
		if bestOverlap < 0 || worst < bestOverlap {
			best = candidate
			bestOverlap = worst
		}
	}

	if bestOverlap < 0 {
		//every draw collided, the symbol space is exhausted
		return SDRFromIndices(e.SymbolEncoderParams.Width, e.rnd.Perm(e.SymbolEncoderParams.Width)[:e.onBits])
	}
	return best
}

/*
 Returns the known symbol whose pattern shares the most bits with the
given active input indices. Duplicate indices are counted once.
*/
func (e *SymbolEncoder) Decode(activeIndices []int) Decoded {
	if len(activeIndices) == 0 || len(e.symbols) == 0 {
		return Decoded{}
	}

	active := SDRFromIndices(e.SymbolEncoderParams.Width, activeIndices)

	result := Decoded{}
	for _, sym := range e.symbols {
		sdr := e.patterns[sym]
		overlap := sdr.Overlap(active)
		if overlap > result.Overlap {
			total := sdr.OnBits()
			result = Decoded{Symbol: sym, Overlap: overlap}
			if total > 0 {
				result.Confidence = float64(overlap) / float64(total)
			}
		}
	}

	return result
}

//Ranks every known symbol by overlap with the active indices, best first
func (e *SymbolEncoder) TopDecodes(activeIndices []int, n int) []Decoded {
	active := SDRFromIndices(e.SymbolEncoderParams.Width, activeIndices)

	results := make([]Decoded, 0, len(e.symbols))
	for _, sym := range e.symbols {
		sdr := e.patterns[sym]
		overlap := sdr.Overlap(active)
		if overlap == 0 {
			continue
		}
		results = append(results, Decoded{
			Symbol:     sym,
			Overlap:    overlap,
			Confidence: float64(overlap) / float64(mathutil.Max(1, sdr.OnBits())),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Overlap > results[j].Overlap
	})

	if n >= 0 && len(results) > n {
		results = results[:n]
	}
	return results
}
