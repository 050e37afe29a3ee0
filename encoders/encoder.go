package encoders

/*
 A symbol encoder takes a discrete symbol and encodes it with a sparse
representation of bits. Encoding the same symbol twice yields the same
pattern for the lifetime of the encoder.
*/
type Encoder interface {
	//Width in bits
	Width() int
	Encode(symbol string) SDR
	Decode(activeIndices []int) Decoded
	Name() string
}

//Result of matching a set of active input bits against known symbols
type Decoded struct {
	Symbol string
	//Fraction of the symbol's on bits present in the active set
	Confidence float64
	Overlap    int
}

//True when some known symbol overlapped the active bits
func (d Decoded) Found() bool {
	return d.Overlap > 0
}
