package hashwires

// Params bundles a validated (base, max-bit-width) pair, the two knobs
// every operation in this package is parametric over (spec.md §6.3).
// Construct one with NewParams or use one of the named presets below;
// Commit/Prove/Verify all funnel through Validate so the checks of
// spec.md §4.5 step 1 live in exactly one place.
type Params struct {
	Base    int
	MaxBits int
}

// Named presets for the four supported bases at common bit widths,
// sparing callers from hand-deriving valid (b, n) combinations.
var (
	Params2x64    = Params{Base: 2, MaxBits: 64}
	Params2x256   = Params{Base: 2, MaxBits: 256}
	Params4x64    = Params{Base: 4, MaxBits: 64}
	Params4x128   = Params{Base: 4, MaxBits: 128}
	Params16x64   = Params{Base: 16, MaxBits: 64}
	Params16x256  = Params{Base: 16, MaxBits: 256}
	Params256x64  = Params{Base: 256, MaxBits: 64}
	Params256x256 = Params{Base: 256, MaxBits: 256}
)

// NewParams validates (base, maxBits) eagerly and returns a Params ready
// for Commit/Prove/Verify, or the taxonomy error spec.md §4.5 step 1
// names for the first check that fails.
func NewParams(base, maxBits int) (Params, error) {
	p := Params{Base: base, MaxBits: maxBits}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}

// Validate checks b ∈ {2,4,16,256} and that n is a positive multiple of
// log2(b), per spec.md §4.5 step 1 and §6.3.
func (p Params) Validate() error {
	if _, err := log2Base(p.Base); err != nil {
		return err
	}
	bits, _ := log2Base(p.Base)
	if p.MaxBits <= 0 || p.MaxBits%bits != 0 {
		return newError(InvalidBitWidth, "n must be a positive multiple of log2(b)")
	}
	return nil
}

// K returns n / log2(b), the number of base-b digit positions. Callers
// must have validated p first; K panics if Base is unsupported and does
// not check MaxBits.
func (p Params) K() int {
	bits, err := log2Base(p.Base)
	if err != nil {
		panic(err)
	}
	return p.MaxBits / bits
}

// log2Base returns the number of bits represented by one base-b digit,
// or UnsupportedBase if b is outside {2,4,16,256}.
func log2Base(base int) (int, error) {
	switch base {
	case 2:
		return 1, nil
	case 4:
		return 2, nil
	case 16:
		return 4, nil
	case 256:
		return 8, nil
	default:
		return 0, newError(UnsupportedBase, "base must be one of {2,4,16,256}")
	}
}

// baseTag encodes base as the 1-byte wire tag of spec.md §6.2.
func baseTag(base int) (byte, error) {
	switch base {
	case 2:
		return 0, nil
	case 4:
		return 1, nil
	case 16:
		return 2, nil
	case 256:
		return 3, nil
	default:
		return 0, newError(UnsupportedBase, "base must be one of {2,4,16,256}")
	}
}

// baseFromTag is baseTag's inverse, used when deserializing a Commitment.
func baseFromTag(tag byte) (int, error) {
	switch tag {
	case 0:
		return 2, nil
	case 1:
		return 4, nil
	case 2:
		return 16, nil
	case 3:
		return 256, nil
	default:
		return 0, newError(UnsupportedBase, "unrecognized base tag")
	}
}
