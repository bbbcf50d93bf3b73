package hashwires

import (
	"math/big"

	"github.com/hashwires/hashwires/hashfunc"
	"github.com/hashwires/hashwires/internal/chainhash"
	"github.com/hashwires/hashwires/internal/dp"
	"github.com/hashwires/hashwires/smt"
)

const seedLength = 32

// Secret holds the master seed and committed value an issuer generates
// for a holder (spec.md §3, §4.4). It is immutable after Gen and safe
// to share read-only across goroutines; Destroy best-effort zeroizes
// the seed once the Secret is no longer needed.
type Secret struct {
	seed [seedLength]byte
	v    *big.Int
	alg  hashfunc.Algorithm
}

// Gen stores a clone of seed and v. seed must be exactly 32 bytes and v
// must be non-negative; anything else is InvalidSeedLength or
// InvalidValue. No hashing happens here (spec.md §4.4).
func Gen(seed []byte, v *big.Int) (*Secret, error) {
	return GenWithAlgorithm(seed, v, hashfunc.SHA256)
}

// GenWithAlgorithm is Gen with an explicit hash backend selection
// (spec.md §6.1's "polymorphism over the hash function"); Gen defaults
// to SHA-256.
func GenWithAlgorithm(seed []byte, v *big.Int, alg hashfunc.Algorithm) (*Secret, error) {
	if len(seed) != seedLength {
		return nil, newError(InvalidSeedLength, "seed must be 32 bytes")
	}
	if v.Sign() < 0 {
		return nil, newError(InvalidValue, "v must be non-negative")
	}
	s := &Secret{v: new(big.Int).Set(v), alg: alg}
	copy(s.seed[:], seed)
	return s, nil
}

// Destroy best-effort zeroizes the master seed (spec.md §5 resource
// policy). Go offers no guarantee against a relocating GC or swapped
// pages; this is the same qualifier spec.md attaches to the guarantee.
func (s *Secret) Destroy() {
	for i := range s.seed {
		s.seed[i] = 0
	}
	if s.v != nil {
		s.v.SetInt64(0)
	}
}

// partition returns S(v,b) sorted ascending, and the digit width k for
// (b, n). Shared by Commit and Prove.
func (s *Secret) partition(p Params) ([]*big.Int, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}
	k := p.K()
	bound := dp.Pow(p.Base, k)
	if s.v.Cmp(bound) >= 0 {
		return nil, 0, newError(ValueExceedsMaxBits, "v exceeds b^k")
	}
	return dp.MDP(s.v, p.Base), k, nil
}

// plugOf computes a partition member's plug: chain every position seed
// by the member's digit count, then hash the concatenated tips under
// the plug domain tag (spec.md §4.2).
func plugOf(alg hashfunc.Algorithm, positionSeeds [][]byte, member *big.Int, base, k int) []byte {
	digits := dp.Digits(member, base, k)
	tips := make([][]byte, k)
	for i := 0; i < k; i++ {
		tips[i] = chainhash.Chain(alg, positionSeeds[i], digits[i])
	}
	return chainhash.Plug(alg, tips)
}

// Commit computes S(v,b), derives the position seeds, plugs every
// partition member into a fresh SMT, and returns the resulting root as
// a Commitment (spec.md §4.5).
func (s *Secret) Commit(b, n int) (*Commitment, error) {
	Logger.Debugf("hashwires: committing with base=%d maxBits=%d", b, n)
	p := Params{Base: b, MaxBits: n}
	members, k, err := s.partition(p)
	if err != nil {
		return nil, err
	}
	positionSeeds := chainhash.PositionSeeds(s.alg, s.seed[:], k)

	tree := smt.New(s.alg)
	for _, m := range members {
		tree.Insert(plugOf(s.alg, positionSeeds, m, b, k), presentValue)
	}
	return &Commitment{Root: tree.Root(), Base: b, MaxBits: n, alg: s.alg}, nil
}

// presentValue is the single fixed presence-marker byte the SMT stores
// at every plug key (spec.md §4.3: "values are a single fixed byte").
var presentValue = []byte{0x01}

// Prove selects the minimal member dominating t, reveals its partial
// seeds up to t's digits, and attaches the SMT inclusion path for its
// plug (spec.md §4.6).
func (s *Secret) Prove(b, n int, t *big.Int) (*Proof, error) {
	Logger.Debugf("hashwires: proving with base=%d maxBits=%d", b, n)
	p := Params{Base: b, MaxBits: n}
	members, k, err := s.partition(p)
	if err != nil {
		return nil, err
	}
	if t.Sign() < 0 {
		return nil, newError(InvalidValue, "t must be non-negative")
	}
	if t.Cmp(s.v) > 0 {
		return nil, newError(ThresholdExceedsValue, "t exceeds v")
	}
	bound := dp.Pow(b, k)
	if t.Cmp(bound) >= 0 {
		return nil, newError(ThresholdTooLarge, "t has more than k digits")
	}

	tDigits := dp.Digits(t, b, k)
	member, mDigits, err := selectMember(members, t, tDigits, b, k)
	if err != nil {
		return nil, err
	}

	positionSeeds := chainhash.PositionSeeds(s.alg, s.seed[:], k)
	partialSeeds := make([][]byte, k)
	for i := 0; i < k; i++ {
		partialSeeds[i] = chainhash.Chain(s.alg, positionSeeds[i], mDigits[i]-tDigits[i])
	}

	tree := smt.New(s.alg)
	var plug []byte
	for _, m := range members {
		memberPlug := plugOf(s.alg, positionSeeds, m, b, k)
		tree.Insert(memberPlug, presentValue)
		if m.Cmp(member) == 0 {
			plug = memberPlug
		}
	}
	path, err := tree.Prove(plug)
	if err != nil {
		return nil, wrapError(HashFailure, "smt proof generation failed", err)
	}

	return &Proof{PartialSeeds: partialSeeds, SMTPath: path, alg: s.alg}, nil
}

// selectMember implements spec.md §4.3's member-selection rule: the
// smallest m ∈ members with m ≥ t and t's digits dominated by m's
// digits. members is sorted ascending, so the first match is both the
// numerically and lexicographically smallest.
func selectMember(members []*big.Int, t *big.Int, tDigits []int, base, k int) (*big.Int, []int, error) {
	for _, m := range members {
		if m.Cmp(t) < 0 {
			continue
		}
		mDigits := dp.Digits(m, base, k)
		if dominates(mDigits, tDigits) {
			return m, mDigits, nil
		}
	}
	return nil, nil, newError(ThresholdExceedsValue, "no partition member dominates t")
}

// dominates reports whether every digit of t is ≤ the corresponding
// digit of m (spec.md §3's digit-wise partial order).
func dominates(m, t []int) bool {
	for i := range t {
		if t[i] > m[i] {
			return false
		}
	}
	return true
}
