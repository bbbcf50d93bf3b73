package hashwires

import (
	"encoding/binary"
	"math/big"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multihash"

	"github.com/hashwires/hashwires/hashfunc"
	"github.com/hashwires/hashwires/internal/chainhash"
	"github.com/hashwires/hashwires/internal/dp"
	"github.com/hashwires/hashwires/smt"
)

// Commitment is the SMT root an issuer publishes, together with the
// (base, max-bit-width) pair it was computed under (spec.md §3).
type Commitment struct {
	Root    []byte
	Base    int
	MaxBits int

	alg hashfunc.Algorithm
}

// multihashSHA256 and multihashBlake2b256 are the multicodecs ID() uses
// for each hashfunc.Algorithm; these are standard IPFS multihash codes,
// not HashWires-specific.
const (
	multihashSHA256    = 0x12
	multihashBlake2b256 = 0xb220
)

// ID returns a base58-encoded multihash content identifier for the
// commitment's root, convenient for logs and issuer bookkeeping. It
// plays no part in the wire format or in verification (SPEC_FULL.md §12).
func (c *Commitment) ID() (string, error) {
	code := uint64(multihashSHA256)
	if c.alg == hashfunc.BLAKE2b256 {
		code = multihashBlake2b256
	}
	mh, err := multihash.Encode(c.Root, code)
	if err != nil {
		return "", wrapError(HashFailure, "multihash encode failed", err)
	}
	return base58.Encode(mh), nil
}

// Serialize writes root_bytes(L) ‖ base_tag(1) ‖ max_bits(2, BE), per
// spec.md §6.2.
func (c *Commitment) Serialize() []byte {
	tag, err := baseTag(c.Base)
	if err != nil {
		// Base was already validated when this Commitment was produced.
		panic(err)
	}
	out := make([]byte, len(c.Root)+3)
	copy(out, c.Root)
	out[len(c.Root)] = tag
	binary.BigEndian.PutUint16(out[len(c.Root)+1:], uint16(c.MaxBits))
	return out
}

// DeserializeCommitment parses the bit-exact layout of spec.md §6.2.
// The hash algorithm is a deployment-wide choice, not part of the wire
// format (spec.md §6.1), so callers supply it explicitly.
func DeserializeCommitment(data []byte, alg hashfunc.Algorithm) (*Commitment, error) {
	l := hashfunc.Size
	if len(data) != l+3 {
		return nil, newError(MalformedCommitment, "unexpected length")
	}
	base, err := baseFromTag(data[l])
	if err != nil {
		return nil, newError(MalformedCommitment, "unrecognized base tag")
	}
	maxBits := int(binary.BigEndian.Uint16(data[l+1:]))
	root := make([]byte, l)
	copy(root, data[:l])
	return &Commitment{Root: root, Base: base, MaxBits: maxBits, alg: alg}, nil
}

// Verify re-derives the candidate plug from proof's partial seeds and
// t, then checks its SMT inclusion path against the commitment's root
// (spec.md §4.7). The holder's chosen partition member is never learned
// by the verifier.
func (c *Commitment) Verify(proof *Proof, t *big.Int) error {
	Logger.Debugf("hashwires: verifying with base=%d maxBits=%d", c.Base, c.MaxBits)
	p := Params{Base: c.Base, MaxBits: c.MaxBits}
	if err := p.Validate(); err != nil {
		return err
	}
	k := p.K()
	if t.Sign() < 0 {
		return newError(InvalidValue, "t must be non-negative")
	}
	bound := dp.Pow(c.Base, k)
	if t.Cmp(bound) >= 0 {
		return newError(ThresholdTooLarge, "t has more than k digits")
	}
	if len(proof.PartialSeeds) != k {
		return newError(MalformedProof, "partial seed count does not match k")
	}

	tDigits := dp.Digits(t, c.Base, k)
	tips := make([][]byte, k)
	for i := 0; i < k; i++ {
		tips[i] = chainhash.Chain(c.alg, proof.PartialSeeds[i], tDigits[i])
	}
	candidate := chainhash.Plug(c.alg, tips)

	ok := smt.Verify(c.alg, c.Root, candidate, presentValue, proof.SMTPath)
	if !ok {
		return newError(VerificationFailed, "smt inclusion check failed")
	}
	return nil
}
