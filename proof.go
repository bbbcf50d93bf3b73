package hashwires

import (
	"encoding/binary"

	"github.com/hashwires/hashwires/hashfunc"
	"github.com/hashwires/hashwires/smt"
)

// Proof is the holder's non-interactive proof that the committed value
// dominates some threshold t (spec.md §3). t itself is never embedded;
// it is supplied out-of-band by the verifier at Verify time.
type Proof struct {
	PartialSeeds [][]byte
	SMTPath      *smt.Proof

	alg hashfunc.Algorithm
}

// Serialize writes k(2, BE) ‖ partial_seeds(k×L) ‖ smt_path_len(2, BE)
// ‖ smt_path, per spec.md §6.2.
func (p *Proof) Serialize() []byte {
	l := hashfunc.Size
	k := len(p.PartialSeeds)
	path := p.SMTPath.Serialize()

	out := make([]byte, 2+k*l+2+len(path))
	binary.BigEndian.PutUint16(out[0:2], uint16(k))
	for i, seed := range p.PartialSeeds {
		copy(out[2+i*l:], seed)
	}
	off := 2 + k*l
	binary.BigEndian.PutUint16(out[off:off+2], uint16(len(path)))
	copy(out[off+2:], path)
	return out
}

// DeserializeProof parses the bit-exact layout of spec.md §6.2. expectedK
// is the k = n / log2(b) derived from the companion Commitment's (base,
// maxBits); a mismatch is MalformedProof, as spec.md §6.2 requires.
func DeserializeProof(data []byte, expectedK int, alg hashfunc.Algorithm) (*Proof, error) {
	l := hashfunc.Size
	if len(data) < 2 {
		return nil, newError(MalformedProof, "truncated proof")
	}
	k := int(binary.BigEndian.Uint16(data[0:2]))
	if k != expectedK {
		return nil, newError(MalformedProof, "k does not match companion commitment")
	}
	need := 2 + k*l + 2
	if len(data) < need {
		return nil, newError(MalformedProof, "truncated proof")
	}
	seeds := make([][]byte, k)
	for i := 0; i < k; i++ {
		seed := make([]byte, l)
		copy(seed, data[2+i*l:2+(i+1)*l])
		seeds[i] = seed
	}
	off := 2 + k*l
	pathLen := int(binary.BigEndian.Uint16(data[off : off+2]))
	if len(data) != off+2+pathLen {
		return nil, newError(MalformedProof, "smt path length mismatch")
	}
	path, err := smt.Deserialize(data[off+2:])
	if err != nil {
		return nil, wrapError(MalformedProof, "smt path decode failed", err)
	}
	return &Proof{PartialSeeds: seeds, SMTPath: path, alg: alg}, nil
}
