// Package chainhash implements the per-digit hash-chain layer of
// spec.md §4.2: position-seed derivation, chain hashing, and the
// domain-separated "plug" that binds a partition member's chain tips.
// Grounded on _examples/original_source/src/hashes.rs (generate_subseeds,
// hash_chain) and the Go prototype's getSeedChain/PowerHash
// (_examples/original_source/go/octopus/octopus.go, hashchain.go).
package chainhash

import (
	"encoding/binary"

	"github.com/hashwires/hashwires/hashfunc"
)

// Domain-separation tags, one per layer, per spec.md §9's requirement
// that position-seed derivation, chain hashing, and plug hashing never
// share an input space.
const (
	tagPosition byte = 0x01
	tagChain    byte = 0x02
	tagPlug     byte = 0x03
)

// PositionSeeds derives k independent position seeds from the 32-byte
// master seed. Derivation is pure, deterministic, and depends only on
// the position index and the master seed, never on the base.
func PositionSeeds(alg hashfunc.Algorithm, masterSeed []byte, k int) [][]byte {
	seeds := make([][]byte, k)
	var idx [8]byte
	for i := 0; i < k; i++ {
		binary.BigEndian.PutUint64(idx[:], uint64(i))
		h := hashfunc.New(alg)
		h.Write([]byte{tagPosition})
		h.Write(idx[:])
		h.Write(masterSeed)
		seeds[i] = h.Sum(nil)
	}
	return seeds
}

// Chain applies the hash function to seed iterations times, returning
// seed itself when iterations is zero. Each step is domain-separated
// from plug hashing via tagChain.
func Chain(alg hashfunc.Algorithm, seed []byte, iterations int) []byte {
	out := make([]byte, len(seed))
	copy(out, seed)
	for i := 0; i < iterations; i++ {
		h := hashfunc.New(alg)
		h.Write([]byte{tagChain})
		h.Write(out)
		out = h.Sum(nil)
	}
	return out
}

// Plug concatenates the per-position chain tips and hashes them once
// more under a distinct domain tag, producing a partition member's plug
// (the SMT leaf key).
func Plug(alg hashfunc.Algorithm, tips [][]byte) []byte {
	h := hashfunc.New(alg)
	h.Write([]byte{tagPlug})
	for _, t := range tips {
		h.Write(t)
	}
	return h.Sum(nil)
}
