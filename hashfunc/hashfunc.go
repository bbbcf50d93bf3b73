// Package hashfunc exposes the HashWires core's only external
// cryptographic dependency: a collision-resistant hash function with a
// fixed output size, expressed as the capability set {new, update,
// finalize} rather than a concrete algorithm. The core is tested with
// two 256-bit backends.
package hashfunc

import (
	"hash"

	"github.com/minio/blake2b-simd"
	sha256simd "github.com/minio/sha256-simd"
)

// Algorithm identifies one of the backing hash implementations available
// to the core. Every algorithm in this set produces a 256-bit digest;
// Size documents that invariant rather than deriving it per call.
type Algorithm int

const (
	// SHA256 selects github.com/minio/sha256-simd's accelerated SHA-256.
	SHA256 Algorithm = iota
	// BLAKE2b256 selects github.com/minio/blake2b-simd's BLAKE2b-256.
	BLAKE2b256
)

// Size is the digest length, in bytes, shared by every Algorithm in this
// package. Callers that need L per spec.md §6.1 use this constant.
const Size = 32

// New returns a fresh hash.Hash for the given algorithm. The returned
// value satisfies the {new, update via Write, finalize via Sum} capability
// set spec.md §6.1 requires of the hash function dependency.
func New(alg Algorithm) hash.Hash {
	switch alg {
	case BLAKE2b256:
		return blake2b.New256()
	case SHA256:
		fallthrough
	default:
		return sha256simd.New()
	}
}

// Sum hashes data in one call and returns its Size-byte digest.
func Sum(alg Algorithm, data []byte) []byte {
	h := New(alg)
	h.Write(data)
	return h.Sum(nil)
}
