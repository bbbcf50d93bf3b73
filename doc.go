// Package hashwires implements HashWires, a hash-based, non-pairing
// credential range proof: an issuer commits to a secret value v, and a
// holder later proves v ≥ t for a verifier-chosen threshold t without
// revealing v, using only a collision-resistant hash function.
//
// The core pipeline is a minimum dominating partition of v into base-b
// numerals (package internal/dp), a per-digit hash-chain layer with
// domain-separated "plugs" (internal/chainhash), and a sparse Merkle
// tree committing to those plugs (package smt). Secret, Commitment, and
// Proof in this package expose gen/commit/prove/verify over that
// pipeline; see secret.go, commitment.go, and proof.go.
package hashwires
