// Package signed layers issuer integrity on top of a HashWires
// Commitment: spec.md §9 flags that the SMT root alone should not be
// trusted against a malicious issuer-holder pair, and leaves the exact
// signature mechanism unspecified. This follows the original
// implementation's own prototypes (genkey/sign/verify over the
// committed root with Ed25519) rather than ECDSA: (1) convenience
// functions for Ed25519 key handling and signing, and (2) functions for
// binding a signature to a Commitment's serialized bytes in an envelope
// that MarshalEnvelope CBOR-encodes and VerifyCommitment checks.
package signed

import (
	"crypto/ed25519"
	cryptorand "crypto/rand"
	"encoding/pem"

	"github.com/go-errors/errors"

	"github.com/hashwires/hashwires/cbor"
)

// Envelope is a commitment's serialized bytes together with an issuer's
// Ed25519 signature over them, CBOR-encoded deterministically.
type Envelope struct {
	Commitment []byte
	Signature  []byte
}

// GenerateKey returns a fresh Ed25519 keypair for signing commitments.
func GenerateKey() (ed25519.PublicKey, ed25519.PrivateKey, error) {
	return ed25519.GenerateKey(cryptorand.Reader)
}

// MarshalPemPrivateKey PEM-encodes an Ed25519 private key using a
// vendor-neutral "PRIVATE KEY" block, matching common Ed25519 PEM
// conventions.
func MarshalPemPrivateKey(sk ed25519.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: sk})
}

// UnmarshalPemPrivateKey parses a PEM block produced by
// MarshalPemPrivateKey.
func UnmarshalPemPrivateKey(bts []byte) (ed25519.PrivateKey, error) {
	block, _ := pem.Decode(bts)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	return ed25519.PrivateKey(block.Bytes), nil
}

// MarshalPemPublicKey PEM-encodes an Ed25519 public key.
func MarshalPemPublicKey(pk ed25519.PublicKey) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: pk})
}

// UnmarshalPemPublicKey parses a PEM block produced by
// MarshalPemPublicKey.
func UnmarshalPemPublicKey(bts []byte) (ed25519.PublicKey, error) {
	block, _ := pem.Decode(bts)
	if block == nil {
		return nil, errors.New("no PEM block found")
	}
	return ed25519.PublicKey(block.Bytes), nil
}

// SignCommitment signs the serialized bytes of a HashWires commitment
// and returns an envelope carrying both; MarshalEnvelope CBOR-encodes
// it. It does not change
// the commitment's own wire format (spec.md §6.2); holders and
// verifiers that trust the transport channel may ignore the envelope
// entirely.
func SignCommitment(sk ed25519.PrivateKey, commitmentBytes []byte) (Envelope, error) {
	sig := ed25519.Sign(sk, commitmentBytes)
	return Envelope{Commitment: commitmentBytes, Signature: sig}, nil
}

// MarshalEnvelope CBOR-encodes an Envelope for transport or storage.
func MarshalEnvelope(e Envelope) ([]byte, error) {
	return cbor.Marshal(&e)
}

// UnmarshalEnvelope decodes an Envelope CBOR-encoded by MarshalEnvelope.
func UnmarshalEnvelope(data []byte) (Envelope, error) {
	var e Envelope
	if err := cbor.Unmarshal(data, &e); err != nil {
		return Envelope{}, err
	}
	return e, nil
}

// VerifyCommitment checks the envelope's signature against pk and
// returns the serialized commitment bytes it covers on success.
func VerifyCommitment(pk ed25519.PublicKey, e Envelope) ([]byte, error) {
	if !ed25519.Verify(pk, e.Commitment, e.Signature) {
		return nil, errors.New("ed25519 signature was invalid")
	}
	return e.Commitment, nil
}
