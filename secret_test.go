package hashwires

import (
	"bytes"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSeed(b byte) []byte {
	return bytes.Repeat([]byte{b}, seedLength)
}

// Scenario 1 (spec.md §8): b=4, n=4, v=3, t=2 ⇒ verify Ok.
func TestScenarioSmallBase4(t *testing.T) {
	secret, err := Gen(testSeed(0x01), big.NewInt(3))
	require.NoError(t, err)

	cm, err := secret.Commit(4, 4)
	require.NoError(t, err)

	proof, err := secret.Prove(4, 4, big.NewInt(2))
	require.NoError(t, err)

	require.NoError(t, cm.Verify(proof, big.NewInt(2)))
}

// Scenario 3: b=16, n=32, v=0xDEAD, t=0xDEA0 ⇒ verify Ok.
func TestScenarioHexDominance(t *testing.T) {
	secret, err := Gen(testSeed(0x02), big.NewInt(0xDEAD))
	require.NoError(t, err)

	cm, err := secret.Commit(16, 32)
	require.NoError(t, err)

	proof, err := secret.Prove(16, 32, big.NewInt(0xDEA0))
	require.NoError(t, err)

	require.NoError(t, cm.Verify(proof, big.NewInt(0xDEA0)))
}

// Scenario 4: b=256, n=64, v=2^63, t=2^63 ⇒ verify Ok. The partition is
// {2^63-1, 2^63}; 2^63 itself is the only member ≥ t, so it is the one proved.
func TestScenarioByteBaseExactThreshold(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 63)

	secret, err := Gen(testSeed(0x03), v)
	require.NoError(t, err)

	cm, err := secret.Commit(256, 64)
	require.NoError(t, err)

	proof, err := secret.Prove(256, 64, v)
	require.NoError(t, err)

	require.NoError(t, cm.Verify(proof, v))
}

// Scenario 5: b=16, n=32, v=0xDEAD, t=0xDEAE ⇒ prove returns ThresholdExceedsValue.
func TestScenarioThresholdExceedsValue(t *testing.T) {
	secret, err := Gen(testSeed(0x04), big.NewInt(0xDEAD))
	require.NoError(t, err)

	_, err = secret.Prove(16, 32, big.NewInt(0xDEAE))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrThresholdExceedsValue)
}

// Scenario 6: b=2, n=8, v=181 (0b10110101), t=128 ⇒ verify Ok. The partition
// is {127, 159, 175, 179, 181}; the proving member is 159 (0b10011111), the
// smallest one whose bits dominate 128's.
func TestScenarioBinaryBase(t *testing.T) {
	secret, err := Gen(testSeed(0x05), big.NewInt(181))
	require.NoError(t, err)

	cm, err := secret.Commit(2, 8)
	require.NoError(t, err)

	proof, err := secret.Prove(2, 8, big.NewInt(128))
	require.NoError(t, err)

	require.NoError(t, cm.Verify(proof, big.NewInt(128)))
}

func TestSoundnessAcrossAllThresholds(t *testing.T) {
	v := int64(37)
	secret, err := Gen(testSeed(0x06), big.NewInt(v))
	require.NoError(t, err)

	cm, err := secret.Commit(4, 8)
	require.NoError(t, err)

	for t64 := int64(0); t64 <= v; t64++ {
		threshold := big.NewInt(t64)
		proof, err := secret.Prove(4, 8, threshold)
		require.NoErrorf(t, err, "t=%d", t64)
		require.NoErrorf(t, cm.Verify(proof, threshold), "t=%d", t64)
	}
}

func TestCompletenessUnderThreshold(t *testing.T) {
	secret, err := Gen(testSeed(0x07), big.NewInt(10))
	require.NoError(t, err)

	for _, tv := range []int64{11, 12, 255} {
		_, err := secret.Prove(4, 8, big.NewInt(tv))
		require.Errorf(t, err, "t=%d", tv)
		require.ErrorIs(t, err, ErrThresholdExceedsValue)
	}
}

func TestRejectionOfForgery(t *testing.T) {
	secret, err := Gen(testSeed(0x08), big.NewInt(42))
	require.NoError(t, err)

	cm, err := secret.Commit(4, 8)
	require.NoError(t, err)

	threshold := big.NewInt(20)
	proof, err := secret.Prove(4, 8, threshold)
	require.NoError(t, err)
	require.NoError(t, cm.Verify(proof, threshold))

	tampered := &Proof{
		PartialSeeds: append([][]byte{}, proof.PartialSeeds...),
		SMTPath:      proof.SMTPath,
		alg:          proof.alg,
	}
	tamperedSeed := append([]byte(nil), tampered.PartialSeeds[0]...)
	tamperedSeed[0] ^= 0xFF
	tampered.PartialSeeds[0] = tamperedSeed

	require.Error(t, cm.Verify(tampered, threshold))
}

func TestCommitDeterministic(t *testing.T) {
	seed := testSeed(0x09)
	s1, err := Gen(seed, big.NewInt(123))
	require.NoError(t, err)
	s2, err := Gen(seed, big.NewInt(123))
	require.NoError(t, err)

	c1, err := s1.Commit(16, 16)
	require.NoError(t, err)
	c2, err := s2.Commit(16, 16)
	require.NoError(t, err)

	require.Equal(t, c1.Serialize(), c2.Serialize())
}

func TestProveDeterministic(t *testing.T) {
	seed := testSeed(0x0A)
	s1, err := Gen(seed, big.NewInt(200))
	require.NoError(t, err)
	s2, err := Gen(seed, big.NewInt(200))
	require.NoError(t, err)

	p1, err := s1.Prove(16, 16, big.NewInt(150))
	require.NoError(t, err)
	p2, err := s2.Prove(16, 16, big.NewInt(150))
	require.NoError(t, err)

	require.Equal(t, p1.Serialize(), p2.Serialize())
}

func TestGenRejectsBadSeedLength(t *testing.T) {
	_, err := Gen([]byte{0x01, 0x02}, big.NewInt(1))
	require.ErrorIs(t, err, ErrInvalidSeedLength)
}

func TestGenRejectsNegativeValue(t *testing.T) {
	_, err := Gen(testSeed(0x0B), big.NewInt(-1))
	require.ErrorIs(t, err, ErrInvalidValue)
}

func TestCommitRejectsUnsupportedBase(t *testing.T) {
	secret, err := Gen(testSeed(0x0C), big.NewInt(5))
	require.NoError(t, err)
	_, err = secret.Commit(10, 8)
	require.ErrorIs(t, err, ErrUnsupportedBase)
}

func TestCommitRejectsValueExceedingMaxBits(t *testing.T) {
	secret, err := Gen(testSeed(0x0D), big.NewInt(256))
	require.NoError(t, err)
	_, err = secret.Commit(2, 8) // b^k = 256, v=256 is out of range
	require.ErrorIs(t, err, ErrValueExceedsMaxBits)
}

func TestBoundaryValueZero(t *testing.T) {
	secret, err := Gen(testSeed(0x0E), big.NewInt(0))
	require.NoError(t, err)

	cm, err := secret.Commit(4, 8)
	require.NoError(t, err)

	proof, err := secret.Prove(4, 8, big.NewInt(0))
	require.NoError(t, err)
	require.NoError(t, cm.Verify(proof, big.NewInt(0)))
}

func TestBoundaryMaxValue(t *testing.T) {
	// v = b^k - 1.
	secret, err := Gen(testSeed(0x0F), big.NewInt(255))
	require.NoError(t, err)

	cm, err := secret.Commit(2, 8)
	require.NoError(t, err)

	proof, err := secret.Prove(2, 8, big.NewInt(255))
	require.NoError(t, err)
	require.NoError(t, cm.Verify(proof, big.NewInt(255)))
}

func TestSecretDestroyZeroizesSeed(t *testing.T) {
	secret, err := Gen(testSeed(0xAB), big.NewInt(3))
	require.NoError(t, err)
	secret.Destroy()
	require.Equal(t, make([]byte, seedLength), secret.seed[:])
}
