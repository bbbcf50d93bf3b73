package smt

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hashwires/hashwires/hashfunc"
)

func TestRootDeterministicRegardlessOfInsertOrder(t *testing.T) {
	keys := [][]byte{
		[]byte("plug-aaaa"),
		[]byte("plug-bbbb"),
		[]byte("plug-cccc"),
	}
	value := []byte{0x01}

	t1 := New(hashfunc.SHA256)
	for _, k := range keys {
		t1.Insert(k, value)
	}

	t2 := New(hashfunc.SHA256)
	for i := len(keys) - 1; i >= 0; i-- {
		t2.Insert(keys[i], value)
	}

	require.Equal(t, t1.Root(), t2.Root())
}

func TestEmptyTreeRootIsStable(t *testing.T) {
	a := New(hashfunc.SHA256).Root()
	b := New(hashfunc.SHA256).Root()
	require.Equal(t, a, b)
}

func TestProveVerifyRoundTrip(t *testing.T) {
	value := []byte{0x01}
	keys := [][]byte{
		[]byte("plug-one-------------------------"),
		[]byte("plug-two-------------------------"),
		[]byte("plug-three-----------------------"),
	}

	tree := New(hashfunc.SHA256)
	for _, k := range keys {
		tree.Insert(k, value)
	}
	root := tree.Root()

	for _, k := range keys {
		path, err := tree.Prove(k)
		require.NoError(t, err)
		require.True(t, Verify(hashfunc.SHA256, root, k, value, path))
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	value := []byte{0x01}
	present := []byte("plug-present---------------------")
	absent := []byte("plug-absent----------------------")

	tree := New(hashfunc.SHA256)
	tree.Insert(present, value)
	root := tree.Root()

	path, err := tree.Prove(present)
	require.NoError(t, err)
	require.False(t, Verify(hashfunc.SHA256, root, absent, value, path))
}

func TestVerifyRejectsTamperedRoot(t *testing.T) {
	value := []byte{0x01}
	key := []byte("plug-key--------------------------")

	tree := New(hashfunc.SHA256)
	tree.Insert(key, value)
	root := tree.Root()
	path, err := tree.Prove(key)
	require.NoError(t, err)

	tampered := append([]byte(nil), root...)
	tampered[0] ^= 0xFF
	require.False(t, Verify(hashfunc.SHA256, tampered, key, value, path))
}

func TestProveUnknownKeyFails(t *testing.T) {
	tree := New(hashfunc.SHA256)
	tree.Insert([]byte("known"), []byte{0x01})
	_, err := tree.Prove([]byte("unknown"))
	require.Error(t, err)
}

func TestProofSerializeRoundTrip(t *testing.T) {
	value := []byte{0x01}
	keys := [][]byte{
		[]byte("plug-alpha------------------------"),
		[]byte("plug-beta-------------------------"),
	}
	tree := New(hashfunc.SHA256)
	for _, k := range keys {
		tree.Insert(k, value)
	}
	root := tree.Root()

	path, err := tree.Prove(keys[0])
	require.NoError(t, err)

	data := path.Serialize()
	decoded, err := Deserialize(data)
	require.NoError(t, err)

	require.Equal(t, path.Present, decoded.Present)
	require.Equal(t, path.Siblings, decoded.Siblings)
	require.True(t, Verify(hashfunc.SHA256, root, keys[0], value, decoded))
}

func TestDeserializeRejectsTruncatedData(t *testing.T) {
	_, err := Deserialize([]byte{0x01, 0x02})
	require.Error(t, err)
}
