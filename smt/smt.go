// Package smt implements the sparse Merkle tree primitive HashWires
// treats as an injected dependency (spec.md §4.3, §9): insert(key,
// value), root(), prove(key), and verify(root, key, value, path). No
// off-the-shelf pure-Go SMT is available among the referenced examples,
// so this follows spec.md §9's fallback: "a tree over 2^L-sized key
// space with path compression of all-zero branches."
//
// Height is fixed at hashfunc.Size*8 bits: keys are hash-function
// outputs (HashWires plugs), so the tree's depth is the digest's bit
// length, and most subtrees below any real leaf are empty.
package smt

import (
	"bytes"
	"errors"
	"sort"

	"github.com/hashwires/hashwires/hashfunc"
)

var (
	errNotFound  = errors.New("smt: key not found")
	errMalformed = errors.New("smt: malformed proof")
)

// Height is the tree depth in bits, i.e. the number of levels between
// the root and a leaf.
const Height = hashfunc.Size * 8

const (
	tagLeaf  byte = 0x01
	tagNode  byte = 0x02
	tagEmpty byte = 0x03
)

// Tree is a sparse Merkle tree over a fixed hash algorithm. It holds no
// state beyond its pending leaves: Root and Prove are pure functions of
// the leaf set, matching spec.md §3's "pure function of its inputs"
// ownership note.
type Tree struct {
	alg    hashfunc.Algorithm
	leaves map[string][]byte // hex-free raw key bytes -> value
	empty  [][]byte          // empty[h] = root of an empty subtree of height h
}

// New returns an empty tree using the given hash algorithm.
func New(alg hashfunc.Algorithm) *Tree {
	return &Tree{
		alg:    alg,
		leaves: make(map[string][]byte),
		empty:  emptyHashes(alg),
	}
}

func emptyHashes(alg hashfunc.Algorithm) [][]byte {
	out := make([][]byte, Height+1)
	h := hashfunc.New(alg)
	h.Write([]byte{tagEmpty})
	out[0] = h.Sum(nil)
	for i := 1; i <= Height; i++ {
		out[i] = nodeHash(alg, out[i-1], out[i-1])
	}
	return out
}

func leafHash(alg hashfunc.Algorithm, key, value []byte) []byte {
	h := hashfunc.New(alg)
	h.Write([]byte{tagLeaf})
	h.Write(key)
	h.Write(value)
	return h.Sum(nil)
}

func nodeHash(alg hashfunc.Algorithm, left, right []byte) []byte {
	h := hashfunc.New(alg)
	h.Write([]byte{tagNode})
	h.Write(left)
	h.Write(right)
	return h.Sum(nil)
}

// bit returns the bit at position pos (0 = most significant) of key.
func bit(key []byte, pos int) int {
	byteIdx := pos / 8
	bitIdx := 7 - (pos % 8)
	if byteIdx >= len(key) {
		return 0
	}
	return int((key[byteIdx] >> bitIdx) & 1)
}

type entry struct {
	key   []byte
	value []byte
}

// Insert records value under key, overwriting any previous value for
// the same key. Canonical tree shape follows from keys being content
// (the plug bytes themselves): insertion order never affects Root or
// Prove's output, so HashWires's "sort by plug before inserting"
// (spec.md §4.3) is satisfied by the tree itself and callers need not
// sort before calling Insert.
func (t *Tree) Insert(key, value []byte) {
	t.leaves[string(key)] = append([]byte(nil), value...)
}

func (t *Tree) sortedEntries() []entry {
	entries := make([]entry, 0, len(t.leaves))
	for k, v := range t.leaves {
		entries = append(entries, entry{key: []byte(k), value: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].key, entries[j].key) < 0
	})
	return entries
}

// Root returns the tree's root hash over all inserted leaves.
func (t *Tree) Root() []byte {
	return t.subtreeRoot(t.sortedEntries(), 0)
}

// subtreeRoot computes the root of the subtree rooted depth bits below
// the tree root, containing exactly the given (already key-sorted)
// entries.
func (t *Tree) subtreeRoot(entries []entry, depth int) []byte {
	if len(entries) == 0 {
		return t.empty[Height-depth]
	}
	if depth == Height {
		return leafHash(t.alg, entries[0].key, entries[0].value)
	}
	split := 0
	for split < len(entries) && bit(entries[split].key, depth) == 0 {
		split++
	}
	left := t.subtreeRoot(entries[:split], depth+1)
	right := t.subtreeRoot(entries[split:], depth+1)
	return nodeHash(t.alg, left, right)
}

// Proof is an SMT inclusion proof: the sibling hash at every level from
// leaf to root, compressed by omitting siblings that equal the
// canonical "empty subtree" hash at that level (reconstructed from the
// algorithm alone during verification).
type Proof struct {
	// Present[h] is true if Siblings holds an explicit (non-empty)
	// sibling for level h (h=0 at the leaf, h=Height-1 just below root).
	Present  []bool
	Siblings [][]byte
}

// Prove returns an inclusion proof for key, which must have been
// Insert-ed with some value.
func (t *Tree) Prove(key []byte) (*Proof, error) {
	value, ok := t.leaves[string(key)]
	if !ok {
		return nil, errNotFound
	}
	entries := t.sortedEntries()
	proof := &Proof{Present: make([]bool, Height), Siblings: nil}
	t.collectPath(entries, key, value, 0, proof)
	return proof, nil
}

func (t *Tree) collectPath(entries []entry, key, value []byte, depth int, proof *Proof) {
	if depth == Height {
		return
	}
	split := 0
	for split < len(entries) && bit(entries[split].key, depth) == 0 {
		split++
	}
	goLeft := bit(key, depth) == 0
	var siblingEntries, pathEntries []entry
	if goLeft {
		pathEntries, siblingEntries = entries[:split], entries[split:]
	} else {
		pathEntries, siblingEntries = entries[split:], entries[:split]
	}
	siblingRoot := t.subtreeRoot(siblingEntries, depth+1)
	level := Height - depth - 1
	if !bytes.Equal(siblingRoot, t.empty[Height-depth-1]) {
		proof.Present[level] = true
		proof.Siblings = append(proof.Siblings, siblingRoot)
	}
	t.collectPath(pathEntries, key, value, depth+1, proof)
}

// Verify reports whether path proves that key maps to value under root,
// for the given algorithm.
func Verify(alg hashfunc.Algorithm, root, key, value []byte, path *Proof) bool {
	empty := emptyHashes(alg)
	cur := leafHash(alg, key, value)
	siblingIdx := len(path.Siblings) - 1
	for level := 0; level < Height; level++ {
		depth := Height - level - 1
		var sibling []byte
		if path.Present[level] {
			if siblingIdx < 0 {
				return false
			}
			sibling = path.Siblings[siblingIdx]
			siblingIdx--
		} else {
			sibling = empty[level]
		}
		if bit(key, depth) == 0 {
			cur = nodeHash(alg, cur, sibling)
		} else {
			cur = nodeHash(alg, sibling, cur)
		}
	}
	if siblingIdx >= 0 {
		return false
	}
	return bytes.Equal(cur, root)
}

// Serialize encodes a Proof as a bitmap of present levels followed by
// the explicit sibling hashes, each hashfunc.Size bytes.
func (p *Proof) Serialize() []byte {
	bitmapLen := (Height + 7) / 8
	out := make([]byte, bitmapLen, bitmapLen+len(p.Siblings)*hashfunc.Size)
	for level, present := range p.Present {
		if present {
			out[level/8] |= 1 << uint(7-level%8)
		}
	}
	for _, s := range p.Siblings {
		out = append(out, s...)
	}
	return out
}

// Deserialize parses a Proof produced by Serialize.
func Deserialize(data []byte) (*Proof, error) {
	bitmapLen := (Height + 7) / 8
	if len(data) < bitmapLen {
		return nil, errMalformed
	}
	present := make([]bool, Height)
	count := 0
	for level := 0; level < Height; level++ {
		if data[level/8]&(1<<uint(7-level%8)) != 0 {
			present[level] = true
			count++
		}
	}
	rest := data[bitmapLen:]
	if len(rest) != count*hashfunc.Size {
		return nil, errMalformed
	}
	siblings := make([][]byte, count)
	for i := 0; i < count; i++ {
		siblings[i] = rest[i*hashfunc.Size : (i+1)*hashfunc.Size]
	}
	return &Proof{Present: present, Siblings: siblings}, nil
}
