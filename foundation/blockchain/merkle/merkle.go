// Package merkle provides the merkle tree the ledger uses to anchor the
// transaction set of a block and to prove a transaction is part of it.
package merkle

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Set of errors the tree can return.
var (
	ErrEmptyInput    = errors.New("cannot construct tree with no content")
	ErrLeafNotFound  = errors.New("unable to find data in tree")
	ErrDepthExceeded = errors.New("tree depth bound exceeded")
)

// maxDepth bounds the number of levels the build recursion will produce.
// A depth of 20 supports over a million leaves, far beyond any realistic
// block size.
const maxDepth = 20

// Hashable represents the behavior concrete data must exhibit to be used
// in the merkle tree.
type Hashable[T any] interface {
	Hash() ([]byte, error)
	Equals(other T) bool
}

// =============================================================================

// Tree represents a merkle tree that uses data of some type T that exhibits
// the behavior defined by the Hashable constraint. The tree is immutable
// once constructed; a changed data set requires a new tree.
type Tree[T Hashable[T]] struct {
	Root         *Node[T]
	Leafs        []*Node[T]
	MerkleRoot   []byte
	hashStrategy func() hash.Hash
}

// WithHashStrategy is used to change the default hash strategy of using
// sha256 when constructing a new tree.
func WithHashStrategy[T Hashable[T]](hashStrategy func() hash.Hash) func(t *Tree[T]) {
	return func(t *Tree[T]) {
		t.hashStrategy = hashStrategy
	}
}

// NewTree constructs a new merkle tree from the ordered set of values.
func NewTree[T Hashable[T]](values []T, options ...func(t *Tree[T])) (*Tree[T], error) {
	var defaultHashStrategy = sha256.New

	t := Tree[T]{
		hashStrategy: defaultHashStrategy,
	}

	for _, option := range options {
		option(&t)
	}

	if err := t.generate(values); err != nil {
		return nil, err
	}

	return &t, nil
}

// generate constructs the leafs and nodes of the tree from the specified
// data. If the number of leafs is odd, the last leaf is duplicated and
// flagged so every level pairs evenly.
func (t *Tree[T]) generate(values []T) error {
	if len(values) == 0 {
		return ErrEmptyInput
	}

	var leafs []*Node[T]
	for _, value := range values {
		hash, err := value.Hash()
		if err != nil {
			return err
		}

		leafs = append(leafs, &Node[T]{
			Hash:   hash,
			Value:  value,
			IsLeaf: true,
			Tree:   t,
		})
	}

	if len(leafs)%2 == 1 {
		duplicate := &Node[T]{
			Hash:   leafs[len(leafs)-1].Hash,
			Value:  leafs[len(leafs)-1].Value,
			IsLeaf: true,
			IsDup:  true,
			Tree:   t,
		}
		leafs = append(leafs, duplicate)
	}

	root, err := buildIntermediate(leafs, t, 1)
	if err != nil {
		return err
	}

	t.Root = root
	t.Leafs = leafs
	t.MerkleRoot = root.Hash

	return nil
}

// Proof returns the set of sibling hashes and the order of concatenating
// those hashes for proving a value is in the tree. An order of 0 means the
// proof hash is concatenated first, 1 means second. The order is recorded
// from the node's position in the tree, so folding the value's hash with
// the proof in order reproduces the merkle root.
func (t *Tree[T]) Proof(data T) ([][]byte, []int64, error) {
	for _, node := range t.Leafs {
		if !node.Value.Equals(data) {
			continue
		}

		var merkleProof [][]byte
		var order []int64
		nodeParent := node.Parent

		for nodeParent != nil {
			if bytes.Equal(nodeParent.Left.Hash, node.Hash) {
				merkleProof = append(merkleProof, nodeParent.Right.Hash)
				order = append(order, 1) // right sibling, concat second.
			} else {
				merkleProof = append(merkleProof, nodeParent.Left.Hash)
				order = append(order, 0) // left sibling, concat first.
			}
			node = nodeParent
			nodeParent = nodeParent.Parent
		}

		return merkleProof, order, nil
	}

	return nil, nil, ErrLeafNotFound
}

// Verify validates the hashes at each level of the tree and returns an
// error if the resulting root hash doesn't match the stored merkle root.
func (t *Tree[T]) Verify() error {
	calculatedMerkleRoot, err := t.Root.verify()
	if err != nil {
		return err
	}

	if !bytes.Equal(t.MerkleRoot, calculatedMerkleRoot) {
		return errors.New("root hash invalid")
	}

	return nil
}

// Values returns a slice of unique values stored in the tree. A duplicate
// padding leaf is not included.
func (t *Tree[T]) Values() []T {
	var values []T
	for _, node := range t.Leafs {
		if node.IsDup {
			continue
		}
		values = append(values, node.Value)
	}

	return values
}

// Levels returns the nodes of the tree level by level, starting with the
// root at level 0. This layout is what the persistence store records.
func (t *Tree[T]) Levels() [][]*Node[T] {
	levels := [][]*Node[T]{{t.Root}}

	for {
		last := levels[len(levels)-1]

		var next []*Node[T]
		for _, node := range last {
			if node.Left != nil {
				next = append(next, node.Left, node.Right)
			}
		}

		if len(next) == 0 {
			return levels
		}
		levels = append(levels, next)
	}
}

// RootHex converts the merkle root byte hash to a hex encoded string.
func (t *Tree[T]) RootHex() string {
	return hexutil.Encode(t.MerkleRoot)
}

// String returns a string representation of the tree. Only leaf nodes are
// included in the output.
func (t *Tree[T]) String() string {
	s := ""

	for _, l := range t.Leafs {
		s += fmt.Sprint(l)
		s += "\n"
	}

	return s
}

// MarshalText implements the TextMarshaler interface and produces a panic
// if anyone tries to marshal the merkle tree. Use the Values function to
// return a slice that can be marshaled.
func (t *Tree[T]) MarshalText() (text []byte, err error) {
	panic("do not marshal the merkle tree, use Values")
}

// =============================================================================

// VerifyProof folds the specified leaf hash with each proof element in
// order and reports whether the result equals the expected merkle root.
// The hashStrategy may be nil to use sha256.
func VerifyProof(leafHash []byte, proof [][]byte, order []int64, merkleRoot []byte, hashStrategy func() hash.Hash) (bool, error) {
	if len(proof) != len(order) {
		return false, errors.New("proof and order lengths do not match")
	}

	if hashStrategy == nil {
		hashStrategy = sha256.New
	}

	current := leafHash
	for i, sibling := range proof {
		h := hashStrategy()

		var chash []byte
		switch order[i] {
		case 0:
			chash = append(chash, sibling...)
			chash = append(chash, current...)
		default:
			chash = append(chash, current...)
			chash = append(chash, sibling...)
		}

		if _, err := h.Write(chash); err != nil {
			return false, err
		}
		current = h.Sum(nil)
	}

	return bytes.Equal(current, merkleRoot), nil
}

// =============================================================================

// Node represents a node, root, or leaf in the tree. It stores pointers to
// its immediate children, a hash, the data if it is a leaf, and a flag for
// leaves synthesized to pad an odd level.
type Node[T Hashable[T]] struct {
	Tree   *Tree[T]
	Parent *Node[T]
	Left   *Node[T]
	Right  *Node[T]
	Hash   []byte
	Value  T
	IsLeaf bool
	IsDup  bool
}

// verify walks down the tree until hitting a leaf, calculating the hash at
// each level and returning the resulting hash of the node.
func (n *Node[T]) verify() ([]byte, error) {
	if n.IsLeaf {
		return n.Value.Hash()
	}

	rightBytes, err := n.Right.verify()
	if err != nil {
		return nil, err
	}

	leftBytes, err := n.Left.verify()
	if err != nil {
		return nil, err
	}

	h := n.Tree.hashStrategy()
	if _, err := h.Write(append(leftBytes, rightBytes...)); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

// HashHex converts the node hash to a hex encoded string.
func (n *Node[T]) HashHex() string {
	return hexutil.Encode(n.Hash)
}

// String returns a string representation of the node.
func (n *Node[T]) String() string {
	return fmt.Sprintf("%t %t %v %v", n.IsLeaf, n.IsDup, n.Hash, n.Value)
}

// =============================================================================

// buildIntermediate constructs the intermediate and root levels of the
// tree for a given list of leaf nodes. Returns the resulting root node.
func buildIntermediate[T Hashable[T]](nl []*Node[T], t *Tree[T], depth int) (*Node[T], error) {
	if depth > maxDepth {
		return nil, ErrDepthExceeded
	}

	var nodes []*Node[T]

	for i := 0; i < len(nl); i += 2 {
		left, right := i, i+1
		if i+1 == len(nl) {
			right = i
		}

		h := t.hashStrategy()
		chash := append(nl[left].Hash, nl[right].Hash...)
		if _, err := h.Write(chash); err != nil {
			return nil, err
		}

		n := Node[T]{
			Left:  nl[left],
			Right: nl[right],
			Hash:  h.Sum(nil),
			Tree:  t,
		}

		nodes = append(nodes, &n)
		nl[left].Parent = &n
		nl[right].Parent = &n

		if len(nl) == 2 {
			return &n, nil
		}
	}

	return buildIntermediate(nodes, t, depth+1)
}
