package merkle_test

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"testing"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/merkle"
)

// Data uses the sha256 hashing algorithm for the merkle tree.
type Data struct {
	x string
}

// Hash hashes the value using sha256.
func (d Data) Hash() ([]byte, error) {
	h := sha256.New()
	if _, err := h.Write([]byte(d.x)); err != nil {
		return nil, err
	}

	return h.Sum(nil), nil
}

// Equals tests for equality of two pieces of data.
func (d Data) Equals(other Data) bool {
	return d.x == other.x
}

func values(n int) []Data {
	var data []Data
	for i := 0; i < n; i++ {
		data = append(data, Data{x: fmt.Sprintf("tx-%d", i)})
	}

	return data
}

// =============================================================================

func Test_DeterministicRoot(t *testing.T) {
	tree1, err := merkle.NewTree(values(5))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	tree2, err := merkle.NewTree(values(5))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if !bytes.Equal(tree1.MerkleRoot, tree2.MerkleRoot) {
		t.Error("error: expected the same leaves to produce the same root")
	}

	changed := values(5)
	changed[2].x = "tx-2-tampered"
	tree3, err := merkle.NewTree(changed)
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if bytes.Equal(tree1.MerkleRoot, tree3.MerkleRoot) {
		t.Error("error: expected a changed leaf to change the root")
	}
}

func Test_EmptyInput(t *testing.T) {
	if _, err := merkle.NewTree([]Data{}); !errors.Is(err, merkle.ErrEmptyInput) {
		t.Errorf("error: expected ErrEmptyInput, got %v", err)
	}
}

func Test_OddLeafDuplication(t *testing.T) {
	tree, err := merkle.NewTree(values(7))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if len(tree.Leafs) != 8 {
		t.Fatalf("error: expected 8 effective leaves, got %d", len(tree.Leafs))
	}

	for i, leaf := range tree.Leafs {
		wantDup := i == 7
		if leaf.IsDup != wantDup {
			t.Errorf("error: leaf %d: expected dup flag %t, got %t", i, wantDup, leaf.IsDup)
		}
	}

	if !bytes.Equal(tree.Leafs[6].Hash, tree.Leafs[7].Hash) {
		t.Error("error: expected the synthetic leaf to carry the last leaf's hash")
	}

	if len(tree.Values()) != 7 {
		t.Errorf("error: expected Values to exclude the duplicate, got %d", len(tree.Values()))
	}
}

func Test_ProofRoundTrip(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 8, 16} {
		data := values(n)
		tree, err := merkle.NewTree(data)
		if err != nil {
			t.Fatalf("leaves %d: unexpected error: %v", n, err)
		}

		for _, d := range data {
			proof, order, err := tree.Proof(d)
			if err != nil {
				t.Fatalf("leaves %d: unexpected proof error: %v", n, err)
			}

			leafHash, err := d.Hash()
			if err != nil {
				t.Fatalf("leaves %d: unexpected hash error: %v", n, err)
			}

			ok, err := merkle.VerifyProof(leafHash, proof, order, tree.MerkleRoot, nil)
			if err != nil {
				t.Fatalf("leaves %d: unexpected verify error: %v", n, err)
			}
			if !ok {
				t.Errorf("leaves %d: expected proof for %q to verify", n, d.x)
			}
		}
	}
}

func Test_ProofLeafNotFound(t *testing.T) {
	tree, err := merkle.NewTree(values(4))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if _, _, err := tree.Proof(Data{x: "missing"}); !errors.Is(err, merkle.ErrLeafNotFound) {
		t.Errorf("error: expected ErrLeafNotFound, got %v", err)
	}
}

func Test_ProofWrongLeafFails(t *testing.T) {
	data := values(6)
	tree, err := merkle.NewTree(data)
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	proof, order, err := tree.Proof(data[2])
	if err != nil {
		t.Fatalf("error: unexpected proof error: %v", err)
	}

	wrongHash, err := Data{x: "missing"}.Hash()
	if err != nil {
		t.Fatalf("error: unexpected hash error: %v", err)
	}

	ok, err := merkle.VerifyProof(wrongHash, proof, order, tree.MerkleRoot, nil)
	if err != nil {
		t.Fatalf("error: unexpected verify error: %v", err)
	}
	if ok {
		t.Error("error: expected proof for an absent leaf to fail")
	}
}

func Test_VerifyTree(t *testing.T) {
	tree, err := merkle.NewTree(values(9))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	if err := tree.Verify(); err != nil {
		t.Errorf("error: expected tree to verify: %v", err)
	}
}

func Test_Levels(t *testing.T) {
	tree, err := merkle.NewTree(values(4))
	if err != nil {
		t.Fatalf("error: unexpected error: %v", err)
	}

	levels := tree.Levels()
	if len(levels) != 3 {
		t.Fatalf("error: expected 3 levels for 4 leaves, got %d", len(levels))
	}

	if !bytes.Equal(levels[0][0].Hash, tree.MerkleRoot) {
		t.Error("error: expected level 0 to hold the root")
	}

	if len(levels[2]) != 4 {
		t.Errorf("error: expected 4 nodes at the leaf level, got %d", len(levels[2]))
	}
}
