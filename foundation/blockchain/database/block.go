package database

import (
	"fmt"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/merkle"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/signature"
)

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Position of the block in the chain, 0 for genesis.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was created.
	Difficulty    uint   `json:"difficulty"`      // Number of leading 0's needed in the block hash.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	TransRoot     string `json:"trans_root"`      // Merkle tree root hash for the transactions in this block.
}

// Block represents one sealed unit of the chain: a header, the ordered
// set of transactions it owns, and the hash recorded when it was sealed.
type Block struct {
	BlockHash string      `json:"hash"`
	Header    BlockHeader `json:"header"`
	Trans     []Tx        `json:"trans"`

	tree *merkle.Tree[Tx]
}

// New constructs a block for the specified position in the chain. The
// merkle root is computed immediately; a block with no transactions gets
// the zero hash sentinel root. The block hash is recorded with nonce 0
// and changes only through MineBlock.
func New(number uint64, prevBlockHash string, timeStamp uint64, trans []Tx, difficulty uint) (Block, error) {
	b := Block{
		Header: BlockHeader{
			Number:        number,
			PrevBlockHash: prevBlockHash,
			TimeStamp:     timeStamp,
			Difficulty:    difficulty,
			TransRoot:     signature.ZeroHash,
		},
		Trans: trans,
	}

	if len(trans) > 0 {
		tree, err := merkle.NewTree(trans)
		if err != nil {
			return Block{}, err
		}

		b.tree = tree
		b.Header.TransRoot = tree.RootHex()
	}

	b.BlockHash = b.Hash()

	return b, nil
}

// Hash recomputes the unique hash for the block over the previous hash,
// timestamp, merkle root, nonce and the transactions. Transactions carry
// no back-reference to the block, so the digest has no circular input.
func (b Block) Hash() string {
	data := struct {
		Header BlockHeader `json:"header"`
		Trans  []Tx        `json:"trans"`
	}{
		Header: b.Header,
		Trans:  b.Trans,
	}

	return signature.Hash(data)
}

// MineBlock performs the proof of work by incrementing the nonce until
// the block hash carries the required number of leading zero characters.
// This is a blocking CPU-bound search with no internal timeout; callers
// must not request a difficulty they can't afford to wait for.
func (b *Block) MineBlock(ev func(v string, args ...any)) {
	ev("database: MineBlock: MINING: block[%d] difficulty[%d]: started", b.Header.Number, b.Header.Difficulty)
	defer ev("database: MineBlock: MINING: block[%d]: completed", b.Header.Number)

	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: MineBlock: MINING: attempts[%d]", attempts)
		}

		hash := b.Hash()
		if isHashSolved(b.Header.Difficulty, hash) {
			b.BlockHash = hash
			ev("database: MineBlock: MINING: SOLVED: nonce[%d] hash[%s]", b.Header.Nonce, hash)
			return
		}

		b.Header.Nonce++
	}
}

// HasValidTransactions verifies every transaction in the block, reporting
// the hash of the first transaction that fails.
func (b Block) HasValidTransactions() error {
	for _, tx := range b.Trans {
		if err := tx.Verify(); err != nil {
			return fmt.Errorf("transaction %s: %w", tx.HashHex(), err)
		}
	}

	return nil
}

// TransRootRecomputed builds a fresh merkle tree over the block's current
// transaction set and returns its root. Validation uses this to detect a
// tampered transaction list.
func (b Block) TransRootRecomputed() (string, error) {
	if len(b.Trans) == 0 {
		return signature.ZeroHash, nil
	}

	tree, err := merkle.NewTree(b.Trans)
	if err != nil {
		return "", err
	}

	return tree.RootHex(), nil
}

// Proof returns the merkle proof and sibling order for the specified
// transaction in this block.
func (b Block) Proof(tx Tx) ([][]byte, []int64, error) {
	tree, err := b.merkleTree()
	if err != nil {
		return nil, nil, err
	}

	return tree.Proof(tx)
}

// MerkleLevels returns the hex-encoded node hashes of the block's merkle
// tree level by level, root first. A block with no transactions has no
// levels.
func (b Block) MerkleLevels() ([][]string, error) {
	if len(b.Trans) == 0 {
		return nil, nil
	}

	tree, err := b.merkleTree()
	if err != nil {
		return nil, err
	}

	var levels [][]string
	for _, nodes := range tree.Levels() {
		var level []string
		for _, node := range nodes {
			level = append(level, node.HashHex())
		}
		levels = append(levels, level)
	}

	return levels, nil
}

// merkleTree returns the tree built at construction, rebuilding it for
// block values produced by deserialization.
func (b Block) merkleTree() (*merkle.Tree[Tx], error) {
	if b.tree != nil {
		return b.tree, nil
	}

	return merkle.NewTree(b.Trans)
}

// isHashSolved checks the hash to make sure it complies with the POW
// rules. We need to match a difficulty number of 0's.
func isHashSolved(difficulty uint, hash string) bool {
	const match = "00000000000000000"

	if len(hash) != 66 || hash[:2] != "0x" {
		return false
	}

	return hash[2:2+difficulty] == match[:difficulty]
}
