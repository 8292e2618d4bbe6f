// Package storage declares the persistence store the ledger delegates to
// and the row forms the store records. The ledger treats the store as an
// opaque collaborator: a sealed block is not part of the chain until the
// store accepts it.
package storage

import (
	"errors"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
)

// ErrNotFound is returned when a block or transaction hash is unknown to
// the store.
var ErrNotFound = errors.New("not found")

// Store represents the behavior required of any persistence backing for
// the ledger. Everything is keyed by hash strings.
type Store interface {
	SaveBlock(block BlockRow) error
	LoadBlock(hash string) (BlockRow, error)
	SaveTransaction(tx TxRow) error
	LoadTransaction(hash string) (TxRow, error)
	SaveMerkleNodes(blockHash string, nodes []MerkleNodeRow) error
	Close() error
}

// =============================================================================

// BlockRow is the stored form of a sealed block header.
type BlockRow struct {
	Hash          string `json:"hash"`
	PrevBlockHash string `json:"previous_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	Nonce         uint64 `json:"nonce"`
	Difficulty    uint   `json:"difficulty"`
	MerkleRoot    string `json:"merkle_root"`
	Number        uint64 `json:"index"`
}

// TxRow is the stored form of a transaction, carrying the hash of the
// block that sealed it.
type TxRow struct {
	Hash      string `json:"hash"`
	FromID    string `json:"from_address,omitempty"`
	ToID      string `json:"to_address"`
	Value     uint   `json:"amount"`
	TimeStamp uint64 `json:"timestamp"`
	Signature string `json:"signature,omitempty"`
	BlockHash string `json:"block_hash"`
}

// MerkleNodeRow is the stored form of one node of a block's merkle tree.
type MerkleNodeRow struct {
	BlockHash string `json:"block_hash"`
	Level     int    `json:"node_level"`
	Index     int    `json:"node_index"`
	Value     string `json:"node_value"`
}

// =============================================================================

// NewBlockRow constructs the stored form of the specified block.
func NewBlockRow(block database.Block) BlockRow {
	return BlockRow{
		Hash:          block.BlockHash,
		PrevBlockHash: block.Header.PrevBlockHash,
		TimeStamp:     block.Header.TimeStamp,
		Nonce:         block.Header.Nonce,
		Difficulty:    block.Header.Difficulty,
		MerkleRoot:    block.Header.TransRoot,
		Number:        block.Header.Number,
	}
}

// NewTxRows constructs the stored form of every transaction in the block,
// each carrying the sealing block's hash as its back-reference.
func NewTxRows(block database.Block) []TxRow {
	rows := make([]TxRow, len(block.Trans))
	for i, tx := range block.Trans {
		rows[i] = TxRow{
			Hash:      tx.HashHex(),
			FromID:    string(tx.FromID),
			ToID:      string(tx.ToID),
			Value:     tx.Value,
			TimeStamp: tx.TimeStamp,
			Signature: tx.SignatureString(),
			BlockHash: block.BlockHash,
		}
	}

	return rows
}

// NewMerkleNodeRows flattens the level-by-level merkle node hashes of a
// block into stored rows.
func NewMerkleNodeRows(block database.Block) ([]MerkleNodeRow, error) {
	levels, err := block.MerkleLevels()
	if err != nil {
		return nil, err
	}

	var rows []MerkleNodeRow
	for level, values := range levels {
		for index, value := range values {
			rows = append(rows, MerkleNodeRow{
				BlockHash: block.BlockHash,
				Level:     level,
				Index:     index,
				Value:     value,
			})
		}
	}

	return rows, nil
}
