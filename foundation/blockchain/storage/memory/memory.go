// Package memory implements the storage Store in memory. It exists for
// tests and for running a node without a durable side-channel.
package memory

import (
	"sync"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/storage"
)

// Memory represents the in-memory store implementation.
type Memory struct {
	mu     sync.RWMutex
	blocks map[string]storage.BlockRow
	trans  map[string]storage.TxRow
	merkle map[string][]storage.MerkleNodeRow
}

// New constructs an in-memory store.
func New() *Memory {
	return &Memory{
		blocks: make(map[string]storage.BlockRow),
		trans:  make(map[string]storage.TxRow),
		merkle: make(map[string][]storage.MerkleNodeRow),
	}
}

// Close has nothing to release.
func (m *Memory) Close() error {
	return nil
}

// SaveBlock stores the block row by its hash.
func (m *Memory) SaveBlock(block storage.BlockRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks[block.Hash] = block
	return nil
}

// LoadBlock retrieves the block row for the specified hash.
func (m *Memory) LoadBlock(hash string) (storage.BlockRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	block, exists := m.blocks[hash]
	if !exists {
		return storage.BlockRow{}, storage.ErrNotFound
	}

	return block, nil
}

// SaveTransaction stores the transaction row by its hash.
func (m *Memory) SaveTransaction(tx storage.TxRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.trans[tx.Hash] = tx
	return nil
}

// LoadTransaction retrieves the transaction row for the specified hash.
func (m *Memory) LoadTransaction(hash string) (storage.TxRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, exists := m.trans[hash]
	if !exists {
		return storage.TxRow{}, storage.ErrNotFound
	}

	return tx, nil
}

// SaveMerkleNodes stores the merkle node rows of a block by the block
// hash.
func (m *Memory) SaveMerkleNodes(blockHash string, nodes []storage.MerkleNodeRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.merkle[blockHash] = nodes
	return nil
}
