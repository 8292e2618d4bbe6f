// Package mempool maintains the pool of transactions accepted by the
// ledger but not yet included in a sealed block.
package mempool

import (
	"sort"
	"sync"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
)

// Mempool represents a cache of pending transactions keyed by their
// canonical hash.
type Mempool struct {
	pool map[string]database.Tx
	mu   sync.RWMutex
}

// New constructs a new mempool for pending transactions.
func New() *Mempool {
	mp := Mempool{
		pool: make(map[string]database.Tx),
	}

	return &mp
}

// Count returns the current number of transactions in the pool.
func (mp *Mempool) Count() int {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return len(mp.pool)
}

// Upsert adds or replaces a transaction in the mempool.
func (mp *Mempool) Upsert(tx database.Tx) int {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool[tx.HashHex()] = tx

	return len(mp.pool)
}

// Delete removes a transaction from the mempool.
func (mp *Mempool) Delete(tx database.Tx) {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	delete(mp.pool, tx.HashHex())
}

// Truncate clears all the transactions from the pool.
func (mp *Mempool) Truncate() {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	mp.pool = make(map[string]database.Tx)
}

// Copy returns the pending transactions ordered by timestamp, with the
// hash as a tie breaker so the order is deterministic.
func (mp *Mempool) Copy() []database.Tx {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	txs := make([]database.Tx, 0, len(mp.pool))
	for _, tx := range mp.pool {
		txs = append(txs, tx)
	}

	sort.Slice(txs, func(i, j int) bool {
		if txs[i].TimeStamp != txs[j].TimeStamp {
			return txs[i].TimeStamp < txs[j].TimeStamp
		}
		return txs[i].HashHex() < txs[j].HashHex()
	})

	return txs
}

// PendingSpend totals the value of pending transactions sent by the
// specified account. The ledger uses this during admission so an account
// can't promise the same funds twice.
func (mp *Mempool) PendingSpend(account database.AccountID) uint {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	var total uint
	for _, tx := range mp.pool {
		if tx.FromID == account {
			total += tx.Value
		}
	}

	return total
}
