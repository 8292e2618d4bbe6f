// Package ledger is the core API for the blockchain and implements all
// the business rules and processing. A Ledger owns the canonical chain of
// sealed blocks plus the pending transaction pool, and delegates
// persistence to an injected store.
package ledger

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/genesis"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/mempool"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/storage"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Set of errors for rejected transactions and failed validation. Every
// rejection names the invariant that failed.
var (
	ErrInvalidAddress      = errors.New("transaction must include valid from and to addresses")
	ErrInvalidAmount       = errors.New("transaction amount must be greater than zero")
	ErrInsufficientBalance = errors.New("insufficient balance for transaction")
	ErrInvalidBlockHash    = errors.New("stored block hash does not match recomputed hash")
	ErrBrokenChainLink     = errors.New("block does not link to the previous block hash")
	ErrInvalidTransRoot    = errors.New("stored merkle root does not match transactions")
	ErrUnknownBlock        = errors.New("unknown block")
	ErrUnknownTransaction  = errors.New("unknown transaction")
)

// EventHandler defines a function that is called when events occur in the
// processing of transactions and blocks.
type EventHandler func(v string, args ...any)

// =============================================================================

// Config represents the configuration required to construct a ledger.
type Config struct {
	Genesis   genesis.Genesis
	Store     storage.Store
	EvHandler EventHandler
}

// Ledger manages the blockchain. The chain is append-only: the only
// mutators are AddTransaction and MinePendingTransactions, and a single
// mining operation runs at a time against one ledger value.
type Ledger struct {
	mu sync.RWMutex

	genesis genesis.Genesis
	chain   []database.Block
	mempool *mempool.Mempool
	store   storage.Store
	ev      EventHandler
}

// New constructs a ledger seeded with its genesis block. The genesis
// block sits at position 0, links to the literal "0" and carries no
// transactions.
func New(cfg Config) (*Ledger, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	genesisBlock, err := database.New(0, "0", uint64(cfg.Genesis.Date.UTC().Unix()), nil, cfg.Genesis.Difficulty)
	if err != nil {
		return nil, fmt.Errorf("creating genesis block: %w", err)
	}

	l := Ledger{
		genesis: cfg.Genesis,
		chain:   []database.Block{genesisBlock},
		mempool: mempool.New(),
		store:   cfg.Store,
		ev:      ev,
	}

	if err := l.persistBlock(genesisBlock); err != nil {
		return nil, fmt.Errorf("persisting genesis block: %w", err)
	}

	ev("ledger: New: genesis block created: hash[%s]", genesisBlock.BlockHash)

	return &l, nil
}

// AddTransaction runs the admission pipeline and queues the transaction
// in the pending pool. Each check short-circuits with the failed
// invariant; a rejected transaction leaves all state untouched.
func (l *Ledger) AddTransaction(tx database.Tx) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !tx.FromID.IsAccountID() || !tx.ToID.IsAccountID() {
		return fmt.Errorf("%w: from[%s] to[%s]", ErrInvalidAddress, tx.FromID, tx.ToID)
	}

	if tx.Value == 0 {
		return ErrInvalidAmount
	}

	if err := tx.Verify(); err != nil {
		return err
	}

	balance := l.balanceOf(tx.FromID)
	pending := l.mempool.PendingSpend(tx.FromID)
	if balance < tx.Value+pending {
		return fmt.Errorf("%w: balance[%d] pending[%d] amount[%d]", ErrInsufficientBalance, balance, pending, tx.Value)
	}

	count := l.mempool.Upsert(tx)
	l.ev("ledger: AddTransaction: tx[%s] accepted: mempool[%d]", tx.HashHex(), count)

	return nil
}

// MinePendingTransactions drains the pending pool plus a system-minted
// reward for the beneficiary into a new block, performs the proof of
// work, persists the sealed block and appends it to the chain. This is
// the only operation that grows the chain. If persistence fails the block
// is discarded and the pool is left intact.
func (l *Ledger) MinePendingTransactions(beneficiaryID database.AccountID) (database.Block, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	reward := database.NewRewardTx(beneficiaryID, l.genesis.MiningReward)
	trans := append(l.mempool.Copy(), reward)

	latestBlock := l.chain[len(l.chain)-1]

	block, err := database.New(uint64(len(l.chain)), latestBlock.BlockHash, uint64(time.Now().UTC().Unix()), trans, l.genesis.Difficulty)
	if err != nil {
		return database.Block{}, err
	}

	block.MineBlock(l.ev)

	if err := l.persistBlock(block); err != nil {
		return database.Block{}, fmt.Errorf("persisting block %d: %w", block.Header.Number, err)
	}

	l.chain = append(l.chain, block)
	l.mempool.Truncate()

	l.ev("ledger: MinePendingTransactions: block[%d] appended: hash[%s] txs[%d]", block.Header.Number, block.BlockHash, len(block.Trans))

	return block, nil
}

// BalanceOf replays every transaction in every sealed block to produce
// the current balance for the account. The replay is the single source of
// truth; no balance cache exists that could diverge from it.
func (l *Ledger) BalanceOf(account database.AccountID) uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balanceOf(account)
}

// Balances replays the chain once and produces the balance of every
// account that appears in it.
func (l *Ledger) Balances() map[database.AccountID]uint {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balances := make(map[database.AccountID]int)
	for _, block := range l.chain {
		for _, tx := range block.Trans {
			if tx.FromID != "" {
				balances[tx.FromID] -= int(tx.Value)
			}
			balances[tx.ToID] += int(tx.Value)
		}
	}

	result := make(map[database.AccountID]uint, len(balances))
	for account, balance := range balances {
		if balance < 0 {
			balance = 0
		}
		result[account] = uint(balance)
	}

	return result
}

// Validate scans the whole chain and reports the first violated
// invariant. The scan is read-only; a failing chain is left exactly as it
// was found.
func (l *Ledger) Validate() error {
	l.mu.RLock()
	defer l.mu.RUnlock()

	genesisBlock := l.chain[0]
	if genesisBlock.BlockHash != genesisBlock.Hash() {
		return fmt.Errorf("genesis block: %w", ErrInvalidBlockHash)
	}

	for i := 1; i < len(l.chain); i++ {
		block := l.chain[i]
		prevBlock := l.chain[i-1]

		if block.BlockHash != block.Hash() {
			return fmt.Errorf("block %d: %w", block.Header.Number, ErrInvalidBlockHash)
		}

		if block.Header.PrevBlockHash != prevBlock.BlockHash {
			return fmt.Errorf("block %d: %w", block.Header.Number, ErrBrokenChainLink)
		}

		transRoot, err := block.TransRootRecomputed()
		if err != nil {
			return fmt.Errorf("block %d: recomputing merkle root: %w", block.Header.Number, err)
		}
		if transRoot != block.Header.TransRoot {
			return fmt.Errorf("block %d: %w", block.Header.Number, ErrInvalidTransRoot)
		}

		if err := block.HasValidTransactions(); err != nil {
			return fmt.Errorf("block %d: %w", block.Header.Number, err)
		}
	}

	return nil
}

// =============================================================================

// LatestBlock returns the most recently sealed block.
func (l *Ledger) LatestBlock() database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.chain[len(l.chain)-1]
}

// Blocks returns a copy of the chain.
func (l *Ledger) Blocks() []database.Block {
	l.mu.RLock()
	defer l.mu.RUnlock()

	chain := make([]database.Block, len(l.chain))
	copy(chain, l.chain)

	return chain
}

// Mempool returns a copy of the pending transactions.
func (l *Ledger) Mempool() []database.Tx {
	return l.mempool.Copy()
}

// Genesis returns the chain settings.
func (l *Ledger) Genesis() genesis.Genesis {
	return l.genesis
}

// =============================================================================

// TxProof carries a merkle inclusion proof for a transaction sealed in a
// block, in a transportable hex form.
type TxProof struct {
	BlockHash  string   `json:"block_hash"`
	MerkleRoot string   `json:"merkle_root"`
	TxHash     string   `json:"tx_hash"`
	Proof      []string `json:"proof"`
	Order      []int64  `json:"order"`
}

// TxProofByHash produces the merkle proof for the specified transaction
// in the specified block.
func (l *Ledger) TxProofByHash(blockNumber uint64, txHash string) (TxProof, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if blockNumber >= uint64(len(l.chain)) {
		return TxProof{}, fmt.Errorf("block %d: %w", blockNumber, ErrUnknownBlock)
	}
	block := l.chain[blockNumber]

	for _, tx := range block.Trans {
		if tx.HashHex() != txHash {
			continue
		}

		proof, order, err := block.Proof(tx)
		if err != nil {
			return TxProof{}, err
		}

		hexProof := make([]string, len(proof))
		for i, hash := range proof {
			hexProof[i] = hexutil.Encode(hash)
		}

		return TxProof{
			BlockHash:  block.BlockHash,
			MerkleRoot: block.Header.TransRoot,
			TxHash:     txHash,
			Proof:      hexProof,
			Order:      order,
		}, nil
	}

	return TxProof{}, fmt.Errorf("tx %s in block %d: %w", txHash, blockNumber, ErrUnknownTransaction)
}

// =============================================================================

// balanceOf replays the chain for one account. Callers must hold the
// lock.
func (l *Ledger) balanceOf(account database.AccountID) uint {
	var balance int
	for _, block := range l.chain {
		for _, tx := range block.Trans {
			if tx.FromID == account {
				balance -= int(tx.Value)
			}
			if tx.ToID == account {
				balance += int(tx.Value)
			}
		}
	}

	if balance < 0 {
		return 0
	}

	return uint(balance)
}

// persistBlock writes the sealed block, its transactions and its merkle
// nodes through the store.
func (l *Ledger) persistBlock(block database.Block) error {
	if err := l.store.SaveBlock(storage.NewBlockRow(block)); err != nil {
		return err
	}

	for _, row := range storage.NewTxRows(block) {
		if err := l.store.SaveTransaction(row); err != nil {
			return err
		}
	}

	rows, err := storage.NewMerkleNodeRows(block)
	if err != nil {
		return err
	}
	if len(rows) > 0 {
		if err := l.store.SaveMerkleNodes(block.BlockHash, rows); err != nil {
			return err
		}
	}

	return nil
}
