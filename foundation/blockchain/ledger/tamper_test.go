package ledger

import (
	"errors"
	"testing"
	"time"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/genesis"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/storage/memory"
)

// tamperLedger builds a two block chain whose internals the tests below
// corrupt directly.
func tamperLedger(t *testing.T) *Ledger {
	t.Helper()

	gen := genesis.Genesis{
		Date:         time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC),
		ChainName:    "the aibtc blockchain",
		Difficulty:   1,
		MiningReward: 100,
	}

	l, err := New(Config{Genesis: gen, Store: memory.New()})
	if err != nil {
		t.Fatalf("constructing ledger: %v", err)
	}

	if _, err := l.MinePendingTransactions("0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f"); err != nil {
		t.Fatalf("mining block: %v", err)
	}

	return l
}

func Test_TamperedHeader(t *testing.T) {
	l := tamperLedger(t)

	l.chain[1].Header.TimeStamp++

	err := l.Validate()
	if !errors.Is(err, ErrInvalidBlockHash) {
		t.Errorf("error: expected ErrInvalidBlockHash for a tampered header, got %v", err)
	}
}

func Test_TamperedTransactions(t *testing.T) {
	l := tamperLedger(t)

	// Re-sealing after the edit hides the change from the hash check and
	// leaves the merkle root as the only witness.
	l.chain[1].Trans[0].Value += 1000
	l.chain[1].BlockHash = l.chain[1].Hash()

	err := l.Validate()
	if !errors.Is(err, ErrInvalidTransRoot) {
		t.Errorf("error: expected ErrInvalidTransRoot for a tampered transaction, got %v", err)
	}
}

func Test_BrokenChainLink(t *testing.T) {
	l := tamperLedger(t)

	l.chain[1].Header.PrevBlockHash = "0xdeadbeef"
	l.chain[1].BlockHash = l.chain[1].Hash()

	err := l.Validate()
	if !errors.Is(err, ErrBrokenChainLink) {
		t.Errorf("error: expected ErrBrokenChainLink for a broken link, got %v", err)
	}
}

func Test_TamperedGenesis(t *testing.T) {
	l := tamperLedger(t)

	l.chain[0].Header.Difficulty++

	err := l.Validate()
	if !errors.Is(err, ErrInvalidBlockHash) {
		t.Errorf("error: expected ErrInvalidBlockHash for a tampered genesis block, got %v", err)
	}
}
