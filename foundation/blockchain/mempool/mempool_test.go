package mempool_test

import (
	"testing"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/mempool"
)

const (
	accountA = database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	accountB = database.AccountID("0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f")
)

func tx(from database.AccountID, value uint, ts uint64) database.Tx {
	return database.Tx{
		FromID:    from,
		ToID:      accountB,
		Value:     value,
		TimeStamp: ts,
	}
}

func Test_UpsertCountDelete(t *testing.T) {
	mp := mempool.New()

	tx1 := tx(accountA, 10, 100)
	tx2 := tx(accountA, 20, 101)

	if n := mp.Upsert(tx1); n != 1 {
		t.Errorf("error: expected count 1 after first upsert, got %d", n)
	}

	if n := mp.Upsert(tx1); n != 1 {
		t.Errorf("error: expected the same transaction to replace, got count %d", n)
	}

	if n := mp.Upsert(tx2); n != 2 {
		t.Errorf("error: expected count 2 after second upsert, got %d", n)
	}

	mp.Delete(tx1)
	if n := mp.Count(); n != 1 {
		t.Errorf("error: expected count 1 after delete, got %d", n)
	}

	mp.Truncate()
	if n := mp.Count(); n != 0 {
		t.Errorf("error: expected empty pool after truncate, got %d", n)
	}
}

func Test_CopyOrdering(t *testing.T) {
	mp := mempool.New()

	mp.Upsert(tx(accountA, 30, 300))
	mp.Upsert(tx(accountA, 10, 100))
	mp.Upsert(tx(accountA, 20, 200))

	txs := mp.Copy()
	if len(txs) != 3 {
		t.Fatalf("error: expected 3 transactions, got %d", len(txs))
	}

	for i := 1; i < len(txs); i++ {
		if txs[i-1].TimeStamp > txs[i].TimeStamp {
			t.Fatalf("error: expected transactions ordered by timestamp, got %d before %d", txs[i-1].TimeStamp, txs[i].TimeStamp)
		}
	}
}

func Test_PendingSpend(t *testing.T) {
	mp := mempool.New()

	mp.Upsert(tx(accountA, 10, 100))
	mp.Upsert(tx(accountA, 25, 101))
	mp.Upsert(tx(accountB, 99, 102))

	if total := mp.PendingSpend(accountA); total != 35 {
		t.Errorf("error: expected pending spend 35 for account A, got %d", total)
	}

	if total := mp.PendingSpend("0x0000000000000000000000000000000000000000"); total != 0 {
		t.Errorf("error: expected pending spend 0 for an absent account, got %d", total)
	}
}
