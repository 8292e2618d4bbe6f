package database_test

import (
	"strings"
	"testing"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func sign(t *testing.T, tx database.Tx) (database.Tx, string) {
	t.Helper()

	privateKey, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
	}

	tx.FromID = database.PublicKeyToAccountID(privateKey.PublicKey)

	signedTx, err := tx.Sign(privateKey)
	if err != nil {
		t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
	}

	return signedTx, string(tx.FromID)
}

func Test_TransactionSigning(t *testing.T) {
	t.Log("Given the need to sign and verify a transaction.")
	{
		privateKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate a private key.", success)

		fromID := database.PublicKeyToAccountID(privateKey.PublicKey)

		tx, err := database.NewTx(fromID, "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f", 100)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a transaction.", success)

		if err := tx.Verify(); err == nil {
			t.Errorf("\t%s\tShould not verify an unsigned transaction.", failed)
		} else {
			t.Logf("\t%s\tShould not verify an unsigned transaction.", success)
		}

		signedTx, err := tx.Sign(privateKey)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to sign the transaction: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to sign the transaction.", success)

		if err := signedTx.Verify(); err != nil {
			t.Errorf("\t%s\tShould verify a signed transaction: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould verify a signed transaction.", success)
		}

		signedTx.Value = 5000
		if err := signedTx.Verify(); err == nil {
			t.Errorf("\t%s\tShould not verify a transaction mutated after signing.", failed)
		} else {
			t.Logf("\t%s\tShould not verify a transaction mutated after signing.", success)
		}
	}
}

func Test_UnauthorizedSigner(t *testing.T) {
	t.Log("Given the need to refuse signing with a foreign key.")
	{
		signerKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}

		ownerKey, err := crypto.GenerateKey()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to generate a private key: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to generate two private keys.", success)

		fromID := database.PublicKeyToAccountID(ownerKey.PublicKey)

		tx, err := database.NewTx(fromID, "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f", 10)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a transaction: %v", failed, err)
		}

		if _, err := tx.Sign(signerKey); err != database.ErrUnauthorizedSigner {
			t.Errorf("\t%s\tShould refuse a key that does not own the from address: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould refuse a key that does not own the from address.", success)
		}
	}
}

func Test_RewardTransaction(t *testing.T) {
	t.Log("Given the need for unsigned system-minted transactions.")
	{
		tx := database.NewRewardTx("0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f", 700)

		if err := tx.Verify(); err != nil {
			t.Errorf("\t%s\tShould verify a reward transaction without a signature: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould verify a reward transaction without a signature.", success)
		}

		if tx.FromID != "" {
			t.Errorf("\t%s\tShould have no sender on a reward transaction.", failed)
		} else {
			t.Logf("\t%s\tShould have no sender on a reward transaction.", success)
		}
	}
}

func Test_TransactionHash(t *testing.T) {
	t.Log("Given the need for a deterministic transaction hash.")
	{
		tx := database.Tx{
			FromID:    "0xF01813E4B85e178A83e29B8E7bF26BD830a25f32",
			ToID:      "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f",
			Value:     42,
			TimeStamp: 1700000000,
		}

		h1 := tx.HashHex()
		h2 := tx.HashHex()

		if h1 != h2 {
			t.Errorf("\t%s\tShould hash the same transaction to the same value.", failed)
		} else {
			t.Logf("\t%s\tShould hash the same transaction to the same value.", success)
		}

		if !strings.HasPrefix(h1, "0x") || len(h1) != 66 {
			t.Errorf("\t%s\tShould produce a 0x prefixed 32 byte hash, got %s.", failed, h1)
		} else {
			t.Logf("\t%s\tShould produce a 0x prefixed 32 byte hash.", success)
		}

		mutated := tx
		mutated.Value = 43
		if mutated.HashHex() == h1 {
			t.Errorf("\t%s\tShould hash a changed transaction to a different value.", failed)
		} else {
			t.Logf("\t%s\tShould hash a changed transaction to a different value.", success)
		}
	}
}

func Test_BlockMining(t *testing.T) {
	t.Log("Given the need to mine a block to the required difficulty.")
	{
		const difficulty = 1

		tx, _ := sign(t, database.Tx{
			ToID:      "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f",
			Value:     25,
			TimeStamp: 1700000000,
		})
		t.Logf("\t%s\tShould be able to sign a transaction.", success)

		block, err := database.New(1, signature.ZeroHash, 1700000001, []database.Tx{tx}, difficulty)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a block.", success)

		ev := func(v string, args ...any) {}
		block.MineBlock(ev)

		if !strings.HasPrefix(block.BlockHash, "0x0") {
			t.Errorf("\t%s\tShould have a hash with %d leading zero(s), got %s.", failed, difficulty, block.BlockHash)
		} else {
			t.Logf("\t%s\tShould have a hash with %d leading zero(s).", success, difficulty)
		}

		if block.BlockHash != block.Hash() {
			t.Errorf("\t%s\tShould record the hash that the sealed block recomputes to.", failed)
		} else {
			t.Logf("\t%s\tShould record the hash that the sealed block recomputes to.", success)
		}

		if err := block.HasValidTransactions(); err != nil {
			t.Errorf("\t%s\tShould have valid transactions: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould have valid transactions.", success)
		}
	}
}

func Test_EmptyBlockRoot(t *testing.T) {
	t.Log("Given the need for a sentinel root on an empty block.")
	{
		block, err := database.New(0, "0", 1700000000, nil, 0)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct an empty block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct an empty block.", success)

		if block.Header.TransRoot != signature.ZeroHash {
			t.Errorf("\t%s\tShould carry the zero hash root, got %s.", failed, block.Header.TransRoot)
		} else {
			t.Logf("\t%s\tShould carry the zero hash root.", success)
		}

		root, err := block.TransRootRecomputed()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to recompute the root: %v", failed, err)
		}
		if root != signature.ZeroHash {
			t.Errorf("\t%s\tShould recompute the zero hash root, got %s.", failed, root)
		} else {
			t.Logf("\t%s\tShould recompute the zero hash root.", success)
		}
	}
}

func Test_InvalidTransactionReported(t *testing.T) {
	t.Log("Given the need to report the offending transaction in a block.")
	{
		goodTx, _ := sign(t, database.Tx{
			ToID:      "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f",
			Value:     10,
			TimeStamp: 1700000000,
		})

		badTx, _ := sign(t, database.Tx{
			ToID:      "0xbEE6ACE826eC2DE1dCd52229A1b010D4eb6aaa2f",
			Value:     20,
			TimeStamp: 1700000001,
		})
		badTx.Value = 9999

		block, err := database.New(1, signature.ZeroHash, 1700000002, []database.Tx{goodTx, badTx}, 0)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct a block.", success)

		err = block.HasValidTransactions()
		if err == nil {
			t.Fatalf("\t%s\tShould report the tampered transaction.", failed)
		}
		t.Logf("\t%s\tShould report the tampered transaction.", success)

		if !strings.Contains(err.Error(), badTx.HashHex()) {
			t.Errorf("\t%s\tShould name the offending transaction hash in the error.", failed)
			t.Logf("\t\tgot: %v", err)
		} else {
			t.Logf("\t%s\tShould name the offending transaction hash in the error.", success)
		}
	}
}

func Test_AccountID(t *testing.T) {
	t.Log("Given the need to validate account identifiers.")
	{
		if _, err := database.ToAccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32"); err != nil {
			t.Errorf("\t%s\tShould accept a well formed account id: %v", failed, err)
		} else {
			t.Logf("\t%s\tShould accept a well formed account id.", success)
		}

		bad := []string{
			"",
			"F01813E4B85e178A83e29B8E7bF26BD830a25f32",
			"0xF01813",
			"0xZZ1813E4B85e178A83e29B8E7bF26BD830a25f32",
		}

		for _, id := range bad {
			if _, err := database.ToAccountID(id); err == nil {
				t.Errorf("\t%s\tShould reject malformed account id %q.", failed, id)
			} else {
				t.Logf("\t%s\tShould reject malformed account id %q.", success, id)
			}
		}
	}
}
