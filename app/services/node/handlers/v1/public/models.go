package public

import (
	"math/big"

	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
)

// submitTx is what clients post to submit a signed transaction.
type submitTx struct {
	FromID    string   `json:"from" validate:"required"`
	ToID      string   `json:"to" validate:"required"`
	Value     uint     `json:"value" validate:"required,gt=0"`
	TimeStamp uint64   `json:"timestamp" validate:"required"`
	V         *big.Int `json:"v" validate:"required"`
	R         *big.Int `json:"r" validate:"required"`
	S         *big.Int `json:"s" validate:"required"`
}

// toDatabaseTx converts the payload into the core transaction form.
func (st submitTx) toDatabaseTx() database.Tx {
	return database.Tx{
		FromID:    database.AccountID(st.FromID),
		ToID:      database.AccountID(st.ToID),
		Value:     st.Value,
		TimeStamp: st.TimeStamp,
		V:         st.V,
		R:         st.R,
		S:         st.S,
	}
}

// tx represents a transaction in an API response.
type tx struct {
	FromID    database.AccountID `json:"from,omitempty"`
	ToID      database.AccountID `json:"to"`
	Value     uint               `json:"value"`
	TimeStamp uint64             `json:"timestamp"`
	Hash      string             `json:"hash"`
	Sig       string             `json:"sig,omitempty"`
}

// toTx converts a core transaction for an API response.
func toTx(dbTx database.Tx) tx {
	return tx{
		FromID:    dbTx.FromID,
		ToID:      dbTx.ToID,
		Value:     dbTx.Value,
		TimeStamp: dbTx.TimeStamp,
		Hash:      dbTx.HashHex(),
		Sig:       dbTx.SignatureString(),
	}
}

// block represents a sealed block in an API response.
type block struct {
	Hash          string `json:"hash"`
	Number        uint64 `json:"number"`
	PrevBlockHash string `json:"prev_block_hash"`
	TimeStamp     uint64 `json:"timestamp"`
	Difficulty    uint   `json:"difficulty"`
	Nonce         uint64 `json:"nonce"`
	TransRoot     string `json:"trans_root"`
	Transactions  []tx   `json:"transactions"`
}

// toBlock converts a core block for an API response.
func toBlock(dbBlock database.Block) block {
	trans := make([]tx, len(dbBlock.Trans))
	for i, dbTx := range dbBlock.Trans {
		trans[i] = toTx(dbTx)
	}

	return block{
		Hash:          dbBlock.BlockHash,
		Number:        dbBlock.Header.Number,
		PrevBlockHash: dbBlock.Header.PrevBlockHash,
		TimeStamp:     dbBlock.Header.TimeStamp,
		Difficulty:    dbBlock.Header.Difficulty,
		Nonce:         dbBlock.Header.Nonce,
		TransRoot:     dbBlock.Header.TransRoot,
		Transactions:  trans,
	}
}

// actInfo is the balance listing response.
type actInfo struct {
	LatestBlock string          `json:"latest_block"`
	Uncommitted int             `json:"uncommitted"`
	Balances    map[string]uint `json:"balances"`
}
