// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/J-Oliver12/AIBTCCoin-main/business/web/errs"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/ledger"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/events"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log           *zap.SugaredLogger
	Ledger        *ledger.Ledger
	BeneficiaryID database.AccountID
	WS            websocket.Upgrader
	Evts          *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case msg, wd := <-ch:
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitWalletTransaction adds a new signed transaction to the pending
// pool.
func (h Handlers) SubmitWalletTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var signedTx submitTx
	if err := web.Decode(r, &signedTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	dbTx := signedTx.toDatabaseTx()

	h.Log.Infow("add tran", "traceid", v.TraceID, "tx", dbTx)
	if err := h.Ledger.AddTransaction(dbTx); err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
		Hash   string `json:"hash"`
	}{
		Status: "transaction added to mempool",
		Hash:   dbTx.HashHex(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Mine seals the pending pool into a new block and appends it to the
// chain. The mining reward is credited to the node's beneficiary.
func (h Handlers) Mine(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	h.Log.Infow("mine request", "traceid", v.TraceID, "beneficiary", h.BeneficiaryID)

	dbBlock, err := h.Ledger.MinePendingTransactions(h.BeneficiaryID)
	if err != nil {
		return errs.NewTrusted(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, w, toBlock(dbBlock), http.StatusOK)
}

// Genesis returns the chain settings.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.Ledger.Genesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of uncommitted transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pool := h.Ledger.Mempool()

	trans := make([]tx, len(pool))
	for i, dbTx := range pool {
		trans[i] = toTx(dbTx)
	}

	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Accounts returns the replayed balances, either for every account seen
// on the chain or for the one specified.
func (h Handlers) Accounts(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	account := web.Param(r, "account")

	balances := make(map[string]uint)
	switch account {
	case "":
		for accountID, balance := range h.Ledger.Balances() {
			balances[string(accountID)] = balance
		}

	default:
		accountID, err := database.ToAccountID(account)
		if err != nil {
			return errs.NewTrusted(err, http.StatusBadRequest)
		}
		balances[string(accountID)] = h.Ledger.BalanceOf(accountID)
	}

	ai := actInfo{
		LatestBlock: h.Ledger.LatestBlock().BlockHash,
		Uncommitted: len(h.Ledger.Mempool()),
		Balances:    balances,
	}

	return web.Respond(ctx, w, ai, http.StatusOK)
}

// Blocks returns the chain with full block details.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks := h.Ledger.Blocks()

	blocks := make([]block, len(dbBlocks))
	for i, dbBlock := range dbBlocks {
		blocks[i] = toBlock(dbBlock)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// ValidateChain runs the full chain validation scan.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	if err := h.Ledger.Validate(); err != nil {
		return errs.NewTrusted(err, http.StatusConflict)
	}

	resp := struct {
		Valid  bool `json:"valid"`
		Blocks int  `json:"blocks"`
	}{
		Valid:  true,
		Blocks: len(h.Ledger.Blocks()),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// TxProof returns the merkle inclusion proof for a transaction sealed in
// the specified block.
func (h Handlers) TxProof(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	blockNumber, err := strconv.ParseUint(web.Param(r, "block"), 10, 64)
	if err != nil {
		return errs.NewTrusted(errors.New("block number is not a number"), http.StatusBadRequest)
	}

	proof, err := h.Ledger.TxProofByHash(blockNumber, web.Param(r, "hash"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusNotFound)
	}

	return web.Respond(ctx, w, proof, http.StatusOK)
}
