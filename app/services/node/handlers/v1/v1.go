// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/J-Oliver12/AIBTCCoin-main/app/services/node/handlers/v1/public"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/database"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/blockchain/ledger"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/events"
	"github.com/J-Oliver12/AIBTCCoin-main/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log           *zap.SugaredLogger
	Ledger        *ledger.Ledger
	BeneficiaryID database.AccountID
	Evts          *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:           cfg.Log,
		Ledger:        cfg.Ledger,
		BeneficiaryID: cfg.BeneficiaryID,
		WS:            websocket.Upgrader{},
		Evts:          cfg.Evts,
	}

	app.Handle(http.MethodGet, version, "/events", pbl.Events)
	app.Handle(http.MethodGet, version, "/genesis/list", pbl.Genesis)
	app.Handle(http.MethodGet, version, "/accounts/list", pbl.Accounts)
	app.Handle(http.MethodGet, version, "/accounts/list/:account", pbl.Accounts)
	app.Handle(http.MethodGet, version, "/blocks/list", pbl.Blocks)
	app.Handle(http.MethodGet, version, "/tx/uncommitted/list", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/tx/proof/:block/:hash", pbl.TxProof)
	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitWalletTransaction)
	app.Handle(http.MethodPost, version, "/mine", pbl.Mine)
	app.Handle(http.MethodGet, version, "/chain/validate", pbl.ValidateChain)
}
