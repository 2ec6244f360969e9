// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	v1 "github.com/actionchain/actionchain/business/web/v1"
	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/blockchain/state"
	"github.com/actionchain/actionchain/foundation/events"
	"github.com/actionchain/actionchain/foundation/nameservice"
	"github.com/actionchain/actionchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of public ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
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

// SubmitAction adds a new signed action to the pending buffer. The action is
// not part of the chain yet, mining happens once the batch size is reached.
func (h Handlers) SubmitAction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var sa submitAction
	if err := web.Decode(r, &sa); err != nil {
		return fmt.Errorf("unable to decode payload: %w", err)
	}

	signedAct := toSignedAction(sa)

	h.Log.Infow("add action", "traceid", v.TraceID, "action", signedAct, "kind", signedAct.Kind)
	if err := h.State.SubmitAction(signedAct); err != nil {
		return v1.NewRequestError(err, http.StatusBadRequest)
	}

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "action added to buffer",
	}

	return web.Respond(ctx, w, resp, http.StatusAccepted)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Chain returns the full ordered list of blocks in the chain.
func (h Handlers) Chain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	dbBlocks, err := h.State.QueryChain()
	if err != nil {
		return fmt.Errorf("unable to read chain: %w", err)
	}

	blocks := make([]block, len(dbBlocks))
	for i, dbBlock := range dbBlocks {
		blocks[i] = toBlock(h.NS, dbBlock)
	}

	return web.Respond(ctx, w, blocks, http.StatusOK)
}

// Verify walks the chain validating every block and reports the result. A
// corrupted chain is reported exactly as found, including the offending
// block number.
func (h Handlers) Verify(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	resp := struct {
		Valid bool   `json:"valid"`
		Error string `json:"error,omitempty"`
	}{
		Valid: true,
	}

	if err := h.State.ValidateChain(); err != nil {
		if !errors.Is(err, database.ErrChainIntegrity) {
			return fmt.Errorf("unable to verify chain: %w", err)
		}

		resp.Valid = false
		resp.Error = err.Error()
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Buffer returns the set of actions waiting to be mined in enqueue order.
func (h Handlers) Buffer(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	pending := h.State.RetrievePendingActions()

	actions := make([]action, len(pending))
	for i, blockAction := range pending {
		actions[i] = toAction(h.NS, blockAction)
	}

	return web.Respond(ctx, w, actions, http.StatusOK)
}

// SignalMining signals a mining operation outside of the batch threshold.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.Worker.SignalStartMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signaled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}
