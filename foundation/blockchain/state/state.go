// Package state is the core API for the ledger and implements all the
// business rules and processing.
package state

import (
	"sync"

	"github.com/actionchain/actionchain/foundation/blockchain/buffer"
	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/blockchain/genesis"
)

// =============================================================================

// EventHandler defines a function that is called when events
// occur in the processing of mining blocks.
type EventHandler func(v string, args ...any)

// Worker interface represents the behavior required to be implemented by any
// package providing support for mining.
type Worker interface {
	Shutdown()
	SignalStartMining()
	SignalCancelMining()
}

// =============================================================================

// Config represents the configuration required to start the ledger node.
type Config struct {
	Host      string
	Genesis   genesis.Genesis
	Storage   database.Serializer
	EvHandler EventHandler
}

// State manages the blockchain database and the buffer of pending actions.
type State struct {
	mu sync.Mutex

	host      string
	evHandler EventHandler

	genesis genesis.Genesis
	buffer  *buffer.Buffer
	db      *database.Database

	Worker Worker
}

// New constructs a new blockchain for data management.
func New(cfg Config) (*State, error) {

	// Build a safe event handler function for use.
	ev := func(v string, args ...any) {
		if cfg.EvHandler != nil {
			cfg.EvHandler(v, args...)
		}
	}

	// Access the storage for the blockchain. This validates any existing
	// blocks and mines the genesis block on a brand new chain.
	db, err := database.New(cfg.Genesis, cfg.Storage, ev)
	if err != nil {
		return nil, err
	}

	// Create the State to provide support for managing the ledger.
	state := State{
		host:      cfg.Host,
		evHandler: ev,

		genesis: cfg.Genesis,
		buffer:  buffer.New(),
		db:      db,
	}

	// The Worker is not set here. The call to worker.Run will assign itself
	// and start everything up and running for the node.

	return &state, nil
}

// Shutdown cleanly brings the node down.
func (s *State) Shutdown() error {

	// Make sure the database is properly closed.
	defer func() {
		s.db.Close()
	}()

	// Stop all blockchain writing activity.
	s.Worker.Shutdown()

	return nil
}
