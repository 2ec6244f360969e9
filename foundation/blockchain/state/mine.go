package state

import (
	"context"
	"errors"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
)

// ErrNoPendingActions is returned when a block is requested to be created
// and there are no actions waiting in the buffer.
var ErrNoPendingActions = errors.New("no pending actions in buffer")

// =============================================================================

// MineNewBlock attempts to create a new block with a proper hash that can
// become the next block in the chain.
func (s *State) MineNewBlock(ctx context.Context) (database.Block, error) {
	s.evHandler("state: MineNewBlock: MINING: check buffer count")

	// Are there any actions waiting to be mined.
	if s.buffer.Count() == 0 {
		return database.Block{}, ErrNoPendingActions
	}

	s.evHandler("state: MineNewBlock: MINING: perform POW")

	// Snapshot the pending actions in enqueue order. Actions that arrive
	// while mining runs keep their position for the next block.
	actions := s.buffer.Copy()

	// Attempt to create a new block by solving the POW puzzle. This can
	// be cancelled.
	latestBlock := s.db.LatestBlock()
	block, err := database.POW(ctx, database.POWArgs{
		Difficulty:    s.genesis.Difficulty,
		MiningCap:     s.genesis.MiningCap,
		Number:        latestBlock.Header.Number + 1,
		PrevBlockHash: latestBlock.Hash(),
		Actions:       actions,
		EvHandler:     s.evHandler,
	})
	if err != nil {
		return database.Block{}, err
	}

	// Just check one more time we were not cancelled.
	if ctx.Err() != nil {
		return database.Block{}, ctx.Err()
	}

	s.evHandler("state: MineNewBlock: MINING: update local state")

	if err := s.updateLocalState(block, len(actions)); err != nil {
		return database.Block{}, err
	}

	return block, nil
}

// =============================================================================

// updateLocalState takes the new block and updates the current state of the
// chain. The block is written to storage before the in memory head advances
// and the mined actions leave the buffer.
func (s *State) updateLocalState(block database.Block, minedActions int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evHandler("state: updateLocalState: write to storage")

	// Write the new block to the chain in storage.
	if err := s.db.Write(block); err != nil {
		return err
	}
	s.db.UpdateLatestBlock(block)

	s.evHandler("state: updateLocalState: remove mined actions from buffer")

	// The mined actions were the first minedActions entries of the buffer.
	s.buffer.Drop(minedActions)

	return nil
}
