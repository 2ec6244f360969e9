package state

import (
	"github.com/actionchain/actionchain/foundation/blockchain/database"
)

// QueryLastest represents to query the latest block in the chain.
const QueryLastest = ^uint64(0) >> 1

// =============================================================================

// QueryBufferLength returns the current length of the pending action buffer.
func (s *State) QueryBufferLength() int {
	return s.buffer.Count()
}

// QueryHeight returns the number of blocks in the chain.
func (s *State) QueryHeight() uint64 {
	return s.db.Height()
}

// QueryBlocksByNumber returns the set of blocks based on block numbers. This
// function reads the blockchain from storage.
func (s *State) QueryBlocksByNumber(from uint64, to uint64) []database.Block {
	if from == QueryLastest {
		from = s.db.LatestBlock().Header.Number
		to = from
	}
	if to == QueryLastest {
		to = s.db.LatestBlock().Header.Number
	}

	var out []database.Block
	for i := from; i <= to; i++ {
		block, err := s.db.GetBlock(i)
		if err != nil {
			s.evHandler("state: getblock: ERROR: %s", err)
			return nil
		}
		out = append(out, block)
	}

	return out
}

// QueryChain returns the full ordered list of blocks starting with the
// genesis block. This function reads the blockchain from storage.
func (s *State) QueryChain() ([]database.Block, error) {
	var out []database.Block

	iter := s.db.ForEach()
	for block, err := iter.Next(); !iter.Done(); block, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		out = append(out, block)
	}

	return out, nil
}
