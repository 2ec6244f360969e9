package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/actionchain/actionchain/foundation/blockchain/digest"
)

// ErrChainIntegrity is returned when a walk of the chain finds a hash
// mismatch or a broken parent link. This signals tampering or a bug and is
// never recovered from silently.
var ErrChainIntegrity = errors.New("chain integrity violation")

// ErrMiningCap is returned when the nonce search exceeds the configured
// mining cap before a solution is found.
var ErrMiningCap = errors.New("mining cap exceeded")

// =============================================================================

// BlockHeader represents common information required for each block.
type BlockHeader struct {
	Number        uint64 `json:"number"`          // Block number in the chain, starting at 0 for genesis.
	TimeStamp     uint64 `json:"timestamp"`       // Time the block was mined.
	Nonce         uint64 `json:"nonce"`           // Value identified to solve the hash solution.
	Difficulty    uint16 `json:"difficulty"`      // Number of leading 0's needed to solve the hash solution.
	PrevBlockHash string `json:"prev_block_hash"` // Hash of the previous block in the chain.
}

// Block represents a group of actions batched together.
type Block struct {
	Header  BlockHeader
	Actions []BlockAction
}

// POWArgs represents the set of arguments required to run POW.
type POWArgs struct {
	Difficulty    uint16
	MiningCap     uint64
	Number        uint64
	PrevBlockHash string
	Actions       []BlockAction
	EvHandler     func(v string, args ...any)
}

// POW constructs a new Block and performs the work to find a nonce that
// solves the cryptographic POW puzzle.
func POW(ctx context.Context, args POWArgs) (Block, error) {
	nb := Block{
		Header: BlockHeader{
			Number:        args.Number,
			TimeStamp:     uint64(time.Now().UTC().Unix()),
			Nonce:         0, // Will be identified by the POW algorithm.
			Difficulty:    args.Difficulty,
			PrevBlockHash: args.PrevBlockHash,
		},
		Actions: args.Actions,
	}

	// Peform the proof of work mining operation.
	if err := nb.performPOW(ctx, args.MiningCap, args.EvHandler); err != nil {
		return Block{}, err
	}

	return nb, nil
}

// performPOW does the work of mining to find a valid hash for a specified
// block. Pointer semantics are being used since a nonce is being discovered.
// The search always starts at nonce 0 so re-mining identical inputs
// reproduces the same nonce and hash.
func (b *Block) performPOW(ctx context.Context, miningCap uint64, ev func(v string, args ...any)) error {
	ev("database: PerformPOW: MINING: started: blk[%d]", b.Header.Number)
	defer ev("database: PerformPOW: MINING: completed: blk[%d]", b.Header.Number)

	// Log the actions that are a part of this potential block.
	for _, act := range b.Actions {
		ev("database: PerformPOW: MINING: act[%s]", act)
	}

	// Loop until a solution for the next block is found.
	var attempts uint64
	for {
		attempts++
		if attempts%1_000_000 == 0 {
			ev("database: PerformPOW: MINING: attempts[%d]", attempts)
		}

		// Check whether the nonce search has been given a bound.
		if miningCap != 0 && attempts > miningCap {
			ev("database: PerformPOW: MINING: CAPPED: attempts[%d]", attempts)
			return ErrMiningCap
		}

		// Did we timeout trying to solve the problem.
		if ctx.Err() != nil {
			ev("database: PerformPOW: MINING: CANCELLED")
			return ctx.Err()
		}

		// Hash the block and check if we have solved the puzzle.
		hash := b.Hash()
		if !digest.IsSolved(b.Header.Difficulty, hash) {
			b.Header.Nonce++
			continue
		}

		ev("database: PerformPOW: MINING: SOLVED: prevBlk[%s]: newBlk[%s]", b.Header.PrevBlockHash, hash)
		ev("database: PerformPOW: MINING: attempts[%d]", attempts)

		return nil
	}
}

// Hash returns the unique hash for the Block. The digest covers the actions,
// number, timestamp, parent hash and nonce. There is no special case for
// genesis, every block including the first is hashed and mined the same way.
func (b Block) Hash() string {
	value := struct {
		Actions       []BlockAction `json:"actions"`
		Number        uint64        `json:"number"`
		TimeStamp     uint64        `json:"timestamp"`
		PrevBlockHash string        `json:"prev_block_hash"`
		Nonce         uint64        `json:"nonce"`
	}{
		Actions:       b.Actions,
		Number:        b.Header.Number,
		TimeStamp:     b.Header.TimeStamp,
		PrevBlockHash: b.Header.PrevBlockHash,
		Nonce:         b.Header.Nonce,
	}

	return digest.Hash(value)
}

// =============================================================================

// BlockData represents what is serialized to storage.
type BlockData struct {
	Hash    string        `json:"hash"`
	Header  BlockHeader   `json:"block"`
	Actions []BlockAction `json:"actions"`
}

// NewBlockData constructs the value to serialize to storage.
func NewBlockData(block Block) BlockData {
	blockData := BlockData{
		Hash:    block.Hash(),
		Header:  block.Header,
		Actions: block.Actions,
	}

	return blockData
}

// ToBlock converts a BlockData into a Block.
func ToBlock(blockData BlockData) Block {
	nb := Block{
		Header:  blockData.Header,
		Actions: blockData.Actions,
	}

	return nb
}

// ValidateBlock verifies the block data can occupy the specified position in
// the chain. The caller provides the hash of the block's parent and the
// number this block must carry, along with the chain's difficulty.
func (bd BlockData) ValidateBlock(prevBlockHash string, number uint64, difficulty uint16) error {
	block := ToBlock(bd)

	// The stored hash must match a recomputation over the stored fields.
	hash := block.Hash()
	if hash != bd.Hash {
		return fmt.Errorf("block %d: stored hash [%s] does not match recomputed hash [%s]: %w", bd.Header.Number, bd.Hash, hash, ErrChainIntegrity)
	}

	if !digest.IsSolved(difficulty, hash) {
		return fmt.Errorf("block %d: hash [%s] does not solve difficulty %d: %w", bd.Header.Number, hash, difficulty, ErrChainIntegrity)
	}

	if bd.Header.Number != number {
		return fmt.Errorf("block %d: this block is not the next number, exp %d: %w", bd.Header.Number, number, ErrChainIntegrity)
	}

	if bd.Header.PrevBlockHash != prevBlockHash {
		return fmt.Errorf("block %d: parent hash [%s] does not match parent block [%s]: %w", bd.Header.Number, bd.Header.PrevBlockHash, prevBlockHash, ErrChainIntegrity)
	}

	return nil
}
