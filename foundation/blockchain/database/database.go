// Package database handles the lower level support for maintaining the
// blockchain in storage and the in memory view of the chain head.
package database

import (
	"context"
	"sync"

	"github.com/actionchain/actionchain/foundation/blockchain/digest"
	"github.com/actionchain/actionchain/foundation/blockchain/genesis"
)

// Serializer interface represents the behavior required to be implemented by
// any package providing support for storing and reading the blockchain.
type Serializer interface {
	Write(blockData BlockData) error
	GetBlock(num uint64) (BlockData, error)
	ForEach() Iterator
	Close() error
	Reset() error
}

// Iterator interface represents the behavior required to be implemented by
// any package providing support to iterate over the blocks.
type Iterator interface {
	Next() (BlockData, error)
	Done() bool
}

// =============================================================================

// DatabaseIterator provides support for iterating over the blocks in the
// chain converting each to a Block.
type DatabaseIterator struct {
	iterator Iterator
}

// Next retrieves the next block from storage.
func (di *DatabaseIterator) Next() (Block, error) {
	blockData, err := di.iterator.Next()
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData), nil
}

// Done returns the end of chain value.
func (di *DatabaseIterator) Done() bool {
	return di.iterator.Done()
}

// =============================================================================

// Database manages the chain head and owns access to block storage. All
// mutation of the head funnels through this value, appends are serialized by
// the caller holding the chain mutex.
type Database struct {
	mu sync.RWMutex

	genesis     genesis.Genesis
	latestBlock Block
	height      uint64

	serializer Serializer
}

// New constructs a new database, validates the blocks held in storage and
// mines the genesis block on first use. The genesis block carries a zero
// hash parent and no actions, and is mined like any other block so the
// difficulty invariant holds for the entire chain.
func New(genesis genesis.Genesis, serializer Serializer, evHandler func(v string, args ...any)) (*Database, error) {
	db := Database{
		genesis:    genesis,
		serializer: serializer,
	}

	// Read all the blocks from storage, validating each block against its
	// parent as we go.
	prevBlockHash := digest.ZeroHash
	var number uint64

	iter := db.serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return nil, err
		}

		if err := blockData.ValidateBlock(prevBlockHash, number, genesis.Difficulty); err != nil {
			return nil, err
		}

		db.latestBlock = ToBlock(blockData)
		prevBlockHash = blockData.Hash
		number++
	}
	db.height = number

	// A brand new chain needs its genesis block mined and written before
	// anything else can be appended.
	if db.height == 0 {
		genesisBlock, err := POW(context.Background(), POWArgs{
			Difficulty:    genesis.Difficulty,
			MiningCap:     genesis.MiningCap,
			Number:        0,
			PrevBlockHash: digest.ZeroHash,
			EvHandler:     evHandler,
		})
		if err != nil {
			return nil, err
		}

		if err := db.serializer.Write(NewBlockData(genesisBlock)); err != nil {
			return nil, err
		}

		db.latestBlock = genesisBlock
		db.height = 1
	}

	return &db, nil
}

// Close closes the open blocks database.
func (db *Database) Close() {
	db.serializer.Close()
}

// Reset re-initalizes the database back to an empty chain. The genesis block
// is not re-mined here, that happens on the next call to New.
func (db *Database) Reset() error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.serializer.Reset(); err != nil {
		return err
	}

	db.latestBlock = Block{}
	db.height = 0

	return nil
}

// UpdateLatestBlock provides safe access to update the latest block.
func (db *Database) UpdateLatestBlock(block Block) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.latestBlock = block
	db.height = block.Header.Number + 1
}

// LatestBlock returns the latest block.
func (db *Database) LatestBlock() Block {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.latestBlock
}

// Height returns the number of blocks in the chain.
func (db *Database) Height() uint64 {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return db.height
}

// Write adds a new block to the chain. The block is written to storage
// before the in memory head is advanced by the caller.
func (db *Database) Write(block Block) error {
	return db.serializer.Write(NewBlockData(block))
}

// ForEach returns an iterator to walk through all the blocks starting with
// the genesis block.
func (db *Database) ForEach() DatabaseIterator {
	return DatabaseIterator{iterator: db.serializer.ForEach()}
}

// GetBlock searches the blockchain in storage to locate and return the
// contents of the specified block by number.
func (db *Database) GetBlock(num uint64) (Block, error) {
	blockData, err := db.serializer.GetBlock(num)
	if err != nil {
		return Block{}, err
	}

	return ToBlock(blockData), nil
}

// Verify walks the entire chain from the genesis block, recomputing each
// block's hash and confirming it matches the stored hash, satisfies the
// difficulty predicate and links to its parent. The first violation is
// returned as an error wrapping ErrChainIntegrity and naming the offending
// block number. A nil return means the chain is valid.
func (db *Database) Verify() error {
	prevBlockHash := digest.ZeroHash
	var number uint64

	iter := db.serializer.ForEach()
	for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
		if err != nil {
			return err
		}

		if err := blockData.ValidateBlock(prevBlockHash, number, db.genesis.Difficulty); err != nil {
			return err
		}

		prevBlockHash = blockData.Hash
		number++
	}

	return nil
}
