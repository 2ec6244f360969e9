// Package level implements the ability to read and write blocks to an
// embedded leveldb key/value store.
package level

import (
	"encoding/binary"
	"encoding/json"
	"errors"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
)

// blockPrefix namespaces block records inside the store. Block numbers are
// encoded big-endian so the natural key order matches chain order.
const blockPrefix = "block:"

// Level represents the serialization implementation for reading and storing
// blocks in a leveldb database. This implements the database.Serializer
// interface.
type Level struct {
	db *leveldb.DB
}

// New constructs a Level value for use.
func New(dbPath string) (*Level, error) {
	db, err := leveldb.OpenFile(dbPath, nil)
	if err != nil {
		return nil, err
	}

	return &Level{db: db}, nil
}

// Close closes the underlying leveldb database.
func (l *Level) Close() error {
	return l.db.Close()
}

// Write takes the specified database block and stores it in leveldb under
// its block number.
func (l *Level) Write(blockData database.BlockData) error {
	data, err := json.Marshal(blockData)
	if err != nil {
		return err
	}

	return l.db.Put(getKey(blockData.Header.Number), data, nil)
}

// GetBlock searches the store to locate and return the contents of the
// specified block by number.
func (l *Level) GetBlock(num uint64) (database.BlockData, error) {
	data, err := l.db.Get(getKey(num), nil)
	if err != nil {
		return database.BlockData{}, err
	}

	var blockData database.BlockData
	if err := json.Unmarshal(data, &blockData); err != nil {
		return database.BlockData{}, err
	}

	return blockData, nil
}

// ForEach returns an iterator to walk through all the blocks starting
// with the genesis block.
func (l *Level) ForEach() database.Iterator {
	return &levelIterator{level: l}
}

// Reset will clear out the blockchain from the store.
func (l *Level) Reset() error {
	iter := l.db.NewIterator(util.BytesPrefix([]byte(blockPrefix)), nil)
	defer iter.Release()

	for iter.Next() {
		if err := l.db.Delete(iter.Key(), nil); err != nil {
			return err
		}
	}

	return iter.Error()
}

// getKey forms the key for the specified block.
func getKey(blockNum uint64) []byte {
	key := make([]byte, len(blockPrefix)+8)
	copy(key, blockPrefix)
	binary.BigEndian.PutUint64(key[len(blockPrefix):], blockNum)

	return key
}

// =============================================================================

// levelIterator represents the iteration implementation for walking through
// and reading blocks in leveldb. This implements the database Iterator
// interface.
type levelIterator struct {
	level   *Level // Access to the leveldb storage API.
	current uint64 // Current block number being iterated over.
	eoc     bool   // Represents the iterator is at the end of the chain.
}

// Next retrieves the next block from the store.
func (li *levelIterator) Next() (database.BlockData, error) {
	if li.eoc {
		return database.BlockData{}, errors.New("end of chain")
	}

	blockData, err := li.level.GetBlock(li.current)
	if errors.Is(err, leveldb.ErrNotFound) {
		li.eoc = true
	}

	li.current++

	return blockData, err
}

// Done returns the end of chain value.
func (li *levelIterator) Done() bool {
	return li.eoc
}
