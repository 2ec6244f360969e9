package level_test

import (
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/blockchain/database/storage/level"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Level(t *testing.T) {
	t.Log("Given the need to store and retrieve blocks in leveldb.")
	{
		dbPath := t.TempDir()

		l, err := level.New(dbPath)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct leveldb storage: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to construct leveldb storage.", success)

		blocks := testBlocks(3)
		for _, blockData := range blocks {
			if err := l.Write(blockData); err != nil {
				t.Fatalf("\t%s\tShould be able to write block %d: %v", failed, blockData.Header.Number, err)
			}
		}
		t.Logf("\t%s\tShould be able to write 3 blocks.", success)

		var count int
		iter := l.ForEach()
		for blockData, err := iter.Next(); !iter.Done(); blockData, err = iter.Next() {
			if err != nil {
				t.Fatalf("\t%s\tShould be able to iterate the blocks: %v", failed, err)
			}
			if blockData.Header.Number != uint64(count) {
				t.Fatalf("\t%s\tShould iterate blocks in order: got %d exp %d", failed, blockData.Header.Number, count)
			}
			count++
		}
		if count != 3 {
			t.Fatalf("\t%s\tShould iterate over 3 blocks: got %d", failed, count)
		}
		t.Logf("\t%s\tShould iterate over 3 blocks in order.", success)

		// Blocks must survive a close and reopen of the store.
		if err := l.Close(); err != nil {
			t.Fatalf("\t%s\tShould be able to close the storage: %v", failed, err)
		}

		l, err = level.New(dbPath)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to reopen the storage: %v", failed, err)
		}
		defer l.Close()

		got, err := l.GetBlock(2)
		if err != nil {
			t.Fatalf("\t%s\tShould be able to read block 2 after reopen: %v", failed, err)
		}
		if got.Hash != blocks[2].Hash {
			t.Fatalf("\t%s\tShould read back the same hash after reopen.", failed)
		}
		t.Logf("\t%s\tShould read back the same block after reopen.", success)

		if err := l.Reset(); err != nil {
			t.Fatalf("\t%s\tShould be able to reset the storage: %v", failed, err)
		}

		iter = l.ForEach()
		iter.Next()
		if !iter.Done() {
			t.Fatalf("\t%s\tShould have no blocks after reset.", failed)
		}
		t.Logf("\t%s\tShould have no blocks after reset.", success)
	}
}

// =============================================================================

func testBlocks(n int) []database.BlockData {
	blocks := make([]database.BlockData, n)
	prevBlockHash := ""

	for i := 0; i < n; i++ {
		block := database.Block{
			Header: database.BlockHeader{
				Number:        uint64(i),
				TimeStamp:     uint64(1700000000 + i),
				Difficulty:    1,
				PrevBlockHash: prevBlockHash,
			},
		}
		blocks[i] = database.NewBlockData(block)
		prevBlockHash = blocks[i].Hash
	}

	return blocks
}
