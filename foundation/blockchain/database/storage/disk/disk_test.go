package disk_test

import (
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/blockchain/database/storage/disk"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_Disk(t *testing.T) {
	t.Log("Given the need to store and retrieve blocks on disk.")
	{
		d, err := disk.New(t.TempDir())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to construct disk storage: %v", failed, err)
		}
		defer d.Close()
		t.Logf("\t%s\tShould be able to construct disk storage.", success)

		blocks := testBlocks(3)
		for _, blockData := range blocks {
			if err := d.Write(blockData); err != nil {
				t.Fatalf("\t%s\tShould be able to write block %d: %v", failed, blockData.Header.Number, err)
			}
		}
		t.Logf("\t%s\tShould be able to write 3 blocks.", success)

		for _, exp := range blocks {
			got, err := d.GetBlock(exp.Header.Number)
			if err != nil {
				t.Fatalf("\t%s\tShould be able to read block %d: %v", failed, exp.Header.Number, err)
			}
			if got.Hash != exp.Hash {
				t.Fatalf("\t%s\tShould read back the same hash for block %d.", failed, exp.Header.Number)
			}
		}
		t.Logf("\t%s\tShould be able to read back every block.", success)

		var count int
		iter := d.ForEach()
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

		if err := d.Reset(); err != nil {
			t.Fatalf("\t%s\tShould be able to reset the storage: %v", failed, err)
		}

		iter = d.ForEach()
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
