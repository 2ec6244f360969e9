package buffer_test

import (
	"fmt"
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/buffer"
	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

func Test_FIFOOrder(t *testing.T) {
	t.Log("Given the need to keep pending actions in arrival order.")
	{
		b := buffer.New()

		for i := 0; i < 5; i++ {
			count := b.Add(blockAction(t, fmt.Sprintf("data%d", i)))
			if count != i+1 {
				t.Fatalf("\t%s\tShould get back the running count %d: got %d", failed, i+1, count)
			}
		}
		t.Logf("\t%s\tShould get back the running count on every add.", success)

		cpy := b.Copy()
		if len(cpy) != 5 {
			t.Fatalf("\t%s\tShould copy all 5 pending actions: got %d", failed, len(cpy))
		}

		for i, act := range cpy {
			if act.Data != fmt.Sprintf("data%d", i) {
				t.Fatalf("\t%s\tShould keep action %d in arrival order: got %s", failed, i, act.Data)
			}
		}
		t.Logf("\t%s\tShould keep every action in arrival order.", success)
	}
}

func Test_Drop(t *testing.T) {
	t.Log("Given the need to remove only the mined prefix of the buffer.")
	{
		b := buffer.New()
		for i := 0; i < 5; i++ {
			b.Add(blockAction(t, fmt.Sprintf("data%d", i)))
		}

		// Snapshot 3 for mining, then two more arrive while mining runs.
		b.Drop(3)

		if b.Count() != 2 {
			t.Fatalf("\t%s\tShould have 2 actions left: got %d", failed, b.Count())
		}
		t.Logf("\t%s\tShould have 2 actions left.", success)

		cpy := b.Copy()
		if cpy[0].Data != "data3" || cpy[1].Data != "data4" {
			t.Fatalf("\t%s\tShould keep the unmined actions in order: got %s %s", failed, cpy[0].Data, cpy[1].Data)
		}
		t.Logf("\t%s\tShould keep the unmined actions in order.", success)

		b.Drop(10)
		if b.Count() != 0 {
			t.Fatalf("\t%s\tShould be empty after dropping more than pending: got %d", failed, b.Count())
		}
		t.Logf("\t%s\tShould be empty after dropping more than pending.", success)
	}
}

func Test_CopyIsSnapshot(t *testing.T) {
	t.Log("Given the need for copies to be independent of later changes.")
	{
		b := buffer.New()
		b.Add(blockAction(t, "data0"))

		cpy := b.Copy()
		b.Add(blockAction(t, "data1"))
		b.Truncate()

		if len(cpy) != 1 || cpy[0].Data != "data0" {
			t.Fatalf("\t%s\tShould keep the snapshot unchanged.", failed)
		}
		t.Logf("\t%s\tShould keep the snapshot unchanged.", success)

		if b.Count() != 0 {
			t.Fatalf("\t%s\tShould be empty after truncate: got %d", failed, b.Count())
		}
		t.Logf("\t%s\tShould be empty after truncate.", success)
	}
}

// =============================================================================

func blockAction(t *testing.T, data string) database.BlockAction {
	t.Helper()

	pk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("unable to generate key: %s", err)
	}

	act, err := database.NewAction("commit", data)
	if err != nil {
		t.Fatalf("unable to create action: %s", err)
	}

	signedAct, err := act.Sign(pk)
	if err != nil {
		t.Fatalf("unable to sign action: %s", err)
	}

	return database.NewBlockAction(signedAct)
}
