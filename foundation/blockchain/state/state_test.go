package state_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/blockchain/database/storage/memory"
	"github.com/actionchain/actionchain/foundation/blockchain/genesis"
	"github.com/actionchain/actionchain/foundation/blockchain/state"
	"github.com/actionchain/actionchain/foundation/blockchain/worker"
	"github.com/ethereum/go-ethereum/crypto"
)

// Success and failure markers.
const (
	success = "✓"
	failed  = "✗"
)

const pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"

var nilEv = func(v string, args ...any) {}

// =============================================================================

func Test_SubmitBelowThreshold(t *testing.T) {
	t.Log("Given the need to buffer actions until the batch size is reached.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 3, Difficulty: 1})
		defer s.Shutdown()

		for i := 0; i < 2; i++ {
			if err := s.SubmitAction(signAction(t, fmt.Sprintf("data%d", i))); err != nil {
				t.Fatalf("\t%s\tShould be able to submit action %d: %v", failed, i, err)
			}
		}
		t.Logf("\t%s\tShould be able to submit 2 actions.", success)

		if s.QueryBufferLength() != 2 {
			t.Fatalf("\t%s\tShould have 2 pending actions: got %d", failed, s.QueryBufferLength())
		}
		t.Logf("\t%s\tShould have 2 pending actions.", success)

		if s.QueryHeight() != 1 {
			t.Fatalf("\t%s\tShould still have only the genesis block: got %d", failed, s.QueryHeight())
		}
		t.Logf("\t%s\tShould still have only the genesis block.", success)
	}
}

func Test_MineNewBlock(t *testing.T) {
	t.Log("Given the need to mine buffered actions into the next block.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 3, Difficulty: 1})
		defer s.Shutdown()

		for i := 0; i < 2; i++ {
			if err := s.SubmitAction(signAction(t, fmt.Sprintf("data%d", i))); err != nil {
				t.Fatalf("\t%s\tShould be able to submit action %d: %v", failed, i, err)
			}
		}

		block, err := s.MineNewBlock(context.Background())
		if err != nil {
			t.Fatalf("\t%s\tShould be able to mine a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould be able to mine a block.", success)

		if block.Header.Number != 1 {
			t.Fatalf("\t%s\tShould have block number 1: got %d", failed, block.Header.Number)
		}
		if len(block.Actions) != 2 {
			t.Fatalf("\t%s\tShould have 2 actions in the block: got %d", failed, len(block.Actions))
		}
		if block.Actions[0].Data != "data0" || block.Actions[1].Data != "data1" {
			t.Fatalf("\t%s\tShould have the actions in arrival order.", failed)
		}
		t.Logf("\t%s\tShould have the actions in arrival order.", success)

		if s.QueryBufferLength() != 0 {
			t.Fatalf("\t%s\tShould have an empty buffer after mining: got %d", failed, s.QueryBufferLength())
		}
		t.Logf("\t%s\tShould have an empty buffer after mining.", success)

		if s.QueryHeight() != 2 {
			t.Fatalf("\t%s\tShould have a chain height of 2: got %d", failed, s.QueryHeight())
		}
		t.Logf("\t%s\tShould have a chain height of 2.", success)

		if err := s.ValidateChain(); err != nil {
			t.Fatalf("\t%s\tShould have a valid chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould have a valid chain.", success)
	}
}

func Test_MineEmptyBuffer(t *testing.T) {
	t.Log("Given the need to refuse mining with no pending actions.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 3, Difficulty: 1})
		defer s.Shutdown()

		_, err := s.MineNewBlock(context.Background())
		if !errors.Is(err, state.ErrNoPendingActions) {
			t.Fatalf("\t%s\tShould fail with no pending actions: %v", failed, err)
		}
		t.Logf("\t%s\tShould fail with no pending actions.", success)
	}
}

func Test_BatchTriggersMining(t *testing.T) {
	t.Log("Given the need to mine automatically when the batch size is reached.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 3, Difficulty: 1})
		defer s.Shutdown()

		for i := 0; i < 3; i++ {
			if err := s.SubmitAction(signAction(t, fmt.Sprintf("data%d", i))); err != nil {
				t.Fatalf("\t%s\tShould be able to submit action %d: %v", failed, i, err)
			}
		}
		t.Logf("\t%s\tShould be able to submit a full batch.", success)

		if err := waitForHeight(s, 2); err != nil {
			t.Fatalf("\t%s\tShould mine the batch into a block: %v", failed, err)
		}
		t.Logf("\t%s\tShould mine the batch into a block.", success)

		if err := waitForBufferLength(s, 0); err != nil {
			t.Fatalf("\t%s\tShould drain the buffer after mining: %v", failed, err)
		}
		t.Logf("\t%s\tShould drain the buffer after mining.", success)

		if err := s.ValidateChain(); err != nil {
			t.Fatalf("\t%s\tShould have a valid chain: %v", failed, err)
		}
		t.Logf("\t%s\tShould have a valid chain.", success)
	}
}

func Test_ChainGrowth(t *testing.T) {
	t.Log("Given the need to append multiple mined blocks over time.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 2, Difficulty: 1})
		defer s.Shutdown()

		for round := 0; round < 3; round++ {
			for i := 0; i < 2; i++ {
				if err := s.SubmitAction(signAction(t, fmt.Sprintf("r%d-data%d", round, i))); err != nil {
					t.Fatalf("\t%s\tShould be able to submit action: %v", failed, err)
				}
			}

			if err := waitForHeight(s, uint64(round)+2); err != nil {
				t.Fatalf("\t%s\tShould mine block %d: %v", failed, round+1, err)
			}
		}
		t.Logf("\t%s\tShould mine 3 blocks.", success)

		if err := s.ValidateChain(); err != nil {
			t.Fatalf("\t%s\tShould have a valid chain of 4 blocks: %v", failed, err)
		}
		t.Logf("\t%s\tShould have a valid chain of 4 blocks.", success)

		blocks, err := s.QueryChain()
		if err != nil {
			t.Fatalf("\t%s\tShould be able to query the chain: %v", failed, err)
		}
		if len(blocks) != 4 {
			t.Fatalf("\t%s\tShould get back 4 blocks: got %d", failed, len(blocks))
		}
		t.Logf("\t%s\tShould get back 4 blocks.", success)
	}
}

func Test_RejectInvalidAction(t *testing.T) {
	t.Log("Given the need to reject actions that fail validation.")
	{
		s := newState(t, genesis.Genesis{ChainID: 1, BatchSize: 3, Difficulty: 1})
		defer s.Shutdown()

		signedAct := signAction(t, "data0")
		signedAct.Kind = ""

		if err := s.SubmitAction(signedAct); err == nil {
			t.Fatalf("\t%s\tShould reject an action without a kind.", failed)
		}
		t.Logf("\t%s\tShould reject an action without a kind.", success)

		if s.QueryBufferLength() != 0 {
			t.Fatalf("\t%s\tShould not buffer a rejected action: got %d", failed, s.QueryBufferLength())
		}
		t.Logf("\t%s\tShould not buffer a rejected action.", success)
	}
}

// =============================================================================

func newState(t *testing.T, gen genesis.Genesis) *state.State {
	t.Helper()

	storage, err := memory.New()
	if err != nil {
		t.Fatalf("unable to construct memory storage: %s", err)
	}

	s, err := state.New(state.Config{
		Host:    "test",
		Genesis: gen,
		Storage: storage,
	})
	if err != nil {
		t.Fatalf("unable to construct state: %s", err)
	}

	worker.Run(s, nilEv)

	return s
}

func signAction(t *testing.T, data string) database.SignedAction {
	t.Helper()

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("unable to load key: %s", err)
	}

	act, err := database.NewAction("commit", data)
	if err != nil {
		t.Fatalf("unable to create action: %s", err)
	}

	signedAct, err := act.Sign(pk)
	if err != nil {
		t.Fatalf("unable to sign action: %s", err)
	}

	return signedAct
}

func waitForHeight(s *state.State, height uint64) error {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if s.QueryHeight() >= height {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("timeout waiting for height %d, at %d", height, s.QueryHeight())
}

func waitForBufferLength(s *state.State, length int) error {
	deadline := time.Now().Add(10 * time.Second)
	for time.Now().Before(deadline) {
		if s.QueryBufferLength() == length {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}

	return fmt.Errorf("timeout waiting for buffer length %d, at %d", length, s.QueryBufferLength())
}
