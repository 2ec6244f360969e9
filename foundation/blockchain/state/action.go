package state

import "github.com/actionchain/actionchain/foundation/blockchain/database"

// SubmitAction accepts a signed action from a client for inclusion into the
// ledger. The action is validated and enqueued, and mining is signaled once
// the pending count reaches the configured batch size.
func (s *State) SubmitAction(signedAct database.SignedAction) error {
	if err := signedAct.Validate(); err != nil {
		return err
	}

	action := database.NewBlockAction(signedAct)
	count := s.buffer.Add(action)

	s.evHandler("state: SubmitAction: act[%s] pending[%d] batch[%d]", signedAct, count, s.genesis.BatchSize)

	if count >= int(s.genesis.BatchSize) {
		s.Worker.SignalStartMining()
	}

	return nil
}
