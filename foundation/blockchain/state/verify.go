package state

// ValidateChain walks the entire chain from the genesis block, recomputing
// each block's hash and confirming the integrity invariants hold. A nil
// return means the chain is valid, otherwise the first violation is returned
// naming the offending block number.
func (s *State) ValidateChain() error {
	s.evHandler("state: ValidateChain: started")
	defer s.evHandler("state: ValidateChain: completed")

	return s.db.Verify()
}
