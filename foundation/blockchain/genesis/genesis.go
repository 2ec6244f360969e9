// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file.
type Genesis struct {
	Date       time.Time `json:"date"`
	ChainID    uint16    `json:"chain_id"`   // An unique id for this running instance of the ledger.
	BatchSize  uint16    `json:"batch_size"` // Number of pending actions that triggers the mining of a block.
	Difficulty uint16    `json:"difficulty"` // How many leading zeros a block hash needs to solve the work problem.
	MiningCap  uint64    `json:"mining_cap"` // Maximum nonce attempts per block, 0 means unbounded.
}

// =============================================================================

// Load opens and consumes the genesis file.
func Load(path string) (Genesis, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Genesis{}, err
	}

	var genesis Genesis
	err = json.Unmarshal(content, &genesis)
	if err != nil {
		return Genesis{}, err
	}

	return genesis, nil
}
