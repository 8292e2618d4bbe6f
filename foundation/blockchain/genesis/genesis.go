// Package genesis maintains access to the genesis file.
package genesis

import (
	"encoding/json"
	"os"
	"time"
)

// Genesis represents the genesis file with the starting parameters for
// the chain.
type Genesis struct {
	Date         time.Time `json:"date"`
	ChainName    string    `json:"chain_name"`    // A friendly name for this running instance.
	Difficulty   uint      `json:"difficulty"`    // How many leading zeros are needed to solve the work problem.
	MiningReward uint      `json:"mining_reward"` // Reward for mining a block.
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
