package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

var privateURL string

type nodeStatus struct {
	LatestBlockHash   string `json:"latest_block_hash"`
	LatestBlockNumber uint64 `json:"latest_block_number"`
	ChainHeight       uint64 `json:"chain_height"`
	PendingActions    int    `json:"pending_actions"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current status of the node",
	Run:   statusRun,
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringVarP(&privateURL, "url", "u", "http://localhost:9080", "Private url of the node.")
}

func statusRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/node/status", privateURL))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var status nodeStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		log.Fatal(err)
	}

	fmt.Println("latest block: ", status.LatestBlockNumber)
	fmt.Println("latest hash:  ", status.LatestBlockHash)
	fmt.Println("chain height: ", status.ChainHeight)
	fmt.Println("pending:      ", status.PendingActions)
}
