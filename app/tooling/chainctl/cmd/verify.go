package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"
)

type verifyResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Ask the node to verify the integrity of its chain",
	Run:   verifyRun,
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
}

func verifyRun(cmd *cobra.Command, args []string) {
	resp, err := http.Get(fmt.Sprintf("%s/v1/chain/verify", url))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	var result verifyResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		log.Fatal(err)
	}

	if !result.Valid {
		fmt.Println("chain invalid:", result.Error)
		return
	}

	fmt.Println("chain valid")
}
