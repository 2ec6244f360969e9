package cmd

import (
	"bytes"
	"crypto/ecdsa"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/spf13/cobra"
)

var (
	url  string
	kind string
	data string
)

// submitCmd represents the submit command
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Sign and submit an action to the node",
	Run: func(cmd *cobra.Command, args []string) {
		privateKey, err := crypto.LoadECDSA(getPrivateKeyPath())
		if err != nil {
			log.Fatal(err)
		}

		submitWithDetails(privateKey)
	},
}

func submitWithDetails(privateKey *ecdsa.PrivateKey) {
	act, err := database.NewAction(kind, data)
	if err != nil {
		log.Fatal(err)
	}

	signedAct, err := act.Sign(privateKey)
	if err != nil {
		log.Fatal(err)
	}

	payload, err := json.Marshal(signedAct)
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/action/submit", url), "application/json", bytes.NewBuffer(payload))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Status)
	fmt.Println(string(body))
}

func init() {
	rootCmd.AddCommand(submitCmd)
	submitCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the node.")
	submitCmd.Flags().StringVarP(&kind, "kind", "k", "", "Kind of the action.")
	submitCmd.Flags().StringVarP(&data, "data", "d", "", "Payload of the action.")
}
