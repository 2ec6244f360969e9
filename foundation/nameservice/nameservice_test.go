package nameservice_test

import (
	"path/filepath"
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/nameservice"
	"github.com/ethereum/go-ethereum/crypto"
)

func Test_Lookup(t *testing.T) {
	dir := t.TempDir()

	pk, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("Should be able to generate a key: %s", err)
	}

	if err := crypto.SaveECDSA(filepath.Join(dir, "nikita.ecdsa"), pk); err != nil {
		t.Fatalf("Should be able to save the key: %s", err)
	}

	ns, err := nameservice.New(dir)
	if err != nil {
		t.Fatalf("Should be able to construct the name service: %s", err)
	}

	accountID := database.PublicKeyToAccountID(pk.PublicKey)
	if name := ns.Lookup(accountID); name != "nikita" {
		t.Fatalf("Should resolve the account to its file name: got %s", name)
	}

	unknown := database.AccountID("0xF01813E4B85e178A83e29B8E7bF26BD830a25f32")
	if name := ns.Lookup(unknown); name != string(unknown) {
		t.Fatalf("Should return the account id for unknown accounts: got %s", name)
	}

	if len(ns.Copy()) != 1 {
		t.Fatalf("Should have exactly one account: got %d", len(ns.Copy()))
	}
}
