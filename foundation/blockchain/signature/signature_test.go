package signature_test

import (
	"testing"

	"github.com/actionchain/actionchain/foundation/blockchain/signature"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	pkHexKey = "fae85851bdf5c9f49923722ce38f3c1defcfd3619ef5453230a58ad805499959"
)

// =============================================================================

func Test_Signing(t *testing.T) {
	value := struct {
		Kind string
		Data string
	}{
		Kind: "commit",
		Data: "a1b2c3",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v, r, s, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	if err := signature.VerifySignature(value, v, r, s); err != nil {
		t.Fatalf("Should be able to verify the signature: %s", err)
	}

	addr, err := signature.FromAddress(value, v, r, s)
	if err != nil {
		t.Fatalf("Should be able to generate from address: %s", err)
	}

	from := crypto.PubkeyToAddress(pk.PublicKey).String()
	if from != addr {
		t.Logf("got: %s", addr)
		t.Logf("exp: %s", from)
		t.Fatalf("Should get back the right address.")
	}
}

func Test_SignatureString(t *testing.T) {
	value := struct {
		Kind string
		Data string
	}{
		Kind: "review",
		Data: "lgtm",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v, r, s, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	str := signature.SignatureString(v, r, s)

	v2, r2, s2, err := signature.ToVRSFromHexSignature(str)
	if err != nil {
		t.Fatalf("Should be able to convert the signature string back: %s", err)
	}

	if v.Cmp(v2) != 0 || r.Cmp(r2) != 0 || s.Cmp(s2) != 0 {
		t.Fatalf("Should get back the same signature values.")
	}

	if err := signature.VerifySignature(value, v2, r2, s2); err != nil {
		t.Fatalf("Should be able to verify the round tripped signature: %s", err)
	}
}

func Test_TamperedValue(t *testing.T) {
	value := struct {
		Kind string
		Data string
	}{
		Kind: "commit",
		Data: "a1b2c3",
	}

	pk, err := crypto.HexToECDSA(pkHexKey)
	if err != nil {
		t.Fatalf("Should be able to generate a private key: %s", err)
	}

	v, r, s, err := signature.Sign(value, pk)
	if err != nil {
		t.Fatalf("Should be able to sign data: %s", err)
	}

	value.Data = "d4e5f6"

	addr, err := signature.FromAddress(value, v, r, s)
	if err != nil {
		t.Fatalf("Should be able to recover an address: %s", err)
	}

	from := crypto.PubkeyToAddress(pk.PublicKey).String()
	if from == addr {
		t.Fatalf("Should not recover the signer address from tampered data.")
	}
}
