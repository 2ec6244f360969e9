package database

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/actionchain/actionchain/foundation/blockchain/signature"
)

// =============================================================================

// Action is the record a client authors for inclusion into the ledger. The
// data is opaque to the node, only the author cares what it means.
type Action struct {
	Kind string `json:"kind"` // Application defined category, like "commit" or "review".
	Data string `json:"data"` // Opaque content of the action.
}

// NewAction constructs a new action.
func NewAction(kind string, data string) (Action, error) {
	if kind == "" {
		return Action{}, errors.New("action kind is required")
	}

	act := Action{
		Kind: kind,
		Data: data,
	}

	return act, nil
}

// Sign uses the specified private key to sign the action.
func (act Action) Sign(privateKey *ecdsa.PrivateKey) (SignedAction, error) {

	// Sign the action with the private key to produce a signature.
	v, r, s, err := signature.Sign(act, privateKey)
	if err != nil {
		return SignedAction{}, err
	}

	// Construct the signed action by adding the signature in the
	// [R|S|V] format.
	signedAct := SignedAction{
		Action: act,
		V:      v,
		R:      r,
		S:      s,
	}

	return signedAct, nil
}

// =============================================================================

// SignedAction is a signed version of the action. This is how clients
// provide actions for inclusion into the ledger.
type SignedAction struct {
	Action
	V *big.Int `json:"v"` // Recovery identifier, either 31 or 32 with the ledger chain id.
	R *big.Int `json:"r"` // First coordinate of the ECDSA signature.
	S *big.Int `json:"s"` // Second coordinate of the ECDSA signature.
}

// Validate verifies the action has a proper signature that conforms to our
// standards and is associated with the data claimed to be signed.
func (act SignedAction) Validate() error {
	if act.Kind == "" {
		return errors.New("action kind is required")
	}

	if err := signature.VerifySignature(act.Action, act.V, act.R, act.S); err != nil {
		return err
	}

	return nil
}

// FromAccount extracts the account id that signed the action.
func (act SignedAction) FromAccount() (AccountID, error) {
	address, err := signature.FromAddress(act.Action, act.V, act.R, act.S)
	return AccountID(address), err
}

// SignatureString returns the signature as a string.
func (act SignedAction) SignatureString() string {
	return signature.SignatureString(act.V, act.R, act.S)
}

// String implements the fmt.Stringer interface for logging.
func (act SignedAction) String() string {
	from, err := act.FromAccount()
	if err != nil {
		from = "unknown"
	}

	return fmt.Sprintf("%s:%s", from, act.Kind)
}

// =============================================================================

// BlockAction represents the action as it's recorded inside a block. This
// includes the time the node received the action.
type BlockAction struct {
	SignedAction
	TimeStamp uint64 `json:"timestamp"` // The time the action was received by the node.
}

// NewBlockAction constructs a new block action.
func NewBlockAction(signedAct SignedAction) BlockAction {
	return BlockAction{
		SignedAction: signedAct,
		TimeStamp:    uint64(time.Now().UTC().Unix()),
	}
}
