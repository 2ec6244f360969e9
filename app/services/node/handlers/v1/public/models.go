package public

import (
	"math/big"

	"github.com/actionchain/actionchain/foundation/blockchain/database"
	"github.com/actionchain/actionchain/foundation/nameservice"
	"github.com/actionchain/actionchain/foundation/validate"
)

// submitAction is the request model for submitting a signed action.
type submitAction struct {
	Kind string   `json:"kind" validate:"required"`
	Data string   `json:"data"`
	V    *big.Int `json:"v" validate:"required"`
	R    *big.Int `json:"r" validate:"required"`
	S    *big.Int `json:"s" validate:"required"`
}

// Validate checks the data in the model is considered clean.
func (sa submitAction) Validate() error {
	return validate.Check(sa)
}

// toSignedAction converts the request model into the database value.
func toSignedAction(sa submitAction) database.SignedAction {
	return database.SignedAction{
		Action: database.Action{
			Kind: sa.Kind,
			Data: sa.Data,
		},
		V: sa.V,
		R: sa.R,
		S: sa.S,
	}
}

// action represents an action inside a block or the buffer with the author
// resolved through the name service.
type action struct {
	Author     database.AccountID `json:"author"`
	AuthorName string             `json:"author_name"`
	Kind       string             `json:"kind"`
	Data       string             `json:"data"`
	TimeStamp  uint64             `json:"timestamp"`
	Sig        string             `json:"sig"`
}

// toAction converts a block action into the client view of an action.
func toAction(ns *nameservice.NameService, blockAction database.BlockAction) action {
	author, err := blockAction.FromAccount()
	if err != nil {
		author = "unknown"
	}

	return action{
		Author:     author,
		AuthorName: ns.Lookup(author),
		Kind:       blockAction.Kind,
		Data:       blockAction.Data,
		TimeStamp:  blockAction.TimeStamp,
		Sig:        blockAction.SignatureString(),
	}
}

// block represents a mined block with its actions enriched for clients.
type block struct {
	Hash    string               `json:"hash"`
	Header  database.BlockHeader `json:"block"`
	Actions []action             `json:"actions"`
}

// toBlock converts a database block into the client view of a block.
func toBlock(ns *nameservice.NameService, dbBlock database.Block) block {
	actions := make([]action, len(dbBlock.Actions))
	for i, blockAction := range dbBlock.Actions {
		actions[i] = toAction(ns, blockAction)
	}

	return block{
		Hash:    dbBlock.Hash(),
		Header:  dbBlock.Header,
		Actions: actions,
	}
}
