package codec

import (
	"battleship-ai/internal/merkle"
	"battleship-ai/internal/zk"
)

// Secret is what the defender keeps back until the game ends.
type Secret struct {
	Bits    []uint8      `json:"bits"`
	Tree    *merkle.Tree `json:"-"`
	SaltHex string       `json:"salt_hex"`
}

type ShotProofPayload struct {
	Proof  []byte        `json:"proof"`
	Public zk.ShotPublic `json:"public"` // commitment, cell index and hit bit
}
