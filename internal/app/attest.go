package app

import (
	"encoding/base64"
	"fmt"
	"math/big"

	"github.com/rs/zerolog"

	"battleship-ai/internal/codec"
	"battleship-ai/internal/game"
	"battleship-ai/internal/merkle"
	"battleship-ai/internal/zk"
)

// Commitment binds the own fleet before play starts.
type Commitment struct {
	Value  *big.Int
	Secret codec.Secret
	salt   *big.Int
}

func (c *Commitment) Hex() string { return fmt.Sprintf("0x%x", c.Value) }

// Commit hashes the board's occupancy bits into a salted MiMC merkle root.
func Commit(b *game.Board) (*Commitment, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	bits := b.Flatten()
	t, err := merkle.Build(bits)
	if err != nil {
		return nil, err
	}
	// the salt keeps equal boards from producing equal commitments
	salt, err := merkle.Salt()
	if err != nil {
		return nil, err
	}
	return &Commitment{
		Value: merkle.Commit(t.Root(), salt),
		Secret: codec.Secret{
			Bits:    bits,
			Tree:    t,
			SaltHex: fmt.Sprintf("0x%x", salt),
		},
		salt: salt,
	}, nil
}

// Shoot proves the committed content of cell p.
func (c *Commitment) Shoot(keys *zk.Keys, p game.Point) (*codec.ShotProofPayload, error) {
	if !p.In() {
		return nil, fmt.Errorf("cell %s out of range", p)
	}
	idx := p.Index()
	path, dir, err := c.Secret.Tree.Path(idx)
	if err != nil {
		return nil, err
	}
	proof, pub, err := keys.Prove(zk.ShotWitness{
		Bit:        c.Secret.Bits[idx],
		Index:      idx,
		Path:       path,
		Dir:        dir,
		Salt:       c.salt,
		Commitment: c.Value,
	})
	if err != nil {
		return nil, err
	}
	return &codec.ShotProofPayload{Proof: proof, Public: pub}, nil
}

// Attestor logs the fleet commitment and, when keys are present, a proof
// for every answered shot.
type Attestor struct {
	commit *Commitment
	keys   *zk.Keys
	log    zerolog.Logger
}

// NewAttestor commits to the board. With prove set it also runs the groth16
// setup for shot proofs, which takes a moment.
func NewAttestor(b *game.Board, prove bool, log zerolog.Logger) (*Attestor, error) {
	c, err := Commit(b)
	if err != nil {
		return nil, fmt.Errorf("commit fleet: %w", err)
	}
	a := &Attestor{commit: c, log: log}

	ev := log.Info().Str("commitment", c.Hex())
	if prove {
		if a.keys, err = zk.Setup(); err != nil {
			return nil, fmt.Errorf("shot circuit setup: %w", err)
		}
		vk, err := a.keys.VerifyingKey()
		if err != nil {
			return nil, err
		}
		ev = ev.Str("vk", base64.StdEncoding.EncodeToString(vk))
	}
	ev.Msg("fleet committed")
	return a, nil
}

func (a *Attestor) Commitment() *Commitment { return a.commit }

// Attest proves and self-checks the answer for cell p.
func (a *Attestor) Attest(p game.Point) {
	if a.keys == nil {
		return
	}
	payload, err := a.commit.Shoot(a.keys, p)
	if err != nil {
		a.log.Error().Err(err).Stringer("cell", p).Msg("shot proof failed")
		return
	}
	if err := a.keys.Verify(payload.Proof, payload.Public, a.commit.Value); err != nil {
		a.log.Error().Err(err).Stringer("cell", p).Msg("shot proof does not verify")
		return
	}
	a.log.Debug().Interface("payload", payload).Msg("shot attested")
}

// Reveal publishes the salt so the commitment can be checked after the game.
func (a *Attestor) Reveal() {
	a.log.Info().
		Str("commitment", a.commit.Hex()).
		Interface("secret", a.commit.Secret).
		Msg("fleet revealed")
}
