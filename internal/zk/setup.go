package zk

import (
	"bytes"
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"
	gnarklog "github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
)

// ShotPublic is the public part of a shot proof.
type ShotPublic struct {
	Commitment *big.Int `json:"commitment"`
	Index      int      `json:"index"`
	Hit        uint8    `json:"hit"`
}

// ShotWitness is everything the defender needs to prove one shot.
type ShotWitness struct {
	Bit        uint8
	Index      int
	Path       []*big.Int
	Dir        []uint8
	Salt       *big.Int
	Commitment *big.Int
}

// Keys holds the compiled shot circuit and its groth16 keys, in memory only.
type Keys struct {
	cs constraint.ConstraintSystem
	pk groth16.ProvingKey
	vk groth16.VerifyingKey
}

// SetLogger routes gnark's internal logging, which defaults to stdout.
func SetLogger(l zerolog.Logger, enabled bool) {
	if !enabled {
		gnarklog.Disable()
		return
	}
	gnarklog.Set(l)
}

// Setup compiles the circuit once and runs a fresh groth16 setup.
func Setup() (*Keys, error) {
	var circuit ShotCircuit
	cs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &circuit)
	if err != nil {
		return nil, err
	}
	pk, vk, err := groth16.Setup(cs)
	if err != nil {
		return nil, err
	}
	return &Keys{cs: cs, pk: pk, vk: vk}, nil
}

// VerifyingKey serializes the verifying key for a referee.
func (k *Keys) VerifyingKey() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := k.vk.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Prove one shot.
func (k *Keys) Prove(w ShotWitness) ([]byte, ShotPublic, error) {
	if len(w.Path) != MerkleDepth || len(w.Dir) != MerkleDepth {
		return nil, ShotPublic{}, errors.New("bad path length")
	}
	if w.Salt == nil || w.Commitment == nil {
		return nil, ShotPublic{}, errors.New("missing salt or commitment")
	}

	var assign ShotCircuit
	assign.Bit = w.Bit
	assign.Salt = w.Salt
	for i := 0; i < MerkleDepth; i++ {
		assign.Path[i] = w.Path[i]
		assign.Dir[i] = w.Dir[i]
	}
	assign.Commitment = w.Commitment
	assign.Index = w.Index
	assign.Hit = w.Bit

	fullWit, err := frontend.NewWitness(&assign, ecc.BN254.ScalarField())
	if err != nil {
		return nil, ShotPublic{}, err
	}
	proof, err := groth16.Prove(k.cs, k.pk, fullWit)
	if err != nil {
		return nil, ShotPublic{}, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, ShotPublic{}, err
	}
	pub := ShotPublic{Commitment: new(big.Int).Set(w.Commitment), Index: w.Index, Hit: w.Bit}
	return buf.Bytes(), pub, nil
}

// Verify checks a shot proof against the expected commitment. nil means valid.
func (k *Keys) Verify(proofBin []byte, pub ShotPublic, commitment *big.Int) error {
	if pub.Commitment == nil {
		return errors.New("proof payload missing commitment")
	}
	if pub.Commitment.Cmp(commitment) != 0 {
		return errors.New("commitment mismatch")
	}

	var pubAssign ShotCircuit
	pubAssign.Commitment = commitment
	pubAssign.Index = pub.Index
	pubAssign.Hit = pub.Hit

	pubWit, err := frontend.NewWitness(&pubAssign, ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return err
	}
	pr := groth16.NewProof(ecc.BN254)
	if _, err := pr.ReadFrom(bytes.NewReader(proofBin)); err != nil {
		return err
	}
	return groth16.Verify(pr, k.vk, pubWit)
}
