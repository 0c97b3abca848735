package merkle

import (
	"errors"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	bnmimc "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

const (
	Depth  = 7
	Leaves = 1 << Depth // 128, enough for a 10x10 board
)

// feBytes encodes x as a reduced BN254 scalar, 32 bytes big-endian.
func feBytes(x *big.Int) []byte {
	var e fr.Element
	e.SetBigInt(x)
	b := e.Bytes()
	return b[:]
}

// HashLeaf is MiMC(bit), matching the in-circuit leaf hash.
func HashLeaf(bit uint8) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(new(big.Int).SetUint64(uint64(bit))))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// HashNode is MiMC(left, right).
func HashNode(left, right *big.Int) *big.Int {
	h := bnmimc.NewMiMC()
	h.Write(feBytes(left))
	h.Write(feBytes(right))
	return new(big.Int).SetBytes(h.Sum(nil))
}

// Tree is a fixed-size binary merkle tree over cell bits, stored level by
// level: levels[0] are the leaves, levels[Depth] holds the root.
type Tree struct {
	levels [][]*big.Int
}

// Build hashes bits into a Leaves-wide tree, padding with HashLeaf(0).
func Build(bits []uint8) (*Tree, error) {
	if len(bits) > Leaves {
		return nil, errors.New("too many leaves")
	}
	pad := HashLeaf(0)
	leaves := make([]*big.Int, Leaves)
	for i := range leaves {
		if i < len(bits) {
			if bits[i] > 1 {
				return nil, errors.New("leaf is not a bit")
			}
			leaves[i] = HashLeaf(bits[i])
		} else {
			leaves[i] = pad
		}
	}

	t := &Tree{levels: [][]*big.Int{leaves}}
	for prev := leaves; len(prev) > 1; {
		up := make([]*big.Int, len(prev)/2)
		for i := range up {
			up[i] = HashNode(prev[2*i], prev[2*i+1])
		}
		t.levels = append(t.levels, up)
		prev = up
	}
	return t, nil
}

func (t *Tree) Root() *big.Int { return new(big.Int).Set(t.levels[Depth][0]) }

// Path returns sibling hashes and direction bits for leaf idx, bottom up.
// dir[i]=1 means the running node is the right child at level i.
func (t *Tree) Path(idx int) (path []*big.Int, dir []uint8, err error) {
	if idx < 0 || idx >= Leaves {
		return nil, nil, errors.New("leaf index out of range")
	}
	path = make([]*big.Int, 0, Depth)
	dir = make([]uint8, 0, Depth)
	cur := idx
	for level := 0; level < Depth; level++ {
		sib := cur ^ 1
		path = append(path, new(big.Int).Set(t.levels[level][sib]))
		dir = append(dir, uint8(cur&1))
		cur >>= 1
	}
	return path, dir, nil
}

// VerifyPath recomputes the root from a leaf bit and its path.
func VerifyPath(bit uint8, path []*big.Int, dir []uint8, root *big.Int) bool {
	if len(path) != Depth || len(dir) != Depth {
		return false
	}
	cur := HashLeaf(bit)
	for i := range path {
		if dir[i] == 1 {
			cur = HashNode(path[i], cur)
		} else {
			cur = HashNode(cur, path[i])
		}
	}
	return cur.Cmp(root) == 0
}

// Salt draws a random field element.
func Salt() (*big.Int, error) {
	var e fr.Element
	if _, err := e.SetRandom(); err != nil {
		return nil, err
	}
	return e.BigInt(new(big.Int)), nil
}

// Commit binds a tree root to a secret salt: MiMC(salt, root).
func Commit(root, salt *big.Int) *big.Int { return HashNode(salt, root) }
