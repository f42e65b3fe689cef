package core

import (
	"bytes"
	"fmt"

	"golang.org/x/crypto/sha3"
)

const (
	leafPrefix byte = 0x00
	nodePrefix byte = 0x01
)

// MerkleTree represents a Merkle tree for committing to trace rows
type MerkleTree struct {
	root   []byte
	leaves [][]byte
	levels [][][]byte
}

// ProofNode represents a node in a Merkle authentication path
type ProofNode struct {
	Hash    []byte `cbor:"1,keyasint"`
	IsRight bool   `cbor:"2,keyasint"` // true if this sibling is the right child
}

// NewMerkleTree creates a new Merkle tree from the given data
func NewMerkleTree(data [][]byte) (*MerkleTree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("cannot create Merkle tree with empty data")
	}

	leaves := make([][]byte, len(data))
	for i, item := range data {
		leaves[i] = hashLeaf(item)
	}

	levels := [][][]byte{leaves}
	currentLevel := leaves

	for len(currentLevel) > 1 {
		nextLevel := make([][]byte, 0, (len(currentLevel)+1)/2)

		for i := 0; i < len(currentLevel); i += 2 {
			if i+1 < len(currentLevel) {
				nextLevel = append(nextLevel, hashNode(currentLevel[i], currentLevel[i+1]))
			} else {
				// Odd number of nodes, hash the last node with itself
				nextLevel = append(nextLevel, hashNode(currentLevel[i], currentLevel[i]))
			}
		}

		levels = append(levels, nextLevel)
		currentLevel = nextLevel
	}

	return &MerkleTree{
		root:   currentLevel[0],
		leaves: leaves,
		levels: levels,
	}, nil
}

// Root returns the Merkle root
func (mt *MerkleTree) Root() []byte {
	return append([]byte(nil), mt.root...)
}

// Size returns the number of leaves
func (mt *MerkleTree) Size() int {
	return len(mt.leaves)
}

// Proof generates the authentication path for the leaf at index
func (mt *MerkleTree) Proof(index int) ([]ProofNode, error) {
	if index < 0 || index >= len(mt.leaves) {
		return nil, fmt.Errorf("index %d out of range [0, %d)", index, len(mt.leaves))
	}

	var proof []ProofNode
	currentIndex := index

	for level := 0; level < len(mt.levels)-1; level++ {
		currentLevel := mt.levels[level]

		var node ProofNode
		if currentIndex%2 == 0 {
			sibling := currentIndex + 1
			if sibling >= len(currentLevel) {
				sibling = currentIndex
			}
			node = ProofNode{Hash: currentLevel[sibling], IsRight: true}
		} else {
			node = ProofNode{Hash: currentLevel[currentIndex-1], IsRight: false}
		}

		proof = append(proof, node)
		currentIndex /= 2
	}

	return proof, nil
}

// VerifyProof checks that leaf is committed at index under root
func VerifyProof(root []byte, leaf []byte, proof []ProofNode, index int) bool {
	hash := hashLeaf(leaf)
	currentIndex := index

	for _, node := range proof {
		// the path must agree with the claimed index
		if node.IsRight != (currentIndex%2 == 0) {
			return false
		}

		if node.IsRight {
			hash = hashNode(hash, node.Hash)
		} else {
			hash = hashNode(node.Hash, hash)
		}
		currentIndex /= 2
	}

	return currentIndex == 0 && bytes.Equal(hash, root)
}

func hashLeaf(data []byte) []byte {
	h := sha3.New256()
	h.Write([]byte{leafPrefix})
	h.Write(data)

	return h.Sum(nil)
}

func hashNode(left, right []byte) []byte {
	h := sha3.New256()
	h.Write([]byte{nodePrefix})
	h.Write(left)
	h.Write(right)

	return h.Sum(nil)
}
