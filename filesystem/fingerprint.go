package filesystem

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Fingerprint is a BLAKE3 digest of a tree's state.
type Fingerprint [32]byte

// Fingerprint digests the initialization flag and, in pre-order, every
// node's type, path and (for files) contents. Two trees with equal structure
// and contents have equal fingerprints.
func (t *Tree) Fingerprint() Fingerprint {
	h := blake3.New()
	var lenBuf [8]byte

	if t.initialized {
		h.Write([]byte{1})
	} else {
		h.Write([]byte{0})
	}
	t.Walk(func(n *Node) bool {
		if n.IsFile() {
			h.Write([]byte{'f'})
		} else {
			h.Write([]byte{'d'})
		}
		binary.LittleEndian.PutUint64(lenBuf[:], uint64(n.path.Len()))
		h.Write(lenBuf[:])
		h.Write([]byte(n.path.String()))
		if n.IsFile() {
			contents := n.Contents()
			binary.LittleEndian.PutUint64(lenBuf[:], uint64(len(contents)))
			h.Write(lenBuf[:])
			h.Write(contents)
		}
		return true
	})

	var fp Fingerprint
	copy(fp[:], h.Sum(nil))
	return fp
}

func (f Fingerprint) String() string {
	return hex.EncodeToString(f[:])
}
