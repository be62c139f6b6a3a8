package generator

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/chacha20"
)

// prng is the deterministic random source driving one generation run. The
// seed string is hashed with SHA-256 and the digest keys a ChaCha20
// keystream: the sequence is reproducible across processes and machines,
// and unpredictable without the seed.
//
// Draw widths are part of the determinism contract. Every primitive below
// consumes whole 8-byte words from the keystream (intn may consume several
// on rejection); changing any of them changes every emitted circuit.
type prng struct {
	cipher *chacha20.Cipher
}

func newPRNG(seed string) *prng {
	key := sha256.Sum256([]byte(seed))
	cipher, err := chacha20.NewUnauthenticatedCipher(key[:], make([]byte, chacha20.NonceSize))
	if err != nil {
		// key and nonce sizes are compile-time constants
		panic(err)
	}
	return &prng{cipher: cipher}
}

// uint64 returns the next 8 keystream bytes as a big-endian word.
func (r *prng) uint64() uint64 {
	var b [8]byte
	r.cipher.XORKeyStream(b[:], b[:])
	return binary.BigEndian.Uint64(b[:])
}

// float64 returns a uniform draw in [0,1) with 53 bits of precision.
func (r *prng) float64() float64 {
	return float64(r.uint64()>>11) / (1 << 53)
}

// intn returns a uniform draw in [0,n). Draws that would bias the modulo
// are rejected and redrawn.
func (r *prng) intn(n int) int {
	if n <= 0 {
		panic("intn: bound must be positive")
	}
	limit := ^uint64(0) - ^uint64(0)%uint64(n)
	for {
		v := r.uint64()
		if v < limit {
			return int(v % uint64(n))
		}
	}
}

// coin returns true with probability 1/2.
func (r *prng) coin() bool {
	return r.uint64()&1 == 0
}

// fill overwrites dst with the next len(dst) keystream bytes.
func (r *prng) fill(dst []byte) {
	for i := range dst {
		dst[i] = 0
	}
	r.cipher.XORKeyStream(dst, dst)
}
