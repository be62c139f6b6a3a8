package circuitgen

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
)

// ErrDigestMismatch reports circuit source whose digest differs from the
// one recorded in a manifest.
var ErrDigestMismatch = errors.New("manifest: source digest mismatch")

// Manifest records everything needed to reproduce and audit one generated
// challenge instance. Reproduction is only guaranteed by the generator
// version that wrote it.
type Manifest struct {
	Generator  string `cbor:"generator"`
	Seed       string `cbor:"seed"`
	Difficulty uint32 `cbor:"difficulty"`
	Config     Config `cbor:"config"`
	Field      string `cbor:"field"`
	Digest     string `cbor:"digest"`
}

// NewManifest builds the manifest for source generated from (seed, cfg) at
// difficulty delta.
func NewManifest(seed string, delta uint32, cfg Config, source []byte) Manifest {
	return Manifest{
		Generator:  Version.String(),
		Seed:       seed,
		Difficulty: delta,
		Config:     cfg,
		Field:      Field().String(),
		Digest:     SourceDigest(source),
	}
}

// SourceDigest returns the hex SHA-256 digest of circuit source bytes.
func SourceDigest(source []byte) string {
	sum := sha256.Sum256(source)
	return hex.EncodeToString(sum[:])
}

// Check verifies circuit source bytes against the recorded digest.
func (m Manifest) Check(source []byte) error {
	if SourceDigest(source) != m.Digest {
		return ErrDigestMismatch
	}
	return nil
}

// Serialize writes the manifest to w in canonical CBOR, so equal manifests
// have equal bytes.
func (m Manifest) Serialize(w io.Writer) error {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	if err := em.NewEncoder(w).Encode(m); err != nil {
		return fmt.Errorf("manifest: encoding: %w", err)
	}
	return nil
}

// Deserialize reads a manifest from r.
func Deserialize(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := cbor.NewDecoder(r).Decode(&m); err != nil {
		return Manifest{}, fmt.Errorf("manifest: decoding: %w", err)
	}
	return m, nil
}

// Write stores the manifest at path.
func (m Manifest) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()
	return m.Serialize(f)
}

// ReadManifest loads a manifest from path.
func ReadManifest(path string) (Manifest, error) {
	f, err := os.Open(path)
	if err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w", err)
	}
	defer f.Close()
	return Deserialize(f)
}
