package circuitgen

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func testManifest(t *testing.T) (Manifest, []byte) {
	t.Helper()
	source := []byte("pragma circom 2.0.0;\n\ntemplate Challenge() {\n}\n")
	return NewManifest("block_42", 3, Scale(3), source), source
}

func TestManifestRoundTrip(t *testing.T) {
	m, _ := testManifest(t)

	var buf bytes.Buffer
	require.NoError(t, m.Serialize(&buf))

	got, err := Deserialize(&buf)
	require.NoError(t, err)
	require.Equal(t, m, got)
}

func TestManifestSerializeIsCanonical(t *testing.T) {
	m, _ := testManifest(t)

	var a, b bytes.Buffer
	require.NoError(t, m.Serialize(&a))
	require.NoError(t, m.Serialize(&b))
	require.Equal(t, a.Bytes(), b.Bytes())
}

func TestManifestFileRoundTrip(t *testing.T) {
	m, _ := testManifest(t)

	path := filepath.Join(t.TempDir(), "challenge.manifest")
	require.NoError(t, m.Write(path))

	got, err := ReadManifest(path)
	require.NoError(t, err)
	require.Equal(t, m, got)

	_, err = ReadManifest(filepath.Join(t.TempDir(), "missing.manifest"))
	require.Error(t, err)
}

func TestManifestCheck(t *testing.T) {
	m, source := testManifest(t)
	require.NoError(t, m.Check(source))

	tampered := append([]byte{}, source...)
	tampered[0] ^= 1
	require.ErrorIs(t, m.Check(tampered), ErrDigestMismatch)
	require.ErrorIs(t, m.Check(nil), ErrDigestMismatch)
}

func TestManifestRecordsEnvironment(t *testing.T) {
	m, _ := testManifest(t)
	require.Equal(t, Version.String(), m.Generator)
	require.Equal(t, Field().String(), m.Field)
	require.Equal(t, uint32(3), m.Difficulty)
	require.Equal(t, Scale(3), m.Config)
	require.Len(t, m.Digest, 64)
}
