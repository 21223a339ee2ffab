package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDetectContainerAcceptsSignature(t *testing.T) {
	payload := append(append([]byte{}, hdf5Signature...), []byte("rest of the superblock")...)
	path := writeFile(t, "data.h5", payload)

	assert.NoError(t, detectContainer(path))
}

func TestDetectContainerRejectsOtherFiles(t *testing.T) {
	path := writeFile(t, "notes.txt", []byte("plain text, long enough to read 8 bytes"))

	err := detectContainer(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an HDF5 container")
}

func TestDetectContainerRejectsShortFiles(t *testing.T) {
	path := writeFile(t, "tiny.h5", hdf5Signature[:4])

	assert.Error(t, detectContainer(path))
}

func TestDetectContainerMissingFile(t *testing.T) {
	err := detectContainer(filepath.Join(t.TempDir(), "nope.h5"))
	assert.Error(t, err)
}
