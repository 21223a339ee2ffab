package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
)

// hdf5Signature is the fixed 8-byte magic at the start of every HDF5
// container.
var hdf5Signature = []byte{0x89, 0x48, 0x44, 0x46, 0x0D, 0x0A, 0x1A, 0x0A}

// detectContainer checks that path begins with the HDF5 signature. Files
// that do not match are handed back to normal file handling, so the
// error is a plain diagnostic, not a provider failure.
func detectContainer(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	sig := make([]byte, len(hdf5Signature))
	if _, err := io.ReadFull(f, sig); err != nil {
		return fmt.Errorf("%s: not an HDF5 container", path)
	}
	if !bytes.Equal(sig, hdf5Signature) {
		return fmt.Errorf("%s: not an HDF5 container", path)
	}
	return nil
}
