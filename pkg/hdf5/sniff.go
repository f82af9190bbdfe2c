package hdf5

import (
	"bytes"
	"errors"
	"io"
	"os"
)

// signature is the 8-byte magic at the start of every HDF5 superblock.
var signature = []byte("\211HDF\r\n\032\n")

// Sniff reports whether the file carries an HDF5 signature. The superblock
// may sit at offset 0, 512, 1024, or any further doubling, so each candidate
// offset is probed until one matches or the file ends.
func Sniff(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	buf := make([]byte, len(signature))
	for offset := int64(0); ; {
		_, err := f.ReadAt(buf, offset)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return false, nil
			}
			return false, err
		}
		if bytes.Equal(buf, signature) {
			return true, nil
		}
		if offset == 0 {
			offset = 512
		} else {
			offset *= 2
		}
	}
}
