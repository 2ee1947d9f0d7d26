package checksum

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

func GetFileChecksum(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file %s: %w", filePath, err)
	}
	defer file.Close()

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("failed to copy file content to hasher for file %s: %w", filePath, err)
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// Digest accumulates everything written to it, so it can sit next to a
// file in an io.MultiWriter and report the checksum of what was written.
type Digest struct {
	hasher *xxhash.Digest
}

func NewDigest() *Digest {
	return &Digest{hasher: xxhash.New()}
}

func (d *Digest) Write(p []byte) (int, error) {
	return d.hasher.Write(p)
}

func (d *Digest) String() string {
	return hex.EncodeToString(d.hasher.Sum(nil))
}
