package generation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/thiago-r-goveia/promptgen/pkg/checksum"
)

// ensureOutputDir creates the parent directory of path when it is missing and
// reports whether it had to.
func ensureOutputDir(path string) (bool, error) {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return false, nil
	}
	if _, err := os.Stat(dir); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, err
	}
	return true, nil
}

// promptFile writes one prompt per line and keeps a running checksum of
// everything written.
type promptFile struct {
	file   *os.File
	buf    *bufio.Writer
	digest *checksum.Digest
	lines  int
}

func createPromptFile(path string) (*promptFile, error) {
	file, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	digest := checksum.NewDigest()
	return &promptFile{
		file:   file,
		buf:    bufio.NewWriter(io.MultiWriter(file, digest)),
		digest: digest,
	}, nil
}

func (p *promptFile) WriteLine(line string) error {
	if _, err := p.buf.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write line %d: %w", p.lines+1, err)
	}
	p.lines++
	return nil
}

// Close flushes and releases the file. It is safe to call more than once.
func (p *promptFile) Close() error {
	if p.file == nil {
		return nil
	}
	flushErr := p.buf.Flush()
	closeErr := p.file.Close()
	p.file = nil
	return errors.Join(flushErr, closeErr)
}

func (p *promptFile) Checksum() string {
	return p.digest.String()
}
