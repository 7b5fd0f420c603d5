// Package asset reads and writes generated text files.
package asset

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
)

// Local is a file store on the local filesystem.
type Local struct {
	// Perm is the mode for newly written files. Zero means 0644.
	Perm os.FileMode
}

// NewLocal returns a store that writes files with mode 0644.
func NewLocal() *Local {
	return &Local{Perm: 0644}
}

// ReadText returns the contents of path. A missing file yields an error
// matching fs.ErrNotExist.
func (l *Local) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// WriteText writes content to path, creating parent directories as needed.
// An existing file is overwritten.
func (l *Local) WriteText(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	perm := l.Perm
	if perm == 0 {
		perm = 0644
	}
	return os.WriteFile(path, []byte(content), perm)
}

// Digest returns the hex BLAKE3-256 digest of content.
func Digest(content string) string {
	sum := blake3.Sum256([]byte(content))
	return hex.EncodeToString(sum[:])
}

// ShortDigest returns the first 12 hex characters of Digest(content).
func ShortDigest(content string) string {
	return Digest(content)[:12]
}
