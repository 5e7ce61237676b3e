package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// keyFileBytes is the amount of random material written to a new key file.
const keyFileBytes = 32

// LoadOrGenerateKeyFile returns the master key material stored at path,
// creating the file with fresh random material (mode 0600) when it does not
// exist yet.
func LoadOrGenerateKeyFile(path string) ([]byte, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err == nil {
		material := strings.TrimSpace(string(data))
		if material == "" {
			return nil, fmt.Errorf("key file %s is empty", path)
		}
		return []byte(material), nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read key file: %w", err)
	}

	raw := make([]byte, keyFileBytes)
	if _, err := rand.Read(raw); err != nil {
		return nil, err
	}
	material := base64.RawURLEncoding.EncodeToString(raw)

	// O_EXCL so two processes racing on first start don't overwrite each
	// other's key.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, fs.ErrExist) {
		return LoadOrGenerateKeyFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create key file: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(material); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}
	return []byte(material), nil
}
