// Package storage provides transparent at-rest encryption for the data
// directory. Files are encrypted with age scrypt recipients; unencrypted
// directories pass reads and writes straight through.
package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"filippo.io/age"
)

const (
	// ageHeader is the prefix of age-encrypted files
	ageHeader = "age-encryption.org"

	// markerFile indicates encryption is enabled
	markerFile = ".encrypted"

	// verifyFile is used to validate the passphrase
	verifyFile = ".encryption-verify"

	// verifyMagic is the expected content in the verify file
	verifyMagic = `{"magic":"findash-encryption-verify","version":1}`
)

// Store provides file access over a possibly-encrypted data directory
type Store struct {
	baseDir   string
	encrypted bool
	identity  *age.ScryptIdentity
	recipient *age.ScryptRecipient
	mu        sync.RWMutex
}

// Open creates a Store over the given base directory, detecting whether it
// was previously encrypted.
func Open(baseDir string) (*Store, error) {
	s := &Store{baseDir: baseDir}

	markerPath := filepath.Join(baseDir, markerFile)
	if _, err := os.Stat(markerPath); err == nil {
		s.encrypted = true
	}

	return s, nil
}

// BaseDir returns the base directory
func (s *Store) BaseDir() string {
	return s.baseDir
}

// IsEncrypted returns true if the data directory is encrypted
func (s *Store) IsEncrypted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.encrypted
}

// IsUnlocked returns true when reads will succeed: either encryption is off
// or a verified passphrase is held.
func (s *Store) IsUnlocked() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.encrypted || s.identity != nil
}

// Unlock verifies the passphrase against the verification file and keeps
// the derived identity in memory for subsequent reads and writes.
func (s *Store) Unlock(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return nil
	}

	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	verifyPath := filepath.Join(s.baseDir, verifyFile)
	encrypted, err := os.ReadFile(verifyPath)
	if err != nil {
		return fmt.Errorf("failed to read verification file: %w", err)
	}

	decrypted, err := decryptData(encrypted, identity)
	if err != nil {
		return fmt.Errorf("incorrect passphrase")
	}
	if string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect passphrase (verification failed)")
	}

	s.identity = identity
	s.recipient, _ = age.NewScryptRecipient(passphrase)

	return nil
}

// Lock clears the encryption key from memory
func (s *Store) Lock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	s.recipient = nil
}

// ReadFile reads and, when necessary, decrypts a file
func (s *Store) ReadFile(path string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if isAgeEncrypted(data) {
		if s.identity == nil {
			return nil, fmt.Errorf("file is encrypted but store is locked")
		}
		return decryptData(data, s.identity)
	}

	return data, nil
}

// WriteFile writes and, when encryption is enabled and unlocked, encrypts a file
func (s *Store) WriteFile(path string, data []byte, perm os.FileMode) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.shouldSkipEncryption(path) {
		return atomicWrite(path, data, perm)
	}

	if s.encrypted && s.recipient != nil {
		encrypted, err := encryptData(data, s.recipient)
		if err != nil {
			return fmt.Errorf("failed to encrypt: %w", err)
		}
		data = encrypted
	}

	return atomicWrite(path, data, perm)
}

// OpenFile returns a reader for a potentially encrypted file
func (s *Store) OpenFile(path string) (io.ReadCloser, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Stat returns file info, useful for checking existence
func (s *Store) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

// Glob returns files matching a pattern
func (s *Store) Glob(pattern string) ([]string, error) {
	return filepath.Glob(pattern)
}

// atomicWrite writes via a temp file and rename so readers never observe a
// partially written file.
func atomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// shouldSkipEncryption returns true for bookkeeping files that must stay
// readable without a passphrase.
func (s *Store) shouldSkipEncryption(path string) bool {
	base := filepath.Base(path)
	return base == markerFile || base == verifyFile
}

// isAgeEncrypted checks if data starts with the age encryption header
func isAgeEncrypted(data []byte) bool {
	return len(data) > len(ageHeader) && string(data[:len(ageHeader)]) == ageHeader
}

// encryptData encrypts data for the given scrypt recipient
func encryptData(data []byte, recipient *age.ScryptRecipient) ([]byte, error) {
	var buf bytes.Buffer

	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// decryptData decrypts age-encrypted data with the given identity
func decryptData(data []byte, identity *age.ScryptIdentity) ([]byte, error) {
	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// dataFiles lists the plaintext data files under baseDir that encryption
// migrations operate on: the CSV and JSON inputs of the loader.
func (s *Store) dataFiles() ([]string, error) {
	var files []string
	err := filepath.Walk(s.baseDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || s.shouldSkipEncryption(path) {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if ext == ".csv" || ext == ".json" {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
