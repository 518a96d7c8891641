package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"filippo.io/age"
)

// EnableEncryption encrypts all data files with the given passphrase
func (s *Store) EnableEncryption(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.encrypted {
		return fmt.Errorf("encryption is already enabled")
	}
	if len(passphrase) < 8 {
		return fmt.Errorf("passphrase must be at least 8 characters")
	}

	recipient, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create recipient: %w", err)
	}
	identity, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return fmt.Errorf("failed to create identity: %w", err)
	}

	// Verification file goes first so a later Unlock can check the passphrase
	verifyPath := filepath.Join(s.baseDir, verifyFile)
	encrypted, err := encryptData([]byte(verifyMagic), recipient)
	if err != nil {
		return fmt.Errorf("failed to encrypt verification file: %w", err)
	}
	if err := os.WriteFile(verifyPath, encrypted, 0644); err != nil {
		return fmt.Errorf("failed to write verification file: %w", err)
	}

	files, err := s.dataFiles()
	if err != nil {
		os.Remove(verifyPath)
		return fmt.Errorf("failed to scan files: %w", err)
	}

	for _, path := range files {
		if err := s.encryptFile(path, recipient); err != nil {
			// Best-effort rollback of whatever got encrypted
			s.rollbackEncryption(files, identity)
			os.Remove(verifyPath)
			return fmt.Errorf("failed to encrypt %s: %w", filepath.Base(path), err)
		}
	}

	markerPath := filepath.Join(s.baseDir, markerFile)
	if err := os.WriteFile(markerPath, []byte("encrypted"), 0644); err != nil {
		return fmt.Errorf("failed to create marker file: %w", err)
	}

	s.encrypted = true
	s.identity = identity
	s.recipient = recipient

	return nil
}

// DisableEncryption decrypts all data files (requires the current passphrase)
func (s *Store) DisableEncryption(passphrase string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.encrypted {
		return fmt.Errorf("encryption is not enabled")
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
	if err != nil || string(decrypted) != verifyMagic {
		return fmt.Errorf("incorrect passphrase")
	}

	files, err := s.dataFiles()
	if err != nil {
		return fmt.Errorf("failed to scan files: %w", err)
	}

	for _, path := range files {
		if err := s.decryptFile(path, identity); err != nil {
			return fmt.Errorf("failed to decrypt %s: %w", filepath.Base(path), err)
		}
	}

	os.Remove(verifyPath)
	os.Remove(filepath.Join(s.baseDir, markerFile))

	s.encrypted = false
	s.identity = nil
	s.recipient = nil

	return nil
}

// encryptFile encrypts a single file in place, skipping already-encrypted files
func (s *Store) encryptFile(path string, recipient *age.ScryptRecipient) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if isAgeEncrypted(data) {
		return nil
	}

	encrypted, err := encryptData(data, recipient)
	if err != nil {
		return err
	}
	return atomicWrite(path, encrypted, 0644)
}

// decryptFile decrypts a single file in place, skipping plaintext files
func (s *Store) decryptFile(path string, identity *age.ScryptIdentity) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !isAgeEncrypted(data) {
		return nil
	}

	decrypted, err := decryptData(data, identity)
	if err != nil {
		return err
	}
	return atomicWrite(path, decrypted, 0644)
}

// rollbackEncryption restores plaintext after a failed EnableEncryption
func (s *Store) rollbackEncryption(files []string, identity *age.ScryptIdentity) {
	for _, path := range files {
		_ = s.decryptFile(path, identity)
	}
}
