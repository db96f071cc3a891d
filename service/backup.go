package service

import (
	"bufio"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"golang.org/x/crypto/sha3"
)

// ChecksumSuffix names the file holding a backup's SHA3-256 digest.
const ChecksumSuffix = ".sha3"

var errNoChecksum = errors.New("backup has no checksum file")

// writeBackup streams a full Badger backup to path and records its digest
// next to it. The digest is returned.
func writeBackup(db *badger.DB, path string) (string, error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := db.Backup(io.MultiWriter(f, h), 0); err != nil {
		return "", fmt.Errorf("failed to backup database: %w", err)
	}
	if err := f.Sync(); err != nil {
		return "", err
	}

	sum := hex.EncodeToString(h.Sum(nil))
	line := fmt.Sprintf("%s  %s\n", sum, filepath.Base(path))
	if err := os.WriteFile(path+ChecksumSuffix, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("failed to write checksum: %w", err)
	}
	return sum, nil
}

// fileChecksum returns the hex SHA3-256 digest of a file.
func fileChecksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha3.New256()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// verifyBackup compares a backup with its recorded digest. It returns
// errNoChecksum when no digest was recorded.
func verifyBackup(path string) error {
	f, err := os.Open(path + ChecksumSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return errNoChecksum
	}
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return fmt.Errorf("checksum file %s is empty", path+ChecksumSuffix)
	}

	got, err := fileChecksum(path)
	if err != nil {
		return err
	}
	if got != fields[0] {
		return fmt.Errorf("checksum mismatch for %s: recorded %s, computed %s", path, fields[0], got)
	}
	return nil
}

// loadBackup restores a Badger backup into db.
func loadBackup(db *badger.DB, path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat backup file: %w", err)
	}
	if fi.Size() == 0 {
		return fmt.Errorf("backup file is empty: %s", path)
	}

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during restore: %v", r)
		}
	}()
	return db.Load(f, 16)
}
