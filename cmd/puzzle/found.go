package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mahdiidarabi/btc-puzzle/pkg/puzzle"
)

// appendFound appends a found key to path, creating the file if needed.
func appendFound(path string, r puzzle.SearchResult) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}

	_, err = fmt.Fprintf(file, "%s Address: %s\nPrivate key: %s\nWIF: %s\n\n",
		time.Now().UTC().Format(time.RFC3339), r.AddressFound, r.PrivateKeyHex, r.PrivateKeyWIF)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
