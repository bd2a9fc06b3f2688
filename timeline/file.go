package timeline

import (
	"errors"
	"fmt"
	"os"
)

// ErrMissingExternalData marks overlay input that is absent. Callers continue
// without the overlay; replay is unaffected.
var ErrMissingExternalData = errors.New("missing external data")

// LoadRunFile reads and decodes a generator run document from disk.
func LoadRunFile(path string) (*Run, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open run file: %w", err)
	}
	defer f.Close()
	return DecodeRun(f)
}

// LoadTerminalsFile reads the terminals overlay from disk. A missing file is
// reported as ErrMissingExternalData so callers can degrade gracefully.
func LoadTerminalsFile(path string) ([]Terminal, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: terminals overlay %s", ErrMissingExternalData, path)
		}
		return nil, fmt.Errorf("open terminals file: %w", err)
	}
	defer f.Close()
	return DecodeTerminals(f)
}
