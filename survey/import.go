package survey

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// ImportResult describes where the imported table came from.
type ImportResult struct {
	Table      *Table
	Source     string
	FromBackup bool
}

// Import reads the survey export at source and keeps a copy at backup. When the
// export is missing, the previously imported backup is used instead.
func Import(source, backup string) (*ImportResult, error) {
	if _, err := os.Stat(source); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		if backup == "" {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, source)
		}
		if _, berr := os.Stat(backup); berr != nil {
			return nil, fmt.Errorf("%w: %s (no backup at %s)", ErrSourceNotFound, source, backup)
		}
		t, err := ReadCSV(backup)
		if err != nil {
			return nil, err
		}
		return &ImportResult{Table: t, Source: backup, FromBackup: true}, nil
	}

	t, err := ReadCSV(source)
	if err != nil {
		return nil, err
	}
	if backup != "" && backup != source {
		if err := WriteCSV(backup, t); err != nil {
			return nil, fmt.Errorf("save imported copy: %w", err)
		}
	}
	return &ImportResult{Table: t, Source: source}, nil
}
