package staff

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

var ErrDuplicateID = errors.New("duplicate id")

// Dataset is the on-disk form of a roster.
type Dataset struct {
	Employees Employees `json:"employees"`
	Projects  Projects  `json:"projects"`
}

// Validate checks every record and rejects duplicate ids within each collection.
func (d *Dataset) Validate() error {
	seen := make(map[string]struct{}, len(d.Employees))
	for _, e := range d.Employees {
		if err := e.Validate(); err != nil {
			return err
		}
		if _, ok := seen[e.ID]; ok {
			return fmt.Errorf("employee %q: %w", e.ID, ErrDuplicateID)
		}
		seen[e.ID] = struct{}{}
	}

	seen = make(map[string]struct{}, len(d.Projects))
	for _, p := range d.Projects {
		if err := p.Validate(); err != nil {
			return err
		}
		if _, ok := seen[p.ID]; ok {
			return fmt.Errorf("project %q: %w", p.ID, ErrDuplicateID)
		}
		seen[p.ID] = struct{}{}
	}

	return nil
}

// LoadDataset reads and validates a dataset file.
func LoadDataset(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var dataset Dataset
	if err := json.NewDecoder(file).Decode(&dataset); err != nil {
		return nil, fmt.Errorf("decode dataset %q: %w", path, err)
	}

	if err := dataset.Validate(); err != nil {
		return nil, fmt.Errorf("dataset %q: %w", path, err)
	}

	return &dataset, nil
}

func (d *Dataset) ToFile(path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func (d *Dataset) DumpToTmpFile() (string, error) {
	file, err := os.CreateTemp("", "staffmatch_dataset_*.json")
	if err != nil {
		return "", err
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return "", err
	}
	return file.Name(), nil
}
