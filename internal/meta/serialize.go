package meta

import (
	"encoding/gob"
	"os"

	"github.com/rif-tools/rif/internal/rerr"
)

// SaveToFile gob-encodes the staging buffer to path.
func (m *Meta) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrapf(rerr.TagIoError, err, "failed to create %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(m); err != nil {
		return rerr.Wrapf(rerr.TagSerdeError, err, "failed to encode staging buffer")
	}
	return nil
}

// ReadFromFile decodes the staging buffer from path.
func ReadFromFile(path string) (*Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagIoError, err, "failed to open %s", path)
	}
	defer f.Close()

	m := New()
	if err := gob.NewDecoder(f).Decode(m); err != nil {
		return nil, rerr.Wrapf(rerr.TagSerdeError, err, "failed to decode staging buffer")
	}
	return m, nil
}
