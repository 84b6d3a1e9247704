package history

import (
	"encoding/gob"
	"os"

	"github.com/rif-tools/rif/internal/rerr"
)

// SaveToFile gob-encodes the history to path.
func (h *History) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrapf(rerr.TagIoError, err, "failed to create %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(h); err != nil {
		return rerr.Wrapf(rerr.TagSerdeError, err, "failed to encode history")
	}
	return nil
}

// ReadFromFile decodes the history from path.
func ReadFromFile(path string) (*History, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagIoError, err, "failed to open %s", path)
	}
	defer f.Close()

	h := New()
	if err := gob.NewDecoder(f).Decode(h); err != nil {
		return nil, rerr.Wrapf(rerr.TagSerdeError, err, "failed to decode history")
	}
	return h, nil
}
