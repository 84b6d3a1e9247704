package store

import (
	"encoding/gob"
	"os"

	"github.com/rif-tools/rif/internal/rerr"
)

// SaveToFile gob-encodes the store to path (see DESIGN.md for why gob
// rather than a third-party binary codec).
func (r *Relations) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return rerr.Wrapf(rerr.TagIoError, err, "failed to create %s", path)
	}
	defer f.Close()

	if err := gob.NewEncoder(f).Encode(r); err != nil {
		return rerr.Wrapf(rerr.TagSerdeError, err, "failed to encode relations store")
	}
	return nil
}

// ReadFromFile decodes the store from path and validates it with a
// full indirect SanityCheck on every load.
func ReadFromFile(path string) (*Relations, error) {
	r, err := ReadAsRaw(path)
	if err != nil {
		return nil, err
	}
	if err := r.SanityCheck(); err != nil {
		return nil, err
	}
	return r, nil
}

// ReadAsRaw decodes the store from path without running a sanity check,
// used by `rif sanity --fix` to load a possibly-invalid store.
func ReadAsRaw(path string) (*Relations, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rerr.Wrapf(rerr.TagIoError, err, "failed to open %s", path)
	}
	defer f.Close()

	r := New()
	if err := gob.NewDecoder(f).Decode(r); err != nil {
		return nil, rerr.Wrapf(rerr.TagSerdeError, err, "failed to decode relations store")
	}
	return r, nil
}
