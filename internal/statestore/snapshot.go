package statestore

import (
	"encoding/json"
	"os"
)

func loadSnapshot(path string) (State, error) {
	var s State

	f, err := os.Open(path)
	if err != nil {
		return s, err
	}
	defer f.Close()

	err = json.NewDecoder(f).Decode(&s)

	return s, err
}

// saveSnapshot writes the state to a temp file and renames it over the
// target so a crash mid-write never corrupts the previous snapshot.
func saveSnapshot(path string, s *State) error {
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")

	if err := enc.Encode(s); err != nil {
		f.Close()
		return err
	}

	if err := f.Close(); err != nil {
		return err
	}

	return os.Rename(tmp, path)
}
