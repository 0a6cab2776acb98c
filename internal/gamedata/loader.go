package gamedata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
)

// Load decodes an embedded JSON file into T.
func Load[T any](filename string) (T, error) {
	return LoadFS[T](dataFS, filename)
}

// LoadFS decodes a JSON file from fsys into T. Unknown fields are rejected so
// typos in data files surface at startup.
func LoadFS[T any](fsys fs.FS, filename string) (T, error) {
	var result T

	content, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return result, fmt.Errorf("read %s: %w", filename, err)
	}

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	return result, nil
}

// MustLoad is Load for data the program cannot run without.
func MustLoad[T any](filename string) T {
	result, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return result
}
