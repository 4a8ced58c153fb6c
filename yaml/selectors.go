// Package yaml loads selector overrides from YAML or JSON files.
package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fwojciec/coachdir"
	goyaml "gopkg.in/yaml.v3"
)

// LoadSelectors reads selector overrides from path and applies them on top
// of coachdir.DefaultSelectors. Keys absent from the file keep their
// default; a list given in the file replaces the default list. Unknown
// keys are rejected.
func LoadSelectors(path string) (coachdir.Selectors, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return coachdir.Selectors{}, err
	}
	return ParseSelectors(b, filepath.Ext(path))
}

// ParseSelectors applies overrides in b on top of the defaults. ext selects
// the format; ".json" is parsed as JSON and anything else as YAML.
func ParseSelectors(b []byte, ext string) (coachdir.Selectors, error) {
	s := coachdir.DefaultSelectors()

	if ext == ".json" {
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
			return coachdir.Selectors{}, coachdir.Errorf(coachdir.EINVALID, "parse json: %v", err)
		}
		return s, nil
	}

	dec := goyaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return coachdir.Selectors{}, coachdir.Errorf(coachdir.EINVALID, "parse yaml: %v", err)
	}
	return s, nil
}

// DumpSelectors writes s as YAML. Useful as a starting point for an
// override file.
func DumpSelectors(w io.Writer, s coachdir.Selectors) error {
	enc := goyaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
