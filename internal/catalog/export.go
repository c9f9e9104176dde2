// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"
)

// ExportYAML writes every catalog entry to w as a YAML document, newest
// first.
func (s *Store) ExportYAML(w io.Writer) error {
	entries, err := s.List(0)
	if err != nil {
		return err
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	return nil
}
