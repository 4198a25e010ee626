package container

import (
	"fmt"
	"os"
	"path/filepath"
)

// MockContainer is an in-memory Container for tests. Container files are
// keyed by path; each holds an ordered name list plus per-name bytes.
type MockContainer struct {
	// Files maps a container path to its ordered embedded names.
	Files map[string][]string
	// Data maps container path -> embedded name -> bytes.
	Data map[string]map[string][]byte

	// Error flags for testing error conditions
	ListError   error
	ReadError   error
	RemoveError error
	AddError    error
}

// NewMockContainer returns an empty mock container store.
func NewMockContainer() *MockContainer {
	return &MockContainer{
		Files: make(map[string][]string),
		Data:  make(map[string]map[string][]byte),
	}
}

// Seed registers a container file with embedded entries in the given order.
func (m *MockContainer) Seed(path string, entries map[string][]byte, order []string) {
	m.Files[path] = append([]string{}, order...)
	data := make(map[string][]byte, len(entries))
	for name, b := range entries {
		data[name] = append([]byte{}, b...)
	}
	m.Data[path] = data
}

// ListEmbedded returns the seeded names for path.
func (m *MockContainer) ListEmbedded(path string) ([]string, error) {
	if m.ListError != nil {
		return nil, m.ListError
	}
	names, ok := m.Files[path]
	if !ok {
		return nil, fmt.Errorf("mock container: no file %s", path)
	}
	return append([]string{}, names...), nil
}

// ReadEmbedded returns the seeded bytes for name in path.
func (m *MockContainer) ReadEmbedded(path, name string) ([]byte, error) {
	if m.ReadError != nil {
		return nil, m.ReadError
	}
	data, ok := m.Data[path]
	if !ok {
		return nil, fmt.Errorf("mock container: no file %s", path)
	}
	b, ok := data[name]
	if !ok {
		return nil, fmt.Errorf("mock container: no embedded entry %s", name)
	}
	return append([]byte{}, b...), nil
}

// RemoveEmbedded copies the container under outPath with names dropped.
func (m *MockContainer) RemoveEmbedded(inPath, outPath string, names []string) error {
	if m.RemoveError != nil {
		return m.RemoveError
	}
	src, ok := m.Files[inPath]
	if !ok {
		return fmt.Errorf("mock container: no file %s", inPath)
	}
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	var kept []string
	data := make(map[string][]byte)
	for _, n := range src {
		if drop[n] {
			continue
		}
		kept = append(kept, n)
		data[n] = m.Data[inPath][n]
	}
	m.Files[outPath] = kept
	m.Data[outPath] = data
	// Materialize the output so callers can stat it like a real save.
	return os.WriteFile(outPath, []byte("mock-pdf"), 0o600)
}

// AddEmbedded copies the container under outPath with the file at filePath
// attached under its base name.
func (m *MockContainer) AddEmbedded(inPath, outPath, filePath string) error {
	if m.AddError != nil {
		return m.AddError
	}
	src, ok := m.Files[inPath]
	if !ok {
		return fmt.Errorf("mock container: no file %s", inPath)
	}
	payload, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	name := filepath.Base(filePath)
	names := append(append([]string{}, src...), name)
	data := make(map[string][]byte, len(names))
	for _, n := range src {
		data[n] = m.Data[inPath][n]
	}
	data[name] = payload
	m.Files[outPath] = names
	m.Data[outPath] = data
	return os.WriteFile(outPath, []byte("mock-pdf"), 0o600)
}
