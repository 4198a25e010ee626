// Package container is the boundary to the PDF container library. The
// editing core only ever touches embedded files through this interface;
// it never inspects container internals.
package container

// Container abstracts the embedded-file operations of a PDF container.
// Implementations must apply mutations as a single atomic save: either the
// output file appears fully written or not at all.
type Container interface {
	// ListEmbedded returns the names of all embedded files in their
	// container-given order.
	ListEmbedded(path string) ([]string, error)

	// ReadEmbedded returns the bytes of the named embedded file.
	ReadEmbedded(path, name string) ([]byte, error)

	// RemoveEmbedded writes a copy of inPath to outPath with the named
	// embedded entries removed. An empty name list produces a plain copy.
	RemoveEmbedded(inPath, outPath string, names []string) error

	// AddEmbedded writes a copy of inPath to outPath with the file at
	// filePath attached under its base name.
	AddEmbedded(inPath, outPath, filePath string) error
}
