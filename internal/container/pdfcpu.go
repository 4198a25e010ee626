package container

import (
	"fmt"
	"io"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/sirupsen/logrus"

	"fjacquet/facturx-edit/internal/editerror"
	"fjacquet/facturx-edit/internal/logging"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// PDFContainer implements Container using pdfcpu. Many real-world
// Factur-X producers emit PDFs that fail strict validation, so the
// relaxed mode is the default.
type PDFContainer struct {
	conf *model.Configuration
}

// NewPDFContainer returns a pdfcpu-backed container. With relaxed set,
// pdfcpu tolerates the structural sloppiness common in invoice PDFs.
func NewPDFContainer(relaxed bool) *PDFContainer {
	conf := model.NewDefaultConfiguration()
	if relaxed {
		conf.ValidationMode = model.ValidationRelaxed
	} else {
		conf.ValidationMode = model.ValidationStrict
	}
	return &PDFContainer{conf: conf}
}

// ListEmbedded returns the names of all embedded files in the PDF.
func (c *PDFContainer) ListEmbedded(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &editerror.ContainerError{Op: "list", File: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	attachments, err := api.Attachments(f, c.conf)
	if err != nil {
		return nil, &editerror.ContainerError{Op: "list", File: path, Err: err}
	}
	names := make([]string, 0, len(attachments))
	for _, a := range attachments {
		names = append(names, a.FileName)
	}
	log.WithFields(logrus.Fields{
		logging.FieldOperation: "list",
		logging.FieldFile:      path,
		logging.FieldCount:     len(names),
	}).Debug("Listed embedded files")
	return names, nil
}

// ReadEmbedded returns the bytes of the named embedded file.
func (c *PDFContainer) ReadEmbedded(path, name string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &editerror.ContainerError{Op: "read", File: path, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	attachments, err := api.ExtractAttachmentsRaw(f, "", []string{name}, c.conf)
	if err != nil {
		return nil, &editerror.ContainerError{Op: "read", File: path, Err: err}
	}
	if len(attachments) == 0 {
		return nil, &editerror.ContainerError{
			Op:   "read",
			File: path,
			Err:  fmt.Errorf("embedded file %s not found", name),
		}
	}
	data, err := io.ReadAll(attachments[0])
	if err != nil {
		return nil, &editerror.ContainerError{Op: "read", File: path, Err: err}
	}
	return data, nil
}

// RemoveEmbedded writes a copy of inPath to outPath with the named entries
// removed. With no names to remove the input is copied verbatim, keeping
// the build pipeline uniform.
func (c *PDFContainer) RemoveEmbedded(inPath, outPath string, names []string) error {
	if len(names) == 0 {
		if err := copyFile(inPath, outPath); err != nil {
			return &editerror.ContainerError{Op: "remove", File: inPath, Err: err}
		}
		return nil
	}
	if err := api.RemoveAttachmentsFile(inPath, outPath, names, c.conf); err != nil {
		return &editerror.ContainerError{Op: "remove", File: inPath, Err: err}
	}
	log.WithFields(logrus.Fields{
		logging.FieldOperation: "remove",
		logging.FieldFile:      inPath,
		logging.FieldCount:     len(names),
	}).Debug("Removed embedded files")
	return nil
}

// AddEmbedded writes a copy of inPath to outPath with filePath attached
// under its base name. pdfcpu performs the mutation in memory and saves
// once, so no partial output is ever visible.
func (c *PDFContainer) AddEmbedded(inPath, outPath, filePath string) error {
	if err := api.AddAttachmentsFile(inPath, outPath, []string{filePath}, false, c.conf); err != nil {
		return &editerror.ContainerError{Op: "add", File: inPath, Err: err}
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o600)
}
