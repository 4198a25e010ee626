package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"fjacquet/facturx-edit/internal/attachment"
	"fjacquet/facturx-edit/internal/container"
	"fjacquet/facturx-edit/internal/editerror"
	"fjacquet/facturx-edit/internal/fieldmap"
	"fjacquet/facturx-edit/internal/fileutils"
	"fjacquet/facturx-edit/internal/invoicecodec"
	"fjacquet/facturx-edit/internal/logging"
	"fjacquet/facturx-edit/internal/models"
	"fjacquet/facturx-edit/internal/xmlutils"
)

// Session sequences selector, sanitizer, validator, and codec over one
// job's working state. Operations are strictly sequential within a
// session; two sessions never share mutable state.
type Session struct {
	store        *Store
	job          Job
	container    container.Container
	codec        *invoicecodec.Codec
	fallbackName string
	state        *JobState
}

// Options configures session construction.
type Options struct {
	Container container.Container
	Codec     *invoicecodec.Codec
	// FallbackName is used when the selected attachment name is unusable
	// at build time. Defaults to factur-x.xml.
	FallbackName string
}

// New attaches a session to an existing job.
func New(store *Store, job Job, opts Options) (*Session, error) {
	st, err := store.LoadState(job)
	if err != nil {
		return nil, err
	}
	if opts.Codec == nil {
		opts.Codec = invoicecodec.New(nil)
	}
	if opts.FallbackName == "" {
		opts.FallbackName = "factur-x.xml"
	}
	return &Session{
		store:        store,
		job:          job,
		container:    opts.Container,
		codec:        opts.Codec,
		fallbackName: opts.FallbackName,
		state:        st,
	}, nil
}

// Create allocates a fresh job and attaches a session to it.
func Create(store *Store, opts Options) (*Session, error) {
	job, err := store.CreateJob()
	if err != nil {
		return nil, err
	}
	return New(store, job, opts)
}

// Job returns the session's job handle.
func (s *Session) Job() Job {
	return s.job
}

// State returns the session's lifecycle state.
func (s *Session) State() State {
	st, err := ParseState(s.state.State)
	if err != nil {
		return StateEmpty
	}
	return st
}

// AttachmentName returns the originally selected attachment name.
func (s *Session) AttachmentName() string {
	return s.state.AttachmentName
}

// ValidationWarning returns the warning recorded when the extracted XML
// failed validation at upload time, or "".
func (s *Session) ValidationWarning() string {
	return s.state.ValidationWarning
}

// Outputs returns the names of containers built so far, oldest first.
func (s *Session) Outputs() []string {
	return append([]string{}, s.state.Outputs...)
}

// Upload copies the container into the job, selects the invoice
// attachment, sanitizes it, and persists it as the working document.
// Selection failures leave the session Empty. A validation failure on the
// extracted bytes is recorded as a warning only: the raw text stays
// editable so the user can repair malformed input in the editor, and the
// explicit save step is the hard gate.
func (s *Session) Upload(pdfPath string) error {
	log.WithFields(logrus.Fields{logging.FieldJob: s.job.ID, logging.FieldFile: pdfPath}).
		Info("Uploading container")

	if err := fileutils.CopyFile(pdfPath, s.job.OriginalPath()); err != nil {
		return &editerror.ContainerError{Op: "copy", File: pdfPath, Err: err}
	}

	names, err := s.container.ListEmbedded(s.job.OriginalPath())
	if err != nil {
		return err
	}
	sel, err := attachment.Select(names)
	if err != nil {
		// Session stays Empty; the caller re-prompts the user.
		return err
	}

	raw, err := s.container.ReadEmbedded(s.job.OriginalPath(), sel.Name)
	if err != nil {
		return err
	}
	clean := xmlutils.Sanitize(raw)

	s.state.ValidationWarning = ""
	if err := xmlutils.Validate(clean); err != nil {
		entry := log.WithError(err).WithField(logging.FieldAttachment, sel.Name)
		var malformed *editerror.MalformedXMLError
		if errors.As(err, &malformed) {
			entry = entry.WithFields(logrus.Fields{
				logging.FieldLine:   malformed.Line,
				logging.FieldColumn: malformed.Column,
			})
		}
		entry.Warn("Extracted XML is not well-formed, keeping it editable")
		s.state.ValidationWarning = err.Error()
	}

	if err := fileutils.WriteFile(s.job.WorkingPath(), clean, 0o600); err != nil {
		return err
	}
	s.state.State = string(StateExtracted)
	s.state.AttachmentName = sel.Name
	if err := s.store.SaveState(s.job, s.state); err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		logging.FieldJob:        s.job.ID,
		logging.FieldAttachment: sel.Name,
		logging.FieldState:      s.state.State,
	}).Info("Attachment extracted")
	return nil
}

// WorkingXML returns the current working document bytes.
func (s *Session) WorkingXML() ([]byte, error) {
	if !s.State().editable() {
		return nil, fmt.Errorf("no working document: upload a container first")
	}
	return fileutils.ReadFile(s.job.WorkingPath())
}

// Record re-parses the working document and decodes the flat record.
func (s *Session) Record() (models.InvoiceRecord, error) {
	data, err := s.WorkingXML()
	if err != nil {
		return nil, err
	}
	doc, err := xmlutils.Parse(data)
	if err != nil {
		return nil, err
	}
	return s.codec.Decode(doc), nil
}

// SaveText replaces the working document with submitted raw text. The text
// is sanitized then validated; on failure the previous working document is
// left untouched and the error reported.
func (s *Session) SaveText(raw []byte) error {
	if !s.State().editable() {
		return fmt.Errorf("no working document: upload a container first")
	}
	clean := xmlutils.Sanitize(raw)
	if err := xmlutils.Validate(clean); err != nil {
		return err
	}
	if err := fileutils.WriteFile(s.job.WorkingPath(), clean, 0o600); err != nil {
		return err
	}
	s.state.State = string(StateEditingText)
	s.state.ValidationWarning = ""
	if err := s.store.SaveState(s.job, s.state); err != nil {
		return err
	}
	log.WithField(logging.FieldJob, s.job.ID).Info("Working XML replaced from raw text")
	return nil
}

// SaveForm applies a flat record to the working document via the codec and
// replaces the working document with the re-serialized result. Unlike the
// raw-text path, a parse failure here is fatal to the save: there is no
// way to encode into an unparsable document. The returned slice lists the
// field keys skipped because their target node does not exist.
func (s *Session) SaveForm(record models.InvoiceRecord) ([]string, error) {
	if !s.State().editable() {
		return nil, fmt.Errorf("no working document: upload a container first")
	}
	if err := s.checkAmounts(record); err != nil {
		return nil, err
	}

	data, err := fileutils.ReadFile(s.job.WorkingPath())
	if err != nil {
		return nil, err
	}
	doc, err := xmlutils.Parse(data)
	if err != nil {
		return nil, err
	}

	record = record.Restrict(s.codec.Schema().Keys())
	skipped := s.codec.Encode(doc, record)

	out, err := s.codec.Serialize(doc)
	if err != nil {
		return nil, err
	}
	if err := fileutils.WriteFile(s.job.WorkingPath(), out, 0o600); err != nil {
		return nil, err
	}
	s.state.State = string(StateEditingForm)
	s.state.ValidationWarning = ""
	if err := s.store.SaveState(s.job, s.state); err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{logging.FieldJob: s.job.ID, logging.FieldCount: len(skipped)}).
		Info("Working XML updated from form record")
	return skipped, nil
}

// checkAmounts rejects non-empty amount-kinded values that do not parse as
// decimals. A format check only; no arithmetic is performed.
func (s *Session) checkAmounts(record models.InvoiceRecord) error {
	for _, entry := range s.codec.Schema().Entries() {
		if entry.Kind != fieldmap.KindAmount {
			continue
		}
		value := record.Get(entry.Key)
		if value == "" {
			continue
		}
		if _, err := decimal.NewFromString(strings.TrimSpace(value)); err != nil {
			return &editerror.InvalidAmountError{Key: entry.Key, Value: value}
		}
	}
	return nil
}

// Build produces a fresh output container: every XML-suffixed embedded
// entry of the original is removed, the working document is inserted under
// the originally selected attachment name (or the fallback), and the
// result is saved under a collision-free name inside the job. Repeated
// builds never overwrite each other. The injected XML is re-extracted to
// verify.xml for inspection.
func (s *Session) Build() (string, error) {
	if !s.State().editable() {
		return "", fmt.Errorf("no working document: upload a container first")
	}

	working, err := fileutils.ReadFile(s.job.WorkingPath())
	if err != nil {
		return "", err
	}
	if err := xmlutils.Validate(working); err != nil {
		return "", err
	}

	names, err := s.container.ListEmbedded(s.job.OriginalPath())
	if err != nil {
		return "", err
	}
	var xmlNames []string
	for i, name := range names {
		if (models.Attachment{Name: name, Index: i}).IsXML() {
			xmlNames = append(xmlNames, name)
		}
	}

	attachName := fileutils.SecureFilename(s.state.AttachmentName, s.fallbackName)
	attachPath := s.job.OutputPath(attachName)
	if err := fileutils.WriteFile(attachPath, working, 0o600); err != nil {
		return "", err
	}

	stripped := s.job.OutputPath("stripped.tmp.pdf")
	defer func() {
		if err := os.Remove(stripped); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Debug("Failed to remove intermediate file")
		}
	}()
	if err := s.container.RemoveEmbedded(s.job.OriginalPath(), stripped, xmlNames); err != nil {
		return "", err
	}

	outName := fileutils.UniqueOutputName(time.Now())
	outPath := s.job.OutputPath(outName)
	if err := s.container.AddEmbedded(stripped, outPath, attachPath); err != nil {
		return "", err
	}

	s.verifyOutput(outPath)

	s.state.State = string(StateBuilt)
	s.state.Outputs = append(s.state.Outputs, outName)
	if err := s.store.SaveState(s.job, s.state); err != nil {
		return "", err
	}

	log.WithFields(logrus.Fields{logging.FieldJob: s.job.ID, logging.FieldOutput: outName}).
		Info("Built updated container")
	return outPath, nil
}

// verifyOutput re-extracts the first XML attachment of a freshly built
// container into verify.xml. Best effort; failures are logged only.
func (s *Session) verifyOutput(outPath string) {
	names, err := s.container.ListEmbedded(outPath)
	if err != nil {
		log.WithError(err).Debug("Verification listing failed")
		return
	}
	for i, name := range names {
		if !(models.Attachment{Name: name, Index: i}).IsXML() {
			continue
		}
		data, err := s.container.ReadEmbedded(outPath, name)
		if err != nil {
			log.WithError(err).Debug("Verification read failed")
			return
		}
		if err := fileutils.WriteFile(s.job.VerifyPath(), data, 0o600); err != nil {
			log.WithError(err).Debug("Verification write failed")
		}
		return
	}
	log.WithField(logging.FieldFile, filepath.Base(outPath)).
		Warn("Built container carries no XML attachment")
}
