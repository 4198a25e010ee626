// Package editerror defines the typed error kinds surfaced by the editing core.
// Callers use errors.As to distinguish recoverable user-input errors from
// fatal container failures.
package editerror

import "fmt"

// NoAttachmentsError indicates the container holds no embedded files at all.
type NoAttachmentsError struct {
	File string
}

func (e *NoAttachmentsError) Error() string {
	if e.File == "" {
		return "no embedded attachments found"
	}
	return fmt.Sprintf("no embedded attachments found in %s", e.File)
}

// NoXMLAttachmentError indicates embedded files exist but none ends in .xml.
type NoXMLAttachmentError struct {
	File  string
	Count int
}

func (e *NoXMLAttachmentError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("no XML attachment among %d embedded files", e.Count)
	}
	return fmt.Sprintf("no XML attachment among %d embedded files in %s", e.Count, e.File)
}

// MalformedXMLError indicates the candidate bytes failed to parse as XML.
// Line and Column carry the underlying parser's diagnostic position.
type MalformedXMLError struct {
	Msg    string
	Line   int
	Column int
}

func (e *MalformedXMLError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed XML at line %d, column %d: %s", e.Line, e.Column, e.Msg)
	}
	return fmt.Sprintf("malformed XML: %s", e.Msg)
}

// ContainerError wraps a failure from the PDF container library.
// These are opaque to the editing core and never retried here.
type ContainerError struct {
	Op   string
	File string
	Err  error
}

func (e *ContainerError) Error() string {
	return fmt.Sprintf("container %s failed for %s: %v", e.Op, e.File, e.Err)
}

func (e *ContainerError) Unwrap() error {
	return e.Err
}

// InvalidAmountError indicates a monetary field value that does not parse
// as a decimal number. Raised on the form-save path only.
type InvalidAmountError struct {
	Key   string
	Value string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("field %s: value '%s' is not a valid amount", e.Key, e.Value)
}
