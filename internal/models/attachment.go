// Package models defines the shared data types exchanged between the
// container boundary, the field-mapping engine, and the edit session.
package models

import "strings"

// Attachment represents a single embedded file read from the container.
// Instances are ephemeral: read on demand and not owned beyond one operation.
type Attachment struct {
	Name  string `json:"name" yaml:"name"`
	Index int    `json:"index" yaml:"index"`
	Bytes []byte `json:"-" yaml:"-"`
}

// IsXML reports whether the attachment name carries a .xml suffix,
// case-insensitively.
func (a Attachment) IsXML() bool {
	return strings.HasSuffix(strings.ToLower(a.Name), ".xml")
}

// IsInvoiceNamed reports whether the attachment name hints at a
// Factur-X/ZUGFeRD invoice payload.
func (a Attachment) IsInvoiceNamed() bool {
	lower := strings.ToLower(a.Name)
	return strings.Contains(lower, "factur") || strings.Contains(lower, "zugferd")
}
