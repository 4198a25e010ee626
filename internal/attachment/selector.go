// Package attachment implements the heuristic that picks the single
// embedded XML entry treated as "the" invoice document.
package attachment

import (
	"fjacquet/facturx-edit/internal/editerror"
	"fjacquet/facturx-edit/internal/models"
)

// Selection identifies the chosen embedded entry by name and position in
// the container's attachment list.
type Selection struct {
	Name  string
	Index int
}

// Select scans the embedded file names in their given order and picks the
// invoice attachment. A name matches when its lowercase form ends in
// ".xml"; among matches, one containing "factur" or "zugferd" wins, with
// first occurrence breaking ties within each tier. When no keyword match
// exists the first plain .xml match is returned.
//
// An empty list yields *editerror.NoAttachmentsError; a non-empty list
// without any .xml name yields *editerror.NoXMLAttachmentError. The two
// are distinct so callers can tell "not document-bearing at all" from
// "no invoice payload".
func Select(names []string) (Selection, error) {
	if len(names) == 0 {
		return Selection{}, &editerror.NoAttachmentsError{}
	}
	firstXML := -1
	for i, name := range names {
		a := models.Attachment{Name: name, Index: i}
		if !a.IsXML() {
			continue
		}
		if a.IsInvoiceNamed() {
			return Selection{Name: name, Index: i}, nil
		}
		if firstXML < 0 {
			firstXML = i
		}
	}
	if firstXML < 0 {
		return Selection{}, &editerror.NoXMLAttachmentError{Count: len(names)}
	}
	return Selection{Name: names[firstXML], Index: firstXML}, nil
}
