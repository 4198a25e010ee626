package editerror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "no attachments with file",
			err:      &NoAttachmentsError{File: "invoice.pdf"},
			expected: "no embedded attachments found in invoice.pdf",
		},
		{
			name:     "no attachments without file",
			err:      &NoAttachmentsError{},
			expected: "no embedded attachments found",
		},
		{
			name:     "no xml attachment",
			err:      &NoXMLAttachmentError{File: "invoice.pdf", Count: 3},
			expected: "no XML attachment among 3 embedded files in invoice.pdf",
		},
		{
			name:     "malformed with position",
			err:      &MalformedXMLError{Msg: "unexpected EOF", Line: 4, Column: 12},
			expected: "malformed XML at line 4, column 12: unexpected EOF",
		},
		{
			name:     "malformed without position",
			err:      &MalformedXMLError{Msg: "empty document"},
			expected: "malformed XML: empty document",
		},
		{
			name:     "invalid amount",
			err:      &InvalidAmountError{Key: "grand_total", Value: "12,50"},
			expected: "field grand_total: value '12,50' is not a valid amount",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestContainerErrorUnwrap(t *testing.T) {
	cause := errors.New("file is encrypted")
	err := &ContainerError{Op: "list", File: "locked.pdf", Err: cause}

	assert.Equal(t, "container list failed for locked.pdf: file is encrypted", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("upload failed: %w", err)
	var ce *ContainerError
	assert.ErrorAs(t, wrapped, &ce)
	assert.Equal(t, "list", ce.Op)
}
