// Package invoicecodec translates between the flat invoice record and the
// namespace-qualified Factur-X document tree, in both directions, using the
// compiled field map.
package invoicecodec

import (
	"bytes"
	"fmt"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"fjacquet/facturx-edit/internal/fieldmap"
	"fjacquet/facturx-edit/internal/logging"
	"fjacquet/facturx-edit/internal/models"
)

var log = logrus.New()

// SetLogger allows setting a custom logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Codec extracts flat records from a parsed invoice document and writes
// edited records back into it. A Codec is stateless apart from its schema
// and safe to share between sessions.
type Codec struct {
	schema *fieldmap.Map
}

// New returns a codec over the given schema. A nil schema selects the
// default compiled field map.
func New(schema *fieldmap.Map) *Codec {
	if schema == nil {
		schema = fieldmap.Default()
	}
	return &Codec{schema: schema}
}

// Schema returns the field map the codec resolves paths against.
func (c *Codec) Schema() *fieldmap.Map {
	return c.schema
}

// Decode resolves every schema entry against the document and returns the
// flat record. Every known key is present in the result; a missing node or
// empty node text yields "". Decode never fails on missing optional nodes.
func (c *Codec) Decode(doc *etree.Document) models.InvoiceRecord {
	record := models.NewInvoiceRecord(c.schema.Keys())
	root := doc.Root()
	if root == nil {
		return record
	}
	for _, entry := range c.schema.Entries() {
		if node := fieldmap.Resolve(root, entry.Steps); node != nil {
			record.Set(entry.Key, node.Text())
		}
	}
	return record
}

// Encode writes every non-empty record value into the document. A value
// whose target node exists overwrites that node's text; a value whose
// target node is missing is skipped, since this codec does not synthesize
// XML structure. Empty incoming values never blank an existing node.
// The returned slice lists the keys that were skipped.
func (c *Codec) Encode(doc *etree.Document, record models.InvoiceRecord) []string {
	root := doc.Root()
	var skipped []string
	for _, entry := range c.schema.Entries() {
		value := record.Get(entry.Key)
		if value == "" {
			continue
		}
		node := fieldmap.Resolve(root, entry.Steps)
		if node == nil {
			// Informational only: the document simply has no slot for
			// this field.
			log.WithField(logging.FieldKey, entry.Key).Info("encode target missing, field skipped")
			skipped = append(skipped, entry.Key)
			continue
		}
		node.SetText(value)
	}
	return skipped
}

// Serialize renders the document back to bytes, guaranteeing an XML
// declaration at the top the way the original attachment producers emit it.
func (c *Codec) Serialize(doc *etree.Document) ([]byte, error) {
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize XML document: %w", err)
	}
	if !bytes.HasPrefix(bytes.TrimLeft(out, " \t\r\n"), []byte("<?xml")) {
		out = append([]byte("<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n"), out...)
	}
	return out, nil
}
