package models

// InvoiceRecord is the flat key/value view of an invoice document.
// The key set is fixed by the field map; an empty value means
// "field not set". Insertion order is irrelevant.
type InvoiceRecord map[string]string

// NewInvoiceRecord returns a record with every given key present and empty.
func NewInvoiceRecord(keys []string) InvoiceRecord {
	r := make(InvoiceRecord, len(keys))
	for _, k := range keys {
		r[k] = ""
	}
	return r
}

// Get returns the value for key, or "" when the key is absent.
func (r InvoiceRecord) Get(key string) string {
	return r[key]
}

// Set stores value under key.
func (r InvoiceRecord) Set(key, value string) {
	r[key] = value
}

// Clone returns an independent copy of the record.
func (r InvoiceRecord) Clone() InvoiceRecord {
	out := make(InvoiceRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Restrict returns a copy containing only the given keys. Unknown incoming
// keys are dropped; keys missing from r come out empty. This implements the
// wire contract: unknown keys ignored on input, all known keys present on
// output.
func (r InvoiceRecord) Restrict(keys []string) InvoiceRecord {
	out := make(InvoiceRecord, len(keys))
	for _, k := range keys {
		out[k] = r[k]
	}
	return out
}

// Equal reports whether two records hold the same key/value pairs.
func (r InvoiceRecord) Equal(other InvoiceRecord) bool {
	if len(r) != len(other) {
		return false
	}
	for k, v := range r {
		ov, ok := other[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// FieldRow is the CSV rendering of a single record entry.
type FieldRow struct {
	Key   string `csv:"key" yaml:"key"`
	Value string `csv:"value" yaml:"value"`
}
