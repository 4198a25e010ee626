package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInvoiceRecord(t *testing.T) {
	r := NewInvoiceRecord([]string{"invoice_number", "seller_name"})
	assert.Len(t, r, 2)
	assert.Equal(t, "", r["invoice_number"])
	assert.Equal(t, "", r["seller_name"])
}

func TestRecordGetSet(t *testing.T) {
	r := NewInvoiceRecord([]string{"seller_name"})
	assert.Equal(t, "", r.Get("seller_name"))
	assert.Equal(t, "", r.Get("absent_key"))

	r.Set("seller_name", "Acme")
	assert.Equal(t, "Acme", r.Get("seller_name"))
}

func TestRecordClone(t *testing.T) {
	r := InvoiceRecord{"seller_name": "Acme"}
	c := r.Clone()
	c["seller_name"] = "changed"
	assert.Equal(t, "Acme", r["seller_name"])
}

func TestRecordRestrict(t *testing.T) {
	r := InvoiceRecord{"seller_name": "Acme", "bogus": "x", "buyer_name": "Globex"}
	got := r.Restrict([]string{"seller_name", "buyer_name", "invoice_number"})

	assert.Equal(t, "Acme", got["seller_name"])
	assert.Equal(t, "Globex", got["buyer_name"])
	_, hasBogus := got["bogus"]
	assert.False(t, hasBogus)
	missing, hasMissing := got["invoice_number"]
	assert.True(t, hasMissing, "every requested key is present in the result")
	assert.Equal(t, "", missing)
}

func TestRecordEqual(t *testing.T) {
	a := InvoiceRecord{"x": "1", "y": ""}
	b := InvoiceRecord{"x": "1", "y": ""}
	assert.True(t, a.Equal(b))

	b["y"] = "2"
	assert.False(t, a.Equal(b))
	assert.False(t, a.Equal(InvoiceRecord{"x": "1"}))
}

func TestAttachmentIsXML(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"factur-x.xml", true},
		{"FACTUR-X.XML", true},
		{"report.Xml", true},
		{"invoice.xml.bak", false},
		{"logo.png", false},
		{"xml", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attachment{Name: tt.name}
			assert.Equal(t, tt.want, a.IsXML())
		})
	}
}

func TestAttachmentIsInvoiceNamed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"factur-x.xml", true},
		{"Factur-X.xml", true},
		{"zugferd-invoice.xml", true},
		{"ZUGFeRD.xml", true},
		{"xrechnung.xml", false},
		{"invoice.xml", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attachment{Name: tt.name}
			assert.Equal(t, tt.want, a.IsInvoiceNamed())
		})
	}
}
