// Package fieldmap defines the fixed schema correlating flat invoice keys
// to namespace-qualified node paths in a Factur-X (EN 16931 / CII) document.
// The schema is declared once as prefixed path strings and compiled into
// typed namespace+step sequences at process start, so a typo in a path is
// caught immediately rather than at request time.
package fieldmap

import (
	"fmt"
	"strings"
)

// Cross Industry Invoice namespace URIs used by Factur-X and ZUGFeRD.
const (
	NamespaceRSM = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NamespaceRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NamespaceQDT = "urn:un:unece:uncefact:data:standard:QualifiedDataType:100"
	NamespaceUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// namespaces maps the conventional CII prefixes to their URIs. Compilation
// resolves prefixes here; documents may bind any prefix they like since
// resolution compares URIs, not prefixes.
var namespaces = map[string]string{
	"rsm": NamespaceRSM,
	"ram": NamespaceRAM,
	"qdt": NamespaceQDT,
	"udt": NamespaceUDT,
}

// Kind classifies how a field's value is treated on the form-save path.
type Kind string

const (
	// KindText fields carry free text and are never format-checked.
	KindText Kind = "text"
	// KindAmount fields must parse as decimal numbers when non-empty.
	KindAmount Kind = "amount"
)

// Step is one navigation step of a compiled path: a namespace URI plus a
// local element name.
type Step struct {
	Space string
	Local string
}

// Entry is one compiled schema row. Steps are resolved against the document
// root with descendant-anchored, first-match-in-document-order semantics.
type Entry struct {
	Key      string
	Steps    []Step
	Kind     Kind
	Required bool
}

// spec is one declarative schema row before compilation.
type spec struct {
	key      string
	path     string
	kind     Kind
	required bool
}

// The schema table. Paths follow the element chains of the CII data model
// and are anchored at the first matching descendant of the root.
var table = []spec{
	// Document identity
	{"invoice_number", "rsm:ExchangedDocument/ram:ID", KindText, true},
	{"invoice_date", "rsm:ExchangedDocument/ram:IssueDateTime/udt:DateTimeString", KindText, false},
	{"due_date", "ram:SpecifiedTradePaymentTerms/ram:DueDateDateTime/udt:DateTimeString", KindText, false},

	// Seller party
	{"seller_name", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:Name", KindText, false},
	{"seller_siren", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:SpecifiedLegalOrganization/ram:ID", KindText, false},
	{"seller_vat", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:SpecifiedTaxRegistration/ram:ID", KindText, false},
	{"seller_street", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:PostalTradeAddress/ram:LineOne", KindText, false},
	{"seller_city", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:PostalTradeAddress/ram:CityName", KindText, false},
	{"seller_postal_code", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:PostalTradeAddress/ram:PostcodeCode", KindText, false},
	{"seller_country", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:PostalTradeAddress/ram:CountryID", KindText, false},
	{"seller_fe_address", "ram:ApplicableHeaderTradeAgreement/ram:SellerTradeParty/ram:URIUniversalCommunication/ram:URIID", KindText, false},

	// Buyer party
	{"buyer_name", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:Name", KindText, false},
	{"buyer_siren", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:SpecifiedLegalOrganization/ram:ID", KindText, false},
	{"buyer_vat", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:SpecifiedTaxRegistration/ram:ID", KindText, false},
	{"buyer_street", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:PostalTradeAddress/ram:LineOne", KindText, false},
	{"buyer_city", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:PostalTradeAddress/ram:CityName", KindText, false},
	{"buyer_postal_code", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:PostalTradeAddress/ram:PostcodeCode", KindText, false},
	{"buyer_country", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:PostalTradeAddress/ram:CountryID", KindText, false},
	{"buyer_fe_address", "ram:ApplicableHeaderTradeAgreement/ram:BuyerTradeParty/ram:URIUniversalCommunication/ram:URIID", KindText, false},

	// Delivery / billing party (ShipToTradeParty, address subset only)
	{"billing_name", "ram:ApplicableHeaderTradeDelivery/ram:ShipToTradeParty/ram:Name", KindText, false},
	{"billing_street", "ram:ApplicableHeaderTradeDelivery/ram:ShipToTradeParty/ram:PostalTradeAddress/ram:LineOne", KindText, false},
	{"billing_city", "ram:ApplicableHeaderTradeDelivery/ram:ShipToTradeParty/ram:PostalTradeAddress/ram:CityName", KindText, false},
	{"billing_postal_code", "ram:ApplicableHeaderTradeDelivery/ram:ShipToTradeParty/ram:PostalTradeAddress/ram:PostcodeCode", KindText, false},
	{"billing_country", "ram:ApplicableHeaderTradeDelivery/ram:ShipToTradeParty/ram:PostalTradeAddress/ram:CountryID", KindText, false},

	// Monetary summation
	{"line_total", "ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:LineTotalAmount", KindAmount, false},
	{"tax_basis_total", "ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:TaxBasisTotalAmount", KindAmount, false},
	{"tax_total", "ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:TaxTotalAmount", KindAmount, false},
	{"grand_total", "ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:GrandTotalAmount", KindAmount, false},
	{"due_payable", "ram:SpecifiedTradeSettlementHeaderMonetarySummation/ram:DuePayableAmount", KindAmount, false},
}

// Map is the compiled, ordered schema. It is immutable after compilation
// and safe to share read-only across sessions.
type Map struct {
	entries []Entry
	index   map[string]int
}

// Compile builds a Map from the declarative table, verifying that every
// key is unique, every prefix is known, and every path is non-empty.
func Compile() (*Map, error) {
	m := &Map{index: make(map[string]int, len(table))}
	for _, s := range table {
		if s.key == "" {
			return nil, fmt.Errorf("field map entry with empty key (path %s)", s.path)
		}
		if _, dup := m.index[s.key]; dup {
			return nil, fmt.Errorf("duplicate field map key: %s", s.key)
		}
		steps, err := compilePath(s.path)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", s.key, err)
		}
		m.index[s.key] = len(m.entries)
		m.entries = append(m.entries, Entry{
			Key:      s.key,
			Steps:    steps,
			Kind:     s.kind,
			Required: s.required,
		})
	}
	return m, nil
}

// MustCompile is like Compile but panics on error. Intended for process
// start, where a broken schema must abort immediately.
func MustCompile() *Map {
	m, err := Compile()
	if err != nil {
		panic(err)
	}
	return m
}

var defaultMap = MustCompile()

// Default returns the shared compiled schema.
func Default() *Map {
	return defaultMap
}

// Entries returns the schema rows in declaration order.
func (m *Map) Entries() []Entry {
	return m.entries
}

// Keys returns every field key in declaration order.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.Key
	}
	return keys
}

// Lookup returns the entry for key.
func (m *Map) Lookup(key string) (Entry, bool) {
	i, ok := m.index[key]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// Len returns the number of schema rows.
func (m *Map) Len() int {
	return len(m.entries)
}

// compilePath turns "rsm:ExchangedDocument/ram:ID" into typed steps,
// resolving each prefix against the known namespace table.
func compilePath(path string) ([]Step, error) {
	if path == "" {
		return nil, fmt.Errorf("empty path")
	}
	parts := strings.Split(path, "/")
	steps := make([]Step, 0, len(parts))
	for _, part := range parts {
		prefix, local, found := strings.Cut(part, ":")
		if !found || local == "" {
			return nil, fmt.Errorf("path step %q is not namespace-qualified", part)
		}
		uri, ok := namespaces[prefix]
		if !ok {
			return nil, fmt.Errorf("unknown namespace prefix %q in step %q", prefix, part)
		}
		steps = append(steps, Step{Space: uri, Local: local})
	}
	return steps, nil
}
