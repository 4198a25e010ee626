package invoicecodec

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fjacquet/facturx-edit/internal/models"
	"fjacquet/facturx-edit/internal/xmlutils"
)

const sampleInvoice = `<?xml version="1.0" encoding="UTF-8"?>
<rsm:CrossIndustryInvoice
    xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
    xmlns:udt="urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100">
  <rsm:ExchangedDocument>
    <ram:ID>INV-2024-001</ram:ID>
    <ram:IssueDateTime>
      <udt:DateTimeString format="102">20240115</udt:DateTimeString>
    </ram:IssueDateTime>
  </rsm:ExchangedDocument>
  <rsm:SupplyChainTradeTransaction>
    <ram:ApplicableHeaderTradeAgreement>
      <ram:SellerTradeParty>
        <ram:Name>Acme SARL</ram:Name>
        <ram:SpecifiedLegalOrganization>
          <ram:ID>123456789</ram:ID>
        </ram:SpecifiedLegalOrganization>
        <ram:PostalTradeAddress>
          <ram:PostcodeCode>75002</ram:PostcodeCode>
          <ram:LineOne>1 rue de la Paix</ram:LineOne>
          <ram:CityName>Paris</ram:CityName>
          <ram:CountryID>FR</ram:CountryID>
        </ram:PostalTradeAddress>
        <ram:URIUniversalCommunication>
          <ram:URIID schemeID="EM">billing@acme.example</ram:URIID>
        </ram:URIUniversalCommunication>
        <ram:SpecifiedTaxRegistration>
          <ram:ID schemeID="VA">FR12345678901</ram:ID>
        </ram:SpecifiedTaxRegistration>
      </ram:SellerTradeParty>
      <ram:BuyerTradeParty>
        <ram:Name>Globex SA</ram:Name>
        <ram:PostalTradeAddress>
          <ram:PostcodeCode>69006</ram:PostcodeCode>
          <ram:LineOne>42 avenue Foch</ram:LineOne>
          <ram:CityName>Lyon</ram:CityName>
          <ram:CountryID>FR</ram:CountryID>
        </ram:PostalTradeAddress>
      </ram:BuyerTradeParty>
    </ram:ApplicableHeaderTradeAgreement>
    <ram:ApplicableHeaderTradeDelivery>
      <ram:ShipToTradeParty>
        <ram:Name>Globex Entrepot</ram:Name>
        <ram:PostalTradeAddress>
          <ram:PostcodeCode>69007</ram:PostcodeCode>
          <ram:LineOne>7 quai du Rhone</ram:LineOne>
          <ram:CityName>Lyon</ram:CityName>
          <ram:CountryID>FR</ram:CountryID>
        </ram:PostalTradeAddress>
      </ram:ShipToTradeParty>
    </ram:ApplicableHeaderTradeDelivery>
    <ram:ApplicableHeaderTradeSettlement>
      <ram:SpecifiedTradeSettlementHeaderMonetarySummation>
        <ram:LineTotalAmount>100.00</ram:LineTotalAmount>
        <ram:TaxBasisTotalAmount>100.00</ram:TaxBasisTotalAmount>
        <ram:TaxTotalAmount currencyID="EUR">20.00</ram:TaxTotalAmount>
        <ram:GrandTotalAmount>120.00</ram:GrandTotalAmount>
        <ram:DuePayableAmount>120.00</ram:DuePayableAmount>
      </ram:SpecifiedTradeSettlementHeaderMonetarySummation>
      <ram:SpecifiedTradePaymentTerms>
        <ram:DueDateDateTime>
          <udt:DateTimeString format="102">20240215</udt:DateTimeString>
        </ram:DueDateDateTime>
      </ram:SpecifiedTradePaymentTerms>
    </ram:ApplicableHeaderTradeSettlement>
  </rsm:SupplyChainTradeTransaction>
</rsm:CrossIndustryInvoice>`

func parseSample(t *testing.T) *etree.Document {
	t.Helper()
	doc, err := xmlutils.Parse([]byte(sampleInvoice))
	require.NoError(t, err)
	return doc
}

func TestDecode(t *testing.T) {
	codec := New(nil)
	record := codec.Decode(parseSample(t))

	tests := []struct {
		key      string
		expected string
	}{
		{"invoice_number", "INV-2024-001"},
		{"invoice_date", "20240115"},
		{"due_date", "20240215"},
		{"seller_name", "Acme SARL"},
		{"seller_siren", "123456789"},
		{"seller_vat", "FR12345678901"},
		{"seller_street", "1 rue de la Paix"},
		{"seller_city", "Paris"},
		{"seller_postal_code", "75002"},
		{"seller_country", "FR"},
		{"seller_fe_address", "billing@acme.example"},
		{"buyer_name", "Globex SA"},
		{"buyer_street", "42 avenue Foch"},
		{"buyer_city", "Lyon"},
		{"buyer_postal_code", "69006"},
		{"buyer_country", "FR"},
		{"billing_name", "Globex Entrepot"},
		{"billing_street", "7 quai du Rhone"},
		{"billing_city", "Lyon"},
		{"billing_postal_code", "69007"},
		{"billing_country", "FR"},
		{"grand_total", "120.00"},
		{"tax_total", "20.00"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.expected, record[tt.key])
		})
	}
}

func TestDecodeMissingNodesYieldEmpty(t *testing.T) {
	codec := New(nil)
	record := codec.Decode(parseSample(t))

	// The buyer in the sample has no legal/tax registration and the seller
	// example is complete, so these come out empty rather than erroring.
	assert.Equal(t, "", record["buyer_siren"])
	assert.Equal(t, "", record["buyer_vat"])
	assert.Equal(t, "", record["buyer_fe_address"])
}

func TestDecodeAllKeysPresent(t *testing.T) {
	codec := New(nil)
	record := codec.Decode(parseSample(t))
	assert.Len(t, record, codec.Schema().Len())
	for _, key := range codec.Schema().Keys() {
		_, ok := record[key]
		assert.True(t, ok, "key %s missing from decoded record", key)
	}
}

func TestDecodeEmptyDocument(t *testing.T) {
	codec := New(nil)
	doc := etree.NewDocument()
	record := codec.Decode(doc)
	assert.Len(t, record, codec.Schema().Len())
	for key, value := range record {
		assert.Equal(t, "", value, key)
	}
}

func TestEncodeOverwritesExistingNodes(t *testing.T) {
	codec := New(nil)
	doc := parseSample(t)

	record := codec.Decode(doc)
	record["seller_name"] = "Acme International SARL"
	record["invoice_number"] = "INV-2024-002"
	record["grand_total"] = "150.00"

	skipped := codec.Encode(doc, record)
	assert.NotContains(t, skipped, "seller_name")

	updated := codec.Decode(doc)
	assert.Equal(t, "Acme International SARL", updated["seller_name"])
	assert.Equal(t, "INV-2024-002", updated["invoice_number"])
	assert.Equal(t, "150.00", updated["grand_total"])
	// Unrelated fields untouched.
	assert.Equal(t, "Globex SA", updated["buyer_name"])
}

func TestEncodeEmptyValueNeverBlanksNode(t *testing.T) {
	codec := New(nil)
	doc := parseSample(t)

	record := models.InvoiceRecord{"seller_name": ""}
	codec.Encode(doc, record)

	assert.Equal(t, "Acme SARL", codec.Decode(doc)["seller_name"])
}

func TestEncodeSkipsMissingTargets(t *testing.T) {
	codec := New(nil)
	doc := parseSample(t)

	// buyer_siren has no node in the sample; encode must skip, not create.
	record := models.InvoiceRecord{"buyer_siren": "987654321"}
	skipped := codec.Encode(doc, record)

	assert.Contains(t, skipped, "buyer_siren")
	assert.Equal(t, "", codec.Decode(doc)["buyer_siren"], "no structure may be synthesized")
}

func TestRoundTripStability(t *testing.T) {
	codec := New(nil)
	doc := parseSample(t)

	original := codec.Decode(doc)
	codec.Encode(doc, original.Clone())
	afterOnce := codec.Decode(doc)
	require.True(t, original.Equal(afterOnce), "decode(encode(decode)) must equal decode")

	// And through serialization.
	out, err := codec.Serialize(doc)
	require.NoError(t, err)
	reparsed, err := xmlutils.Parse(out)
	require.NoError(t, err)
	assert.True(t, original.Equal(codec.Decode(reparsed)))
}

func TestSerializeKeepsDeclaration(t *testing.T) {
	codec := New(nil)
	doc := parseSample(t)

	out, err := codec.Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out[:40]), "<?xml")
	assert.NoError(t, xmlutils.Validate(out))
}

func TestSerializeAddsMissingDeclaration(t *testing.T) {
	codec := New(nil)
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString("<Invoice/>"))

	out, err := codec.Serialize(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out[:20]), "<?xml")
}
