package fieldmap

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseDoc(t *testing.T, data string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(data))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func TestResolveChain(t *testing.T) {
	root := parseDoc(t, `
<rsm:CrossIndustryInvoice
    xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100">
  <rsm:ExchangedDocument>
    <ram:ID>INV-7</ram:ID>
  </rsm:ExchangedDocument>
</rsm:CrossIndustryInvoice>`)

	steps := []Step{
		{Space: NamespaceRSM, Local: "ExchangedDocument"},
		{Space: NamespaceRAM, Local: "ID"},
	}
	node := Resolve(root, steps)
	require.NotNil(t, node)
	assert.Equal(t, "INV-7", node.Text())
}

func TestResolveIgnoresPrefixBinding(t *testing.T) {
	// Same URIs bound to different prefixes must still match.
	root := parseDoc(t, `
<x:CrossIndustryInvoice
    xmlns:x="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:y="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100">
  <x:ExchangedDocument>
    <y:ID>INV-8</y:ID>
  </x:ExchangedDocument>
</x:CrossIndustryInvoice>`)

	steps := []Step{
		{Space: NamespaceRSM, Local: "ExchangedDocument"},
		{Space: NamespaceRAM, Local: "ID"},
	}
	node := Resolve(root, steps)
	require.NotNil(t, node)
	assert.Equal(t, "INV-8", node.Text())
}

func TestResolveWrongNamespaceNoMatch(t *testing.T) {
	root := parseDoc(t, `
<rsm:CrossIndustryInvoice xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100">
  <rsm:ExchangedDocument>
    <rsm:ID>INV-9</rsm:ID>
  </rsm:ExchangedDocument>
</rsm:CrossIndustryInvoice>`)

	// ID declared under rsm, schema expects ram.
	steps := []Step{
		{Space: NamespaceRSM, Local: "ExchangedDocument"},
		{Space: NamespaceRAM, Local: "ID"},
	}
	assert.Nil(t, Resolve(root, steps))
}

func TestResolveFirstMatchInDocumentOrder(t *testing.T) {
	root := parseDoc(t, `
<rsm:Inv
    xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100">
  <rsm:ExchangedDocument>
    <ram:ID>first</ram:ID>
    <ram:ID>second</ram:ID>
  </rsm:ExchangedDocument>
  <rsm:ExchangedDocument>
    <ram:ID>third</ram:ID>
  </rsm:ExchangedDocument>
</rsm:Inv>`)

	steps := []Step{
		{Space: NamespaceRSM, Local: "ExchangedDocument"},
		{Space: NamespaceRAM, Local: "ID"},
	}
	node := Resolve(root, steps)
	require.NotNil(t, node)
	assert.Equal(t, "first", node.Text())
}

func TestResolveDescendantAnchor(t *testing.T) {
	// The chain may anchor anywhere below the root, not only at top level.
	root := parseDoc(t, `
<rsm:Inv
    xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
    xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100">
  <rsm:SupplyChainTradeTransaction>
    <ram:ApplicableHeaderTradeSettlement>
      <ram:SpecifiedTradePaymentTerms>
        <ram:Description>net 30</ram:Description>
      </ram:SpecifiedTradePaymentTerms>
    </ram:ApplicableHeaderTradeSettlement>
  </rsm:SupplyChainTradeTransaction>
</rsm:Inv>`)

	steps := []Step{
		{Space: NamespaceRAM, Local: "SpecifiedTradePaymentTerms"},
		{Space: NamespaceRAM, Local: "Description"},
	}
	node := Resolve(root, steps)
	require.NotNil(t, node)
	assert.Equal(t, "net 30", node.Text())
}

func TestResolveEdgeCases(t *testing.T) {
	root := parseDoc(t, `<a xmlns="urn:x"/>`)
	steps := []Step{{Space: "urn:x", Local: "a"}}

	assert.Nil(t, Resolve(nil, steps))
	assert.Nil(t, Resolve(root, nil))
	assert.NotNil(t, Resolve(root, steps), "root itself may match the first step")
}
