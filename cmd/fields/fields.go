// Package fields renders the working document's flat invoice record.
package fields

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fjacquet/facturx-edit/cmd/common"
	"fjacquet/facturx-edit/cmd/root"
	"fjacquet/facturx-edit/internal/fieldmap"
	"fjacquet/facturx-edit/internal/fileutils"
	"fjacquet/facturx-edit/internal/models"
	"fjacquet/facturx-edit/internal/xmlutils"
)

var (
	format string
	xpath  string
)

// Cmd represents the fields command
var Cmd = &cobra.Command{
	Use:   "fields",
	Short: "Show the invoice fields of a job's working XML",
	Long: `Fields decodes the job's working document into the flat invoice record
and prints it as YAML (editable, feed it back via 'update --fields') or
CSV. With --xpath an arbitrary read-only XPath query is evaluated instead.`,
	Run: fieldsFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or csv")
	Cmd.Flags().StringVarP(&xpath, "xpath", "x", "", "Evaluate an XPath expression instead of the field map")
}

func fieldsFunc(cmd *cobra.Command, args []string) {
	sess, err := common.OpenSession()
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	if xpath != "" {
		data, err := sess.WorkingXML()
		if err != nil {
			root.Log.Fatalf("Error reading working XML: %v", err)
		}
		values, err := xmlutils.Query(data, xpath)
		if err != nil {
			root.Log.Fatalf("XPath query failed: %v", err)
		}
		for _, v := range values {
			fmt.Println(v)
		}
		return
	}

	record, err := sess.Record()
	if err != nil {
		root.Log.Fatalf("Error decoding invoice record: %v", err)
	}

	var out []byte
	switch format {
	case "yaml":
		out, err = marshalYAML(record)
	case "csv":
		out, err = marshalCSV(record)
	default:
		root.Log.Fatalf("Unknown format: %s (expected yaml or csv)", format)
	}
	if err != nil {
		root.Log.Fatalf("Error rendering fields: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := fileutils.WriteFile(root.SharedFlags.Output, out, 0o600); err != nil {
			root.Log.Fatalf("Error writing output file: %v", err)
		}
		root.Log.Infof("Fields written to %s", root.SharedFlags.Output)
		return
	}
	fmt.Print(string(out))
}

// marshalYAML renders the record as a YAML mapping in schema order, so
// the output is stable and diff-friendly.
func marshalYAML(record models.InvoiceRecord) ([]byte, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, key := range fieldmap.Default().Keys() {
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: key},
			&yaml.Node{Kind: yaml.ScalarNode, Value: record[key]},
		)
	}
	return yaml.Marshal(node)
}

// marshalCSV renders the record as key/value rows in schema order, using
// the configured delimiter.
func marshalCSV(record models.InvoiceRecord) ([]byte, error) {
	rows := make([]models.FieldRow, 0, len(record))
	for _, key := range fieldmap.Default().Keys() {
		rows = append(rows, models.FieldRow{Key: key, Value: record[key]})
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = []rune(root.Cfg.CSV.Delimiter)[0]
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(w)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
