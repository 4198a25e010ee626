// Package update handles the save step, on either the form path (apply a
// fields file through the codec) or the raw-text path (replace the working
// XML wholesale).
package update

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"fjacquet/facturx-edit/cmd/common"
	"fjacquet/facturx-edit/cmd/root"
	"fjacquet/facturx-edit/internal/fileutils"
	"fjacquet/facturx-edit/internal/models"
)

var (
	fieldsFile string
	xmlFile    string
)

// Cmd represents the update command
var Cmd = &cobra.Command{
	Use:   "update",
	Short: "Save edited invoice data back into a job's working XML",
	Long: `Update replaces the job's working document. With --fields a YAML
key/value file is applied through the field map: values whose target node
exists overwrite it, values without a target are skipped, and empty values
never blank existing content. With --xml the submitted file replaces the
working XML wholesale after sanitization and validation; an invalid file
leaves the previous working document untouched.`,
	Run: updateFunc,
}

func init() {
	Cmd.Flags().StringVar(&fieldsFile, "fields", "", "YAML file of field key/value pairs (form path)")
	Cmd.Flags().StringVar(&xmlFile, "xml", "", "XML file replacing the working document (raw-text path)")
}

func updateFunc(cmd *cobra.Command, args []string) {
	if (fieldsFile == "") == (xmlFile == "") {
		root.Log.Fatal("Exactly one of --fields or --xml is required")
	}

	sess, err := common.OpenSession()
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	if xmlFile != "" {
		raw, err := fileutils.ReadFile(xmlFile)
		if err != nil {
			root.Log.Fatalf("Error reading XML file: %v", err)
		}
		if err := sess.SaveText(raw); err != nil {
			root.Log.Fatalf("XML rejected, working document unchanged: %v", err)
		}
		root.Log.Info("Working XML replaced")
		return
	}

	data, err := fileutils.ReadFile(fieldsFile)
	if err != nil {
		root.Log.Fatalf("Error reading fields file: %v", err)
	}
	var record models.InvoiceRecord
	if err := yaml.Unmarshal(data, &record); err != nil {
		root.Log.Fatalf("Error parsing fields file: %v", err)
	}

	skipped, err := sess.SaveForm(record)
	if err != nil {
		root.Log.Fatalf("Error applying fields: %v", err)
	}
	for _, key := range skipped {
		root.Log.Infof("Field %s skipped: the document has no node for it", key)
	}
	root.Log.Info("Invoice fields saved")
}
