// Package extract handles the upload step: it copies a PDF into a fresh
// job and pulls out its embedded invoice XML.
package extract

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/facturx-edit/cmd/common"
	"fjacquet/facturx-edit/cmd/root"
	"fjacquet/facturx-edit/internal/editerror"
	"fjacquet/facturx-edit/internal/fileutils"
)

// Cmd represents the extract command
var Cmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract the embedded invoice XML from a PDF",
	Long: `Extract creates a new job, copies the input PDF into it, selects the
Factur-X/ZUGFeRD XML attachment, sanitizes it, and stores it as the job's
working document. The printed job id addresses the session in later
fields, update, and build calls.`,
	Run: extractFunc,
}

func extractFunc(cmd *cobra.Command, args []string) {
	if root.SharedFlags.Input == "" {
		root.Log.Fatal("Missing --input PDF file")
	}

	sess, err := common.NewSession()
	if err != nil {
		root.Log.Fatalf("Error creating session: %v", err)
	}

	if err := sess.Upload(root.SharedFlags.Input); err != nil {
		var noAtt *editerror.NoAttachmentsError
		var noXML *editerror.NoXMLAttachmentError
		switch {
		case errors.As(err, &noAtt):
			root.Log.Fatalf("The PDF carries no embedded files at all: %v", err)
		case errors.As(err, &noXML):
			root.Log.Fatalf("The PDF has embedded files, but none is XML: %v", err)
		default:
			root.Log.Fatalf("Error extracting XML: %v", err)
		}
	}

	if warning := sess.ValidationWarning(); warning != "" {
		root.Log.Warnf("Extracted XML is not well-formed: %s", warning)
		root.Log.Warn("The raw text remains editable; fix it with 'update --xml'")
	}

	if root.SharedFlags.Output != "" {
		data, err := sess.WorkingXML()
		if err != nil {
			root.Log.Fatalf("Error reading working XML: %v", err)
		}
		if err := fileutils.WriteFile(root.SharedFlags.Output, data, 0o600); err != nil {
			root.Log.Fatalf("Error writing XML copy: %v", err)
		}
		root.Log.Infof("Working XML copied to %s", root.SharedFlags.Output)
	}

	fmt.Printf("job: %s\n", sess.Job().ID)
	fmt.Printf("attachment: %s\n", sess.AttachmentName())
	fmt.Printf("working: %s\n", sess.Job().WorkingPath())
}
