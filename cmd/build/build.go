// Package build handles the final step: injecting the working XML into a
// fresh copy of the original PDF.
package build

import (
	"fmt"

	"github.com/spf13/cobra"

	"fjacquet/facturx-edit/cmd/common"
	"fjacquet/facturx-edit/cmd/root"
	"fjacquet/facturx-edit/internal/fileutils"
)

// Cmd represents the build command
var Cmd = &cobra.Command{
	Use:   "build",
	Short: "Build an updated PDF with the job's working XML embedded",
	Long: `Build removes every XML attachment from a copy of the original PDF,
injects the current working document under the originally selected
attachment name, and saves the result under a fresh collision-free name
inside the job. Repeated builds coexist; none overwrites another.`,
	Run: buildFunc,
}

func buildFunc(cmd *cobra.Command, args []string) {
	sess, err := common.OpenSession()
	if err != nil {
		root.Log.Fatalf("Error opening session: %v", err)
	}

	outPath, err := sess.Build()
	if err != nil {
		root.Log.Fatalf("Error building updated PDF: %v", err)
	}

	if root.SharedFlags.Output != "" {
		if err := fileutils.CopyFile(outPath, root.SharedFlags.Output); err != nil {
			root.Log.Fatalf("Error copying output: %v", err)
		}
		outPath = root.SharedFlags.Output
	}

	fmt.Printf("output: %s\n", outPath)
}
