package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tabload/internal/format"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported file extensions",
	Long: `Formats lists every file extension tabload can read and the format it
maps to. The extension alone decides how a file is parsed; there is no
content sniffing.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, ext := range format.Extensions() {
			f, _ := format.Detect("example" + ext)
			fmt.Printf("%-8s %s\n", ext, f)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
