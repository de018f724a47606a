package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var boundsCmd = &cobra.Command{
	Use:   "bounds <gerber-file>",
	Short: "Report the bounding box of the drawn image",
	Args:  cobra.ExactArgs(1),
	RunE:  runBounds,
}

func init() {
	rootCmd.AddCommand(boundsCmd)
}

func runBounds(cmd *cobra.Command, args []string) error {
	doc, err := loadDocument(args[0])
	if err != nil {
		return err
	}

	lx, by, rx, ty, ok := doc.Box.Bounds()
	if !ok {
		fmt.Println("no drawn content, bounding box is empty")
		return nil
	}
	u := unitsString(doc)
	fmt.Printf("Bounds: (%g, %g) .. (%g, %g) %s\n", lx, by, rx, ty, u)
	fmt.Printf("Size:   %g x %g %s\n", doc.Box.Width(), doc.Box.Height(), u)
	return nil
}
