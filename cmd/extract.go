package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hisaabkit/hisaab/engine"
)

var extractDocType string

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extracts document(s)",
	Long: `Extracts a given OCR text dump or PDF, or every supported file in a
directory, and prints the structured records as JSON.`,
	Run: handler,
}

func handler(cmd *cobra.Command, args []string) {
	target := viper.GetString("target")
	fmt.Println("scanning ", target)
	engine.ExecuteAgainstPath(target, extractDocType)
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringP("folder", "f", ".", "File or folder hisaab will scan")
	extractCmd.Flags().StringVarP(&extractDocType, "type", "t", "", "Document type: statement, receipt (default auto-detect)")
	viper.BindPFlag("target", extractCmd.Flags().Lookup("folder"))
}
