package cli

import (
	"github.com/spf13/cobra"

	"github.com/rcliao/wordbook/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export words as JSON",
		Long:  "Export words as a JSON array, the format read back by 'import --list-format json'. Filter by book with -b.",
		Run:   runExport,
	}

	cmd.Flags().StringP("book", "b", "", "Filter by book")

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	words, err := s.ExportAll(cmd.Context(), book)
	if err != nil {
		exitErr("export", err)
	}
	if words == nil {
		words = []model.Word{}
	}

	printJSON(cmd, words)
}
