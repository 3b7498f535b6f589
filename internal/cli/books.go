package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List word books",
		Run:   runBooks,
	}

	RootCmd.AddCommand(cmd)
}

func runBooks(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	books, err := s.ListBooks(cmd.Context())
	if err != nil {
		exitErr("list books", err)
	}

	if !textOutput() {
		printJSON(cmd, books)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BOOK\tWORDS\tLEARNED")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", b.Name, b.Words, b.Learned)
	}
	tw.Flush()
}
