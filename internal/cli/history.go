package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show finished sessions",
		Run:   runHistory,
	}

	cmd.Flags().StringP("book", "b", "", "Filter by book")
	cmd.Flags().IntP("limit", "l", 20, "Max results")

	RootCmd.AddCommand(cmd)
}

func runHistory(cmd *cobra.Command, args []string) {
	book, _ := cmd.Flags().GetString("book")
	limit, _ := cmd.Flags().GetInt("limit")

	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	sessions, err := s.ListSessions(cmd.Context(), book, limit)
	if err != nil {
		exitErr("history", err)
	}

	if !textOutput() {
		printJSON(cmd, sessions)
		return
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tKIND\tBOOK\tWORDS\tERRORS\tLEARNED")
	for _, sess := range sessions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%d\n",
			sess.CreatedAt.Local().Format("2006-01-02 15:04"), sess.Kind, sess.Book, sess.Total, sess.Errors, sess.Learned)
	}
	tw.Flush()
}
