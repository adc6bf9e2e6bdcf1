package main

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/joshuapare/qhfkit/internal/archive"
	"github.com/joshuapare/qhfkit/internal/logger"
)

var archiveDB string

func init() {
	cmd := newArchiveCmd()
	cmd.PersistentFlags().StringVar(&archiveDB, "db", "", "Archive database (default from config)")
	cmd.AddCommand(newArchiveImportCmd(), newArchiveListCmd(), newArchiveSearchCmd(), newArchiveDeleteCmd())
	rootCmd.AddCommand(cmd)
}

func newArchiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive",
		Short: "Manage a searchable SQLite archive of histories",
		Long: `The archive commands import decoded histories into a SQLite database
and query them.

Example:
  qhfctl archive import *.qhf
  qhfctl archive list --db chats.db
  qhfctl archive search "hello"
  qhfctl archive delete <import-id>`,
	}
}

func newArchiveImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.qhf>...",
		Short: "Import histories into the archive",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveImport(cmd.Context(), args)
		},
	}
}

func newArchiveListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List archived histories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveList(cmd.Context())
		},
	}
}

func newArchiveSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>",
		Short: "Find archived messages containing text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveSearch(cmd.Context(), args[0])
		},
	}
}

func newArchiveDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <import-id>",
		Short: "Remove an import and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchiveDelete(cmd.Context(), args[0])
		},
	}
}

func openArchive() (*archive.Store, error) {
	path := archiveDB
	if path == "" {
		path = cfg.ArchivePath
	}
	printVerbose("Opening archive: %s\n", path)
	return archive.Open(path)
}

func runArchiveImport(ctx context.Context, files []string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	var failed []error
	for _, path := range files {
		h, err := loadHistory(path, false)
		if err != nil {
			printError("%v\n", err)
			failed = append(failed, err)
			continue
		}
		rec, err := store.SaveHistory(ctx, h, path)
		if err != nil {
			err = fmt.Errorf("%s: %w", path, err)
			printError("%v\n", err)
			failed = append(failed, err)
			continue
		}
		logger.Info("history archived", "path", path, "import", rec.ImportID, "history", rec.ID)
		printInfo("%s: imported %d message(s) as %s\n", path, rec.MsgQuantity, rec.ImportID)
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", len(failed), len(files), errors.Join(failed...))
	}
	return nil
}

func runArchiveList(ctx context.Context) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	recs, err := store.ListHistories(ctx)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(recs)
	}
	if quiet {
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUIN\tNICK\tMESSAGES\tFAILED\tIMPORT\tSOURCE")
	for _, r := range recs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID, r.UIN, r.Nick, r.MsgQuantity, r.DecodeFailures, r.ImportID, r.Source)
	}
	return tw.Flush()
}

func runArchiveSearch(ctx context.Context, query string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	msgs, err := store.Search(ctx, query)
	if err != nil {
		return err
	}
	if jsonOut {
		return printJSON(msgs)
	}

	nicks := map[int64]string{}
	for _, m := range msgs {
		nick, ok := nicks[m.HistoryID]
		if !ok {
			rec, err := store.GetHistory(ctx, m.HistoryID)
			if err != nil {
				return err
			}
			nick = rec.Nick
			nicks[m.HistoryID] = nick
		}
		sender := nick
		if m.Sent {
			sender = ownerLabel()
		}
		printInfo("[%s #%d] -- %s (%s)\n%s\n\n", nick, m.Seq, sender, formatTime(m.Time), m.Text)
	}
	printVerbose("%d match(es)\n", len(msgs))
	return nil
}

func runArchiveDelete(ctx context.Context, importID string) error {
	store, err := openArchive()
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteImport(ctx, importID); err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			return fmt.Errorf("import %s not found", importID)
		}
		return err
	}
	printInfo("Deleted import %s\n", importID)
	return nil
}
