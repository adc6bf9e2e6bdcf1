package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInspectCmd())
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file.qhf>",
		Short: "Show the record layout of a history",
		Long: `The inspect command walks every record and prints where the cursor
found it. Records whose leading signature byte is shared with the previous
record are marked as zero-sign.

Example:
  qhfctl inspect 123456.qhf
  qhfctl inspect 123456.qhf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(args)
		},
	}
	return cmd
}

func runInspect(args []string) error {
	h, err := loadHistory(args[0], true)
	if err != nil {
		return err
	}
	info := h.Info()
	trace := h.Trace()

	if jsonOut {
		return printJSON(struct {
			Header  any `json:"header"`
			Records any `json:"records"`
		}{info, trace})
	}

	printInfo("Header:\n")
	printInfo("  uin: %q\n", info.UIN)
	printInfo("  nick: %q\n", info.Nick)
	printInfo("  msg_quantity: %d\n", info.MsgQuantity)
	printInfo("  first_record_offset: 0x%X\n", info.FirstRecordOffset)
	printInfo("\nRecords:\n")

	if quiet {
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tCURSOR\tSTART\tEND\tBLOCK\tZERO-SIGN")
	for _, e := range trace {
		zs := ""
		if e.ZeroSign {
			zs = "yes"
		}
		fmt.Fprintf(tw, "%d\t0x%X\t0x%X\t0x%X\t%d\t%s\n", e.Seq, e.Cursor, e.Start, e.End, e.BlockSize, zs)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printInfo("\n%d record(s), %d zero-sign, file size %d bytes\n", len(trace), info.ZeroSignRecords, info.Size)
	return nil
}
