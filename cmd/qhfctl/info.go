package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <file.qhf>",
		Short: "Validate a history and report its metadata",
		Long: `The info command validates a QHF container and displays the remote
participant, the message count, the time span and how many messages fail to
decode.

Example:
  qhfctl info 123456.qhf
  qhfctl info 123456.qhf --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

func runInfo(args []string) error {
	path := args[0]
	printVerbose("Opening history: %s\n", path)

	h, err := loadHistory(path, false)
	if err != nil {
		return err
	}
	info := h.Info()

	if jsonOut {
		return printJSON(info)
	}

	printInfo("\nHistory Information:\n")
	printInfo("  File: %s\n", path)
	printInfo("  Size: %d bytes\n", info.Size)
	printInfo("  UIN: %s\n", info.UIN)
	printInfo("  Nick: %s\n", info.Nick)
	printInfo("  Messages: %d\n", info.MsgQuantity)
	if info.MsgQuantity > 0 {
		printInfo("  First: %s\n", formatTime(info.First))
		printInfo("  Last: %s\n", formatTime(info.Last))
	}
	printInfo("  Zero-sign records: %d\n", info.ZeroSignRecords)

	printInfo("\nValidation:\n")
	printInfo("  ✓ Structure valid\n")
	if info.DecodeFailures == 0 {
		printInfo("  ✓ All messages decode\n")
	} else {
		printInfo("  ✗ %d message(s) could not be decoded\n", info.DecodeFailures)
	}
	return nil
}
