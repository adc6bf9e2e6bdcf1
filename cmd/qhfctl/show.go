package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/qhfkit/pkg/qhf"
)

var showRaw bool

func init() {
	cmd := newShowCmd()
	cmd.Flags().BoolVar(&showRaw, "raw", false, "Also print the encoded bytes in hex")
	rootCmd.AddCommand(cmd)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file.qhf> <seq>",
		Short: "Display one message",
		Long: `The show command prints a single message by its sequence number.
Sequence numbers count records from 1 in file order; the number stored inside
a record is reported separately.

Example:
  qhfctl show 123456.qhf 1
  qhfctl show 123456.qhf 42 --raw
  qhfctl show 123456.qhf 42 --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args)
		},
	}
	return cmd
}

func runShow(args []string) error {
	seq, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid message number %q", args[1])
	}

	h, err := loadHistory(args[0], false)
	if err != nil {
		return err
	}
	m, err := h.Message(seq)
	if err != nil {
		return err
	}

	if jsonOut {
		doc := qhf.NewDocument(h, cfg.RenderOptions())
		return printJSON(doc.Messages[seq-1])
	}

	printInfo("Message %d of %d\n", m.Seq(), h.Len())
	printInfo("  Stored number: %d\n", m.StoredNumber())
	printInfo("  Offset: 0x%X\n", m.Offset())
	printInfo("  Time: %s\n", formatTime(m.Time()))
	printInfo("  Sender: %s\n", m.Sender(ownerLabel(), h.Nick()))
	if _, err := m.DecodeText(); err != nil {
		printInfo("  Decode: failed (%v)\n", err)
	}
	if showRaw {
		printInfo("  Encoded: % x\n", m.Encoded())
	}
	printInfo("\n%s\n", m.Text())
	return nil
}
