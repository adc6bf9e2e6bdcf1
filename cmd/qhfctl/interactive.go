package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/qhfkit/internal/transcript"
	"github.com/joshuapare/qhfkit/pkg/qhf"
)

// stdin is swapped by tests.
var stdin io.Reader = os.Stdin

func init() {
	rootCmd.AddCommand(newInteractiveCmd())
}

func newInteractiveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Prompt for a history file and convert it",
		Long: `The interactive command asks for a path until an existing file is
given, then converts it into a transcript in the output directory. Enter Q
(or an empty line) to quit.

Example:
  qhfctl interactive
  qhfctl interactive --output-dir transcripts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive()
		},
	}
	cmd.Flags().StringVarP(&convertOutputDir, "output-dir", "o", "", "Directory for transcripts")
	return cmd
}

func runInteractive() error {
	path, ok, err := promptPath(bufio.NewScanner(stdin))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(stdout, "The program was completed")
		return nil
	}

	h, err := loadHistory(path, false)
	if err != nil {
		if errors.Is(err, errNotQHF) {
			fmt.Fprintln(stdout, "This file is not QHF format or corrupted. The program has been stopped")
		}
		return err
	}

	fmt.Fprint(stdout, transcript.Header(h))
	dir := convertOutputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	out, err := qhf.WriteTranscript(h, dir, now(), cfg.RenderOptions())
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "%s was successfully written\n", out)
	return nil
}

// promptPath asks until an existing path is entered. It reports false when
// the user quits or input ends.
func promptPath(sc *bufio.Scanner) (string, bool, error) {
	for {
		fmt.Fprint(stdout, "Enter path to the file or Q for quit: ")
		if !sc.Scan() {
			fmt.Fprintln(stdout)
			return "", false, sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "", "q", "Q":
			return "", false, nil
		}
		if _, err := os.Stat(line); err == nil {
			return line, true, nil
		}
		printVerbose("%s does not exist\n", line)
	}
}
