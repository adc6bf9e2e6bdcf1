package main

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/qhfkit/internal/writer"
	"github.com/joshuapare/qhfkit/pkg/qhf"
)

var (
	convertStdout    bool
	convertFormat    string
	convertOwner     string
	convertOutputDir string
)

func init() {
	cmd := newConvertCmd()
	cmd.Flags().BoolVar(&convertStdout, "stdout", false, "Write to stdout instead of a file")
	cmd.Flags().StringVar(&convertFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&convertOwner, "owner", "", "Label for messages sent by the history owner")
	cmd.Flags().StringVarP(&convertOutputDir, "output-dir", "o", "", "Directory for transcripts")
	rootCmd.AddCommand(cmd)
}

func newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <file.qhf>...",
		Short: "Decode histories into transcripts",
		Long: `The convert command decodes each history and writes a transcript named
"<uin> - <date time>.txt" (or .json) into the output directory.

Files that are not QHF containers are reported and skipped; nothing is written
for them.

Example:
  qhfctl convert 123456.qhf
  qhfctl convert *.qhf --output-dir transcripts
  qhfctl convert 123456.qhf --stdout --owner "Ivan"
  qhfctl convert 123456.qhf --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args)
		},
	}
	return cmd
}

func runConvert(args []string) error {
	switch convertFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown format %q (want text or json)", convertFormat)
	}

	var failed []error
	for _, path := range args {
		if err := convertOne(path); err != nil {
			printError("%v\n", err)
			failed = append(failed, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%d of %d file(s) failed: %w", len(failed), len(args), errors.Join(failed...))
	}
	return nil
}

func convertOne(path string) error {
	printVerbose("Reading history: %s\n", path)
	h, err := loadHistory(path, false)
	if err != nil {
		return err
	}

	ro := cfg.RenderOptions()
	if convertOwner != "" {
		ro.OwnerLabel = convertOwner
	}

	var buf bytes.Buffer
	if convertFormat == "json" {
		err = qhf.RenderJSON(&buf, h, ro)
	} else {
		err = qhf.Render(&buf, h, ro)
	}
	if err != nil {
		return fmt.Errorf("%s: render: %w", path, err)
	}

	if convertStdout {
		_, err := stdout.Write(buf.Bytes())
		return err
	}

	dir := convertOutputDir
	if dir == "" {
		dir = cfg.OutputDir
	}
	name := qhf.OutputFilename(h, now())
	if convertFormat == "json" {
		name = strings.TrimSuffix(name, ".txt") + ".json"
	}
	out := filepath.Join(dir, name)
	if err := qhf.WriteDocument(&writer.FileWriter{Path: out}, buf.Bytes()); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	printInfo("%s was successfully written\n", out)
	return nil
}
