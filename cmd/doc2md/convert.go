// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/doc2md/internal/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert <input> <output> | --out-dir <dir> <inputs...>",
	Short: "Convert documents to Markdown",
	Long: `Convert reads a .docx or .pdf document and writes Markdown. The reader and
writer are chosen by file extension.

With two arguments and no --out-dir, the first file is converted into the
second. With --out-dir, every argument is an input and each is written to
<out-dir>/<name>.md; existing outputs are skipped unless --force is given.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().String("out-dir", "", "convert every argument into this directory")
	convertCmd.Flags().String("out-ext", ".md", "output extension for --out-dir mode")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs in --out-dir mode")
	convertCmd.Flags().String("report", "", "write a YAML report of a --out-dir run to this path")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	conv := newConverter(cfg, logger)

	if outDir == "" {
		if len(args) != 2 {
			return fmt.Errorf("convert needs <input> <output>, or --out-dir with one or more inputs")
		}
		if err := conv.Convert(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "converted: %s -> %s\n", args[0], args[1])
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("convert --out-dir needs at least one input")
	}
	outExt, _ := cmd.Flags().GetString("out-ext")
	force, _ := cmd.Flags().GetBool("force")
	report, _ := cmd.Flags().GetString("report")

	result := convert.ConvertBatch(conv, args, convert.BatchOptions{
		OutDir: outDir,
		OutExt: outExt,
		Force:  force,
	}, cmd.OutOrStdout())

	if report != "" {
		if err := convert.WriteReport(result, report); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Report written to", report)
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d conversions failed", result.Failed, result.Total())
	}
	return nil
}
