// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

type formatsList struct {
	InputFormats  []string `yaml:"input_formats"`
	OutputFormats []string `yaml:"output_formats"`
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported input and output formats",
	RunE: func(cmd *cobra.Command, args []string) error {
		conv := newConverter(cfg, logger)
		list := formatsList{
			InputFormats:  conv.SupportedInputFormats(),
			OutputFormats: conv.SupportedOutputFormats(),
		}

		asYAML, _ := cmd.Flags().GetBool("yaml")
		if asYAML {
			data, err := yaml.Marshal(list)
			if err != nil {
				return fmt.Errorf("marshaling formats: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Input formats:  %s\n", strings.Join(list.InputFormats, " "))
		fmt.Fprintf(cmd.OutOrStdout(), "Output formats: %s\n", strings.Join(list.OutputFormats, " "))
		return nil
	},
}

func init() {
	formatsCmd.Flags().Bool("yaml", false, "output as YAML")

	rootCmd.AddCommand(formatsCmd)
}
