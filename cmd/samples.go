package cmd

import (
	"fmt"

	"diplomagen/internal/app"
	"diplomagen/internal/artifact"
	"diplomagen/internal/file"
	"diplomagen/internal/transport"

	"github.com/spf13/cobra"
)

type SamplesFlags struct {
	TemplateOnly bool
	DataOnly     bool
}

var samplesFlags SamplesFlags

// samplesCmd represents the samples command
var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Download the sample template and data spreadsheet",
	Long: `Download the sample Word template and the sample spreadsheet published by the
generation server, to use as a starting point for your own files.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if samplesFlags.TemplateOnly && samplesFlags.DataOnly {
			return fmt.Errorf("--template-only and --data-only are mutually exclusive")
		}
		_, err := file.ResolveOutputDir(cfg.Output.Dir)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSamplesApp(cmd, &samplesFlags)
	},
}

func init() {
	rootCmd.AddCommand(samplesCmd)

	samplesCmd.Flags().BoolVar(&samplesFlags.TemplateOnly, "template-only", false, "Download only the sample template")
	samplesCmd.Flags().BoolVar(&samplesFlags.DataOnly, "data-only", false, "Download only the sample spreadsheet")
}

// runSamplesApp creates and runs the samples application
func runSamplesApp(cmd *cobra.Command, flags *SamplesFlags) error {
	ctx, cancel := createContext()
	defer cancel()

	opts := &app.SamplesOptions{
		Template: !flags.DataOnly,
		Data:     !flags.TemplateOnly,
	}

	client := transport.NewClient(cfg, nil, logger)
	saver := artifact.NewSaver(cfg.Output.Dir, logger)
	samplesApp := app.NewSamplesApp(cfg, client, saver, logger)

	paths, err := samplesApp.Run(ctx, opts)
	for _, p := range paths {
		fmt.Fprintln(cmd.OutOrStdout(), p)
	}
	return err
}
