package cmd

import (
	"diplomagen/internal/app"
	"diplomagen/internal/artifact"
	"diplomagen/internal/file"
	"diplomagen/internal/form"
	"diplomagen/internal/transport"
	"diplomagen/internal/ui"

	"github.com/spf13/cobra"
)

type GenerateFlags struct {
	TemplatePath string
	DataPath     string
	Interactive  bool
}

var generateFlags GenerateFlags

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Upload a template and a spreadsheet and download the diplomas",
	Long: `Upload a Word template and a spreadsheet to the generation server. This will:

1. Check that both files are selected and have the expected extensions
2. Send them to the server in one request
3. Save the returned archive as diplomas_generados.zip in the output directory

Use --template and --data to pick the files, or --interactive to be prompted.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		_, err := file.ResolveOutputDir(cfg.Output.Dir)
		return err
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerateApp(&generateFlags)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateFlags.TemplatePath, "template", "t", "", "Path to the .docx template")
	generateCmd.Flags().StringVarP(&generateFlags.DataPath, "data", "d", "", "Path to the .xlsx or .xls data file")
	generateCmd.Flags().BoolVarP(&generateFlags.Interactive, "interactive", "i", false, "Prompt for the files and allow several runs")
}

// runGenerateApp creates and runs the generate application
func runGenerateApp(flags *GenerateFlags) error {
	ctx, cancel := createContext()
	defer cancel()

	view := ui.NewConsoleView(nil)
	client := transport.NewClient(cfg, nil, logger)
	saver := artifact.NewSaver(cfg.Output.Dir, logger)
	controller := form.NewController(cfg, view, client, saver, logger)

	opts := &app.GenerateOptions{
		TemplatePath: flags.TemplatePath,
		DataPath:     flags.DataPath,
		Interactive:  flags.Interactive,
	}

	generateApp := app.NewGenerateApp(cfg, controller, ui.NewPrompter(), logger)
	return generateApp.Run(ctx, opts)
}
