package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"diplomagen/internal/config"
	"diplomagen/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	logger  *log.Logger
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "diplomagen",
	Short: "diplomagen - generate diplomas from a Word template and a spreadsheet",
	Long: `diplomagen uploads a Word template (.docx) and a spreadsheet of data (.xlsx/.xls)
to a diploma generation server and saves the generated diplomas as a ZIP archive.

Usage:
  Generate diplomas:     diplomagen generate --template diploma.docx --data people.xlsx
  Pick files on prompt:  diplomagen generate --interactive
  Get sample files:      diplomagen samples

The server address defaults to http://localhost:5000 and can be changed with
--server, the DIPLOMAGEN_SERVER_URL environment variable or the config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize viper configuration
		initConfig()

		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		logger = logging.New(os.Stderr, cfg.Log.Level)
		if used := viper.ConfigFileUsed(); used != "" {
			logger.Debug("Using config file", "path", used)
		}
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.diplomagen.yaml)")
	rootCmd.PersistentFlags().StringP("server", "s", "", "base URL of the generation server")
	rootCmd.PersistentFlags().StringP("out", "o", "", "directory where downloaded files are saved")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	viper.BindPFlag("server.url", rootCmd.PersistentFlags().Lookup("server"))
	viper.BindPFlag("output.dir", rootCmd.PersistentFlags().Lookup("out"))
	viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Set up viper environment variable support
	viper.SetEnvPrefix("DIPLOMAGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Could not find home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".diplomagen" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".diplomagen")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Warning: Could not read config file: %v\n", err)
		}
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
