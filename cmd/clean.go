package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zhubert/combobox/internal/config"
	"github.com/zhubert/combobox/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove log files and remembered selections",
	Long: `Removes the combobox log files from /tmp and clears the list of recently
selected values stored in the config file.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	recentCount := len(cfg.GetRecent())
	logFiles, err := logger.LogFiles()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error finding log files: %v\n", err)
	}

	if recentCount == 0 && len(logFiles) == 0 {
		fmt.Println("Nothing to clean.")
		return nil
	}

	fmt.Println("This will clean:")
	if recentCount > 0 {
		fmt.Printf("  - %d remembered selection(s)\n", recentCount)
	}
	if len(logFiles) > 0 {
		fmt.Printf("  - %d log file(s)\n", len(logFiles))
		for _, f := range logFiles {
			fmt.Printf("      %s\n", f)
		}
	}

	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if recentCount > 0 {
		cfg.ClearRecent()
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("error saving config: %w", err)
		}
	}

	// The log we are about to remove may be open.
	logger.Close()
	logsCleared, err := logger.ClearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Println()
	fmt.Println("Cleaned:")
	if recentCount > 0 {
		fmt.Printf("  - %d remembered selection(s) cleared\n", recentCount)
	}
	if logsCleared > 0 {
		fmt.Printf("  - %d log file(s) removed\n", logsCleared)
	}

	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
