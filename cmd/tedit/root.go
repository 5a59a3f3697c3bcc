package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tedit/internal/config"
	"tedit/internal/editor"
	"tedit/internal/log"
	"tedit/internal/tui"
	"tedit/internal/watch"
)

var (
	cfgFile string
	debug   bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "tedit [file]",
		Short:   "A minimal modal terminal editor",
		Long: `tedit is a minimal modal text editor for the terminal.

Keystrokes edit the buffer; esc switches to command mode where colon
commands save, open and run files (:help lists them all).`,
		Version: version,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if debug {
				if err := log.EnableDebug(""); err != nil {
					fmt.Printf("Warning: cannot open debug log: %v\n", err)
				}
			}

			var cfg *config.Config
			var configErr error
			if cfgFile != "" {
				cfg, configErr = config.LoadConfigFile(cfgFile)
			} else {
				cfg, configErr = config.LoadConfig()
			}
			if configErr != nil {
				fmt.Printf("Warning: %v\n", configErr)
				fmt.Println("Using default settings.")
				cfg = config.New()
			}

			return runEditor(cfg, args)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/tedit/config.yaml)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write a debug log to the user cache directory")

	return rootCmd
}

func runEditor(cfg *config.Config, args []string) error {
	session, err := editor.New(cfg)
	if err != nil {
		return fmt.Errorf("error creating editor session: %w", err)
	}
	if len(args) > 0 {
		// Failure surfaces as a status message; the editor starts anyway.
		session.OpenFile(args[0])
	}

	watcher, err := watch.New()
	if err != nil {
		log.Warnf("file watching disabled: %v", err)
		watcher = nil
	} else {
		if err := watcher.Start(); err != nil {
			log.Warnf("file watching disabled: %v", err)
			watcher = nil
		} else {
			defer watcher.Stop()
		}
	}

	p := tea.NewProgram(tui.New(session, watcher, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running editor: %w", err)
	}
	return nil
}
