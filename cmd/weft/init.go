package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter config file",
	Long: `Interactively create a config.yaml in the current directory with
the document root and port filled in.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// exampleConfig mirrors config.Config but with yaml tags and only the
// fields a starter file should surface.
type exampleConfig struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`
	Files struct {
		Root             string `yaml:"root"`
		RedirectSymlinks bool   `yaml:"redirect_symlinks"`
	} `yaml:"files"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
}

func runInit(cmd *cobra.Command, args []string) error {
	const path = "config.yaml"

	if _, err := os.Stat(path); err == nil {
		prompt := promptui.Prompt{
			Label:     "config.yaml already exists. Overwrite it",
			IsConfirm: true,
		}
		if _, promptErr := prompt.Run(); promptErr != nil {
			fmt.Println("Cancelled.")
			return nil //nolint:nilerr // User cancelled, not an error
		}
	}

	rootPrompt := promptui.Prompt{
		Label:   "Document root",
		Default: "./public",
		Validate: func(input string) error {
			if input == "" {
				return errors.New("document root is required")
			}
			return nil
		},
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}

	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: "5709",
		Validate: func(input string) error {
			port, parseErr := strconv.Atoi(input)
			if parseErr != nil || port < 1 || port > 65535 {
				return errors.New("port must be between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return handlePromptError(err)
	}
	port, _ := strconv.Atoi(portStr)

	var cfg exampleConfig
	cfg.Server.Port = port
	cfg.Files.Root = root
	cfg.Log.Level = "info"

	out, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	fmt.Printf("Wrote %s\n", path)
	return nil
}

func handlePromptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrAbort) {
		fmt.Println("Cancelled.")
		return nil
	}
	return fmt.Errorf("prompt: %w", err)
}
