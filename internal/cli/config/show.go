package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kacl-dev/kacl/internal/cli/shared"
	"github.com/kacl-dev/kacl/internal/config"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after defaults, the user config, the project
config and KACL_* environment variables have been merged, and which of
those sources were found.`,
	Example: `  kacl config show
  kacl config show --json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func init() {
	showCmd.Flags().Bool("json", false, "Output in JSON format")
	showCmd.Flags().Bool("yaml", true, "Output in YAML format")
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	asJSON, _ := cmd.Flags().GetBool("json")

	out := cmd.OutOrStdout()
	printSources(out, cfg)

	payload, err := configDocument(cfg)
	if err != nil {
		return err
	}
	if asJSON {
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// configDocument nests the configuration under the root key using the
// snake_case names of the config file.
func configDocument(cfg *config.Configuration) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding configuration: %w", err)
	}
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("decoding configuration: %w", err)
	}
	return map[string]any{config.RootKey: fields}, nil
}

func printSources(out io.Writer, cfg *config.Configuration) {
	fmt.Fprintln(out, cBold("Configuration Sources"))

	userPath, err := config.UserConfigPath()
	if err == nil {
		fmt.Fprintf(out, "  %-8s %s\n", "user:", sourceState(userPath))
	}
	if cfg.Source != "" {
		fmt.Fprintf(out, "  %-8s %s\n", "project:", cGreen(cfg.Source))
	} else {
		fmt.Fprintf(out, "  %-8s %s\n", "project:", cDim("none"))
	}

	var overrides []string
	for _, key := range config.SortedKeys() {
		if _, ok := os.LookupEnv(key.EnvVar()); ok {
			overrides = append(overrides, key.EnvVar())
		}
	}
	if len(overrides) > 0 {
		fmt.Fprintf(out, "  %-8s %s\n", "env:", cYellow(strings.Join(overrides, ", ")))
	}
	fmt.Fprintln(out)
}

func sourceState(path string) string {
	if _, err := os.Stat(path); err != nil {
		return cDim(path + " (not found)")
	}
	return cGreen(path)
}
