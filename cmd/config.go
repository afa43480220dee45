package cmd

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/joescharf/changeflow/internal/output"
)

var configForce bool

// configDirFunc returns the config directory path, replaceable in tests.
var configDirFunc = defaultConfigDir

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "changeflow"), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
	Long: `Show or manage changeflow configuration.

Running bare 'changeflow config' is the same as 'changeflow config show'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create config file with commented defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configInitRun()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective configuration with sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configShowRun()
	},
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Open config file in $EDITOR",
	RunE: func(cmd *cobra.Command, args []string) error {
		return configEditRun()
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing config file")
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEditCmd)
	rootCmd.AddCommand(configCmd)
}

// configTemplate is the template for generating config.yaml with comments.
const configTemplate = `# changeflow configuration
# See: changeflow config show (for effective values and sources)

# State directory for the serve PID and log files (default: ~/.config/changeflow)
# state_dir: {{ .StateDir }}

# Port for 'changeflow serve' (default: 8080)
port: {{ .Port }}

# Log level for the server and MCP paths: debug, info, warn, error (default: info)
log:
  level: "{{ .LogLevel }}"

# Anthropic settings for 'changeflow suggest' and POST /api/v1/suggest
anthropic:
  # API key (falls back to ANTHROPIC_API_KEY when empty)
  api_key: ""

  # Claude model used for score suggestions
  model: "{{ .AnthropicModel }}"
`

type configTemplateData struct {
	StateDir       string
	Port           int
	LogLevel       string
	AnthropicModel string
}

func configFilePath() (string, error) {
	dir, err := configDirFunc()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

func configInitRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	// Check if file already exists
	if _, err := os.Stat(cfgPath); err == nil {
		if !configForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cfgPath)
		}
		ui.Warning("Overwriting existing config file")
	}

	// Build template data from current viper values
	data := configTemplateData{
		StateDir:       viper.GetString("state_dir"),
		Port:           viper.GetInt("port"),
		LogLevel:       viper.GetString("log.level"),
		AnthropicModel: viper.GetString("anthropic.model"),
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("template execute error: %w", err)
	}

	if dryRun {
		ui.DryRunMsg("Would create config file: %s", cfgPath)
		fmt.Fprintln(ui.Out)
		fmt.Fprint(ui.Out, buf.String())
		return nil
	}

	// Create config directory
	dir := filepath.Dir(cfgPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(cfgPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	ui.Success("Config file created: %s", cfgPath)
	fmt.Fprintln(ui.Out)
	fmt.Fprint(ui.Out, buf.String())
	return nil
}

// configKeys lists the settings shown by config show, in display order.
var configKeys = []string{
	"state_dir",
	"port",
	"log.level",
	"anthropic.api_key",
	"anthropic.model",
}

// secretKeys are masked by config show.
var secretKeys = map[string]bool{
	"anthropic.api_key": true,
}

// configEntry is one effective setting and where its value came from.
type configEntry struct {
	Key    string `json:"key" yaml:"key"`
	Value  any    `json:"value" yaml:"value"`
	Source string `json:"source" yaml:"source"`
	EnvVar string `json:"env_var" yaml:"env_var"`
}

// envVarFor maps a config key to its environment variable, e.g.
// anthropic.model -> CHANGEFLOW_ANTHROPIC_MODEL.
func envVarFor(key string) string {
	return "CHANGEFLOW_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// effectiveConfig resolves every config key against the file at cfgPath.
func effectiveConfig(cfgPath string) []configEntry {
	inFile := configFileKeys(cfgPath)
	entries := make([]configEntry, 0, len(configKeys))
	for _, key := range configKeys {
		env := envVarFor(key)
		entries = append(entries, configEntry{
			Key:    key,
			Value:  displayValue(key, viper.Get(key)),
			Source: detectSource(key, env, inFile),
			EnvVar: env,
		})
	}
	return entries
}

func configShowRun() error {
	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}
	entries := effectiveConfig(cfgPath)

	if outputFormat == output.FormatJSON || outputFormat == output.FormatYAML {
		return ui.Encode(outputFormat, entries)
	}

	if _, err := os.Stat(cfgPath); err == nil {
		ui.Info("Config file: %s", cfgPath)
	} else {
		ui.Info("Config file: (none)")
	}
	fmt.Fprintln(ui.Out)

	table := ui.Table([]string{"KEY", "VALUE", "SOURCE"})
	for _, e := range entries {
		source := e.Source
		if source == "env" {
			source = "env: " + e.EnvVar
		}
		_ = table.Append([]string{e.Key, fmt.Sprint(e.Value), "(" + source + ")"})
	}
	_ = table.Render()
	return nil
}

// displayValue masks secrets, keeping the last four characters visible.
func displayValue(key string, val any) any {
	if !secretKeys[key] {
		return val
	}
	str := fmt.Sprint(val)
	if str == "" {
		return "(unset)"
	}
	if len(str) <= 4 {
		return "****"
	}
	return "****" + str[len(str)-4:]
}

// configFileKeys returns the dot-notation keys set in the YAML file at path.
// A missing or unparsable file yields an empty set.
func configFileKeys(path string) map[string]bool {
	keys := make(map[string]bool)

	data, err := os.ReadFile(path)
	if err != nil {
		return keys
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return keys
	}

	flattenKeys("", parsed, keys)
	return keys
}

// flattenKeys records the leaf keys of a nested map in dot notation.
func flattenKeys(prefix string, m map[string]any, keys map[string]bool) {
	for k, v := range m {
		if prefix != "" {
			k = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			flattenKeys(k, nested, keys)
			continue
		}
		keys[k] = true
	}
}

// detectSource reports "env", "file", or "default" for a key.
func detectSource(key, envVar string, inFile map[string]bool) string {
	if _, ok := os.LookupEnv(envVar); ok {
		return "env"
	}
	if inFile[key] {
		return "file"
	}
	return "default"
}

func configEditRun() error {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		return fmt.Errorf("$EDITOR is not set; set it to your preferred editor (e.g. export EDITOR=vim)")
	}

	cfgPath, err := configFilePath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfgPath); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s (run 'changeflow config init' first)", cfgPath)
	}

	if dryRun {
		ui.DryRunMsg("Would open %s in %s", cfgPath, editor)
		return nil
	}

	editCmd := exec.Command(editor, cfgPath)
	editCmd.Stdin = os.Stdin
	editCmd.Stdout = os.Stdout
	editCmd.Stderr = os.Stderr
	return editCmd.Run()
}
