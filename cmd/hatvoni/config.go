package main

import (
	"fmt"
	"strings"

	"github.com/hatvoni/hatvoni/internal/config"
	"github.com/hatvoni/hatvoni/internal/team"
	"github.com/spf13/cobra"
)

// ConfigResponse is the JSON response for config with no arguments.
type ConfigResponse struct {
	Path        string `json:"path"`
	DataDir     string `json:"data_dir"`
	DefaultRole string `json:"default_role"`
}

// UpdateResponse is the JSON response for setting a config value.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config [key] [value]",
		Short: "Get or set configuration values",
		Long: `Get or set values in the global config file
($XDG_CONFIG_HOME/hatvoni/config.yml).

Usage:
  hatvoni config                       # Show all config
  hatvoni config data-dir              # Get specific value
  hatvoni config data-dir ~/hatvoni    # Set value
  hatvoni config default-role tester   # Role for new members

Keys:
  data-dir      Directory holding projects.json, tasks.json and team.json
  default-role  Role given to new team members when --role is omitted`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadGlobalConfig()
			if err != nil {
				return withExit(ExitConfigError, err)
			}

			if len(args) == 0 {
				if a.jsonOutput {
					a.printJSON(ConfigResponse{
						Path:        config.GlobalConfigPath(),
						DataDir:     cfg.DataDir,
						DefaultRole: cfg.DefaultRole,
					})
				} else {
					a.printf("data-dir:     %s\n", cfg.DataDir)
					a.printf("default-role: %s\n", cfg.DefaultRole)
				}
				return nil
			}

			key := normalizeKey(args[0])

			if len(args) == 1 {
				var value string
				switch key {
				case "data-dir":
					value = cfg.DataDir
				case "default-role":
					value = cfg.DefaultRole
				default:
					return withExit(ExitError, fmt.Errorf("unknown configuration key: %s", args[0]))
				}
				if a.jsonOutput {
					a.printJSON(map[string]string{strings.ReplaceAll(key, "-", "_"): value})
				} else {
					a.printf("%s\n", value)
				}
				return nil
			}

			value := args[1]
			updated := *cfg
			switch key {
			case "data-dir":
				updated.DataDir = config.ExpandPath(value)
			case "default-role":
				if !team.Role(value).Known() {
					a.warnf("unrecognized role %q (known: %s)", value, joinTags(team.KnownRoles))
				}
				updated.DefaultRole = value
			default:
				return withExit(ExitError, fmt.Errorf("unknown configuration key: %s", args[0]))
			}

			if err := config.SaveGlobalConfig(&updated); err != nil {
				return withExit(ExitConfigError, fmt.Errorf("saving config: %w", err))
			}

			if a.jsonOutput {
				a.printJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
			} else {
				a.printf("Updated %s to %s\n", key, value)
			}
			return nil
		},
	}
}

// normalizeKey converts key formats (data-dir, data_dir, Data-Dir) to one form.
func normalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.ReplaceAll(key, "_", "-")
}
