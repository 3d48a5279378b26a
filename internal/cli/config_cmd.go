// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/liongatetechnology/authapp/internal/config"
)

const configUsage = "authapp config [show|get KEY|set KEY VALUE|path|keys]"

// ConfigValueOutput is the payload of `config get --json` and `config set --json`.
type ConfigValueOutput struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// RunConfig handles the config subcommands. path is where `set` saves; empty
// means the default TOML path.
func RunConfig(cfg *config.Config, args Args, path string, out io.Writer) error {
	switch args.Subcommand {
	case "", "show":
		if args.JSON {
			return NewJSONResponse("config show", redacted(cfg)).Write(out)
		}
		fmt.Fprintln(out, cfg.String())
		return nil

	case "get":
		if args.ConfigKey == "" {
			return ErrMissingArgument("KEY", "authapp config get KEY")
		}
		value, err := cfg.Get(args.ConfigKey)
		if err != nil {
			return &UsageError{Message: err.Error()}
		}
		if config.IsSecretKey(args.ConfigKey) {
			value = redactValue(value)
		}
		if args.JSON {
			return NewJSONResponse("config get", ConfigValueOutput{Key: args.ConfigKey, Value: value}).Write(out)
		}
		fmt.Fprintln(out, value)
		return nil

	case "set":
		if args.ConfigKey == "" || args.ConfigVal == "" {
			return ErrMissingArgument("KEY and VALUE", "authapp config set KEY VALUE")
		}
		updated := cfg.Clone()
		if err := updated.Set(args.ConfigKey, args.ConfigVal); err != nil {
			return &UsageError{Message: err.Error()}
		}
		if err := updated.Validate(); err != nil {
			return err
		}
		if err := saveConfig(updated, path); err != nil {
			return err
		}
		*cfg = *updated
		if args.JSON {
			value, _ := cfg.Get(args.ConfigKey)
			if config.IsSecretKey(args.ConfigKey) {
				value = redactValue(value)
			}
			return NewJSONResponse("config set", ConfigValueOutput{Key: args.ConfigKey, Value: value}).Write(out)
		}
		fmt.Fprintf(out, "%s %s updated\n", SuccessStyle.Render("[OK]"), args.ConfigKey)
		return nil

	case "path":
		p := path
		if p == "" {
			var err error
			if p, err = config.ConfigPathTOML(); err != nil {
				return err
			}
		}
		if args.JSON {
			return NewJSONResponse("config path", map[string]string{"path": p}).Write(out)
		}
		fmt.Fprintln(out, p)
		return nil

	case "keys":
		keys := config.GetAllKeys()
		if args.JSON {
			return NewJSONResponse("config keys", keys).Write(out)
		}
		fmt.Fprintln(out, strings.Join(keys, "\n"))
		return nil

	default:
		return &UsageError{Message: fmt.Sprintf("unknown config command %q\nUsage: %s", args.Subcommand, configUsage)}
	}
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return config.Save(cfg)
	}
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		return config.SaveJSON(cfg, path)
	}
	return config.SaveTOML(cfg, path)
}

// redacted returns a copy of cfg with secrets masked.
func redacted(cfg *config.Config) *config.Config {
	c := cfg.Clone()
	for _, key := range config.GetAllKeys() {
		if !config.IsSecretKey(key) {
			continue
		}
		if v, err := c.Get(key); err == nil {
			if s, ok := v.(string); ok && s != "" {
				_ = c.Set(key, "[REDACTED]")
			}
		}
	}
	return c
}

func redactValue(v interface{}) interface{} {
	if s, ok := v.(string); ok && s != "" {
		return "[REDACTED]"
	}
	return v
}
