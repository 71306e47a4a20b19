package config

import (
	"strconv"
	"strings"
)

// ApplyKVOverrides applies free-form -c key=value overrides.
func ApplyKVOverrides(cfg Config, overrides []string) Config {
	if len(overrides) == 0 {
		return cfg
	}
	for _, raw := range overrides {
		parts := strings.SplitN(raw, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.TrimSpace(parts[1])
		switch key {
		case "runtime.auto_instantiate":
			if b, err := strconv.ParseBool(val); err == nil {
				cfg.Runtime.AutoInstantiate = b
			}
		case "display.collapsed_height":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cfg.Display.CollapsedHeight = n
			}
		case "display.theme":
			cfg.Display.Theme = val
		case "log.path":
			cfg.Log.Path = val
		}
	}
	return cfg
}
