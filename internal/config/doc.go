// Package config handles configuration loading for the helpline client.
//
// # Overview
//
// Configuration is loaded from a YAML file with environment variable
// expansion. Missing keys take defaults, so an empty or absent file is a
// working configuration.
//
// # Configuration File
//
// Locations (in order):
//
//  1. The --config flag
//  2. Path from the HELPLINE_CONFIG environment variable
//  3. $XDG_CONFIG_HOME/helpline/client.yaml
//  4. ~/.config/helpline/client.yaml
//
// Only the last two may be missing.
//
// # Environment Variables
//
// Values can reference environment variables with ${VAR_NAME}. These
// variables override the file:
//
//	HELPLINE_API_BASE        api.base_url
//	HELPLINE_ASSISTANT_BASE  assistant.base_url
//	HELPLINE_DATA_DIR        directory of the default storage.path
//
// # Configuration Sections
//
//	api:
//	  base_url: "https://helpdesk.example.com/api"
//	  timeout: "15s"
//
//	assistant:
//	  base_url: ""        # defaults to api.base_url
//	  mode: "direct"      # direct (<base>/chat) or backend (/ai/chat)
//	  timeout: "30s"
//
//	storage:
//	  path: "~/.local/share/helpline/state.db"
//
//	chat:
//	  min_delay: "700ms"
//	  max_delay: "2200ms"
//	  per_char: "18ms"
//
//	logging:
//	  level: "info"     # debug, info, warn, error
//	  format: "text"    # text, json
//	  file: ""          # stderr when empty
//
// # Usage
//
//	cfg, path, err := config.Resolve(flagPath)
//	if err != nil {
//	    return fmt.Errorf("loading %s: %w", path, err)
//	}
package config
