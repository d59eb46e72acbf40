// Package config provides configuration management for the vibery CLI.
//
// Configuration is read with Viper from config.yaml in the current directory
// or in ~/.config/vibery/, and from VIBERY_* environment variables:
//
//	version: 1
//	kits_dir: ~/.local/share/vibery/stacks
//	project_root: ""   # empty means the current directory
//
// Command-line flags (--kits-dir, --project) take precedence over both.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return errors.NewConfigError(err)
//	}
package config
