// Package config loads the application configuration, menustorm.toml.
//
// Values are layered, later sources overriding earlier ones:
//
//	built-in defaults
//	the configuration file
//	MENUSTORM_* environment variables
//	command-line flags, applied by the hosts through Override
//
// Paths inside the file are relative to the file itself.
//
// Sub-packages:
//
//   - loader: file-system abstraction and TOML/YAML decoding
//   - watcher: fsnotify-backed reload of binding and menu files
package config
