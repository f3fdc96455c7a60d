// Package config loads editor settings.
//
// Settings are read from a TOML or YAML file, chosen by extension, and
// applied over the defaults. Keys the file does not mention keep their
// default values:
//
//	[editor]
//	theme = "light"
//	default_language = ".py"
//	tab_width = 4
//
//	[run]
//	python = "python3"
//	terminals = ["gnome-terminal", "xterm", "konsole"]
//
//	[log]
//	level = "info"
//	file = "/tmp/turtle.log"
//
// A Watcher reloads the file when it changes on disk.
package config
