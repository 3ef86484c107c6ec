// Package config loads the sticky server configuration.
//
// The file is sticky.json (or sticky.yaml / sticky.yml) in the working
// directory:
//
//	{
//	  "sticky": {"top": 10, "bottom": 0, "enabled": true},
//	  "server": {"host": "localhost", "port": 3000},
//	  "metrics": {"enabled": true, "path": "/metrics"},
//	  "log": {"level": "info", "format": "text"}
//	}
//
// Watch reloads the file when it changes so live sessions pick up new
// offsets without a restart.
package config
