package common

import "github.com/urfave/cli/v2"

// BoolPair reads a --name / --no-name flag pair. An explicit --no-name
// wins, then an explicit --name, then the configured default.
func BoolPair(c *cli.Context, name string, fallback bool) bool {
	if c.Bool("no-" + name) {
		return false
	}
	if c.Bool(name) {
		return true
	}
	if c.IsSet(name) || c.IsSet("no-"+name) {
		return c.Bool(name)
	}
	return fallback
}
