// Package config holds generator settings.
//
// Settings are layered: Default, then an optional debugctx.yaml or
// debugctx.toml file, then command-line flags. The missing-context policy has
// no implicit value; Default sets it explicitly and Validate rejects an unset
// policy.
package config
