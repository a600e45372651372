// Package config holds the run configuration: defaults, TOML file loading,
// validation and the resolution of command line arguments and interactive
// answers into a Config the batch processor can run with.
package config
