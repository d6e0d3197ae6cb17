// Package config holds the settings structures of the gateway and loads them
// from YAML files and CGW_ prefixed environment variables.
package config
