// Package config provides the scan configuration, its defaults and the
// optional .repoprep YAML file.
//
// A Config is built once per command from NewConfig, the YAML file found by
// FindConfigFile and CLI flags, validated, and then passed explicitly to the
// walker, the rule engine and the report aggregator.
package config
