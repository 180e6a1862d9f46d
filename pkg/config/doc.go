// Package config loads the settings of the formbuilder binaries from a YAML
// file, dotenv files and FORMBUILDER_ prefixed environment variables, in
// that order of precedence (later wins).
package config
