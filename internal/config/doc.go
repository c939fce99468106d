// Package config loads project descriptions.
//
// A description is read from JSON (comments and trailing commas allowed),
// TOML or YAML into a generic Document. Strings may embed {{ }}
// expressions which are evaluated against the target environment before
// validation:
//
//	"compilerFlags": "-O2 {{ target_os == 'freebsd' ? '-DBSD' : '' }}"
//
// Validated documents are decoded into Project and Artifact values.
package config
