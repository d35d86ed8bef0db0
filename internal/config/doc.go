// Package config manages actionpin configuration.
//
// It handles:
//   - The optional repository configuration file (.actionpin.yaml)
//   - Environment overrides and dotenv files
//   - The GitHub credential precondition
package config
