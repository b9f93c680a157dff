// Package config provides configuration loading and validation for subsl.
//
// It uses Viper to merge, from lowest to highest precedence, flag defaults,
// a YAML config file, a .env file, SUBSL_-prefixed environment variables,
// and explicitly set command-line flags.
//
// # Usage
//
//	var cfg config.Config
//	err := config.LoadConfig("subsl", &cfg, config.WithFlagSet(flags, aliases))
//
// Environment keys map onto declared keys with dots replaced by underscores,
// e.g. SUBSL_LOGGING_LEVEL sets logging.level and SUBSL_NEEDLE_HEX sets needle_hex.
package config
