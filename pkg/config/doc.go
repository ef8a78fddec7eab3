// Package config loads configuration from environment variables.
//
// Load parses the environment into any struct annotated with env tags
// (github.com/caarlos0/env/v11), after reading the default .env file with
// github.com/joho/godotenv. Each struct type is parsed once per process and
// cached; ForceReload and ResetCache drop cached copies, mostly for tests.
//
// Config is the configuration of the entityvalidate command. It nests
// fieldspec.PostgresConfig and file.S3Config, whose EV_PG_* and EV_S3_*
// variables are parsed together with the top-level EV_* ones:
//
//	var cfg config.Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
