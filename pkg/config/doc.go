// Package config loads typed configuration structs from environment
// variables using github.com/caarlos0/env/v11, with optional .env files read
// by github.com/joho/godotenv.
//
// # Usage
//
//	cfg, err := config.Load[cookie.Config]()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session, err := cookie.NewFromConfig("session", cfg)
//
// Several descriptors can share one struct type under different prefixes:
//
//	admin := config.MustLoad[cookie.Config](config.WithPrefix("ADMIN_"))
//
// # Error Handling
//
// Parse failures wrap ErrParsingConfig, unreadable files wrap
// ErrLoadingEnvFile. Use errors.Is to match them.
package config
