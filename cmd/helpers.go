package cmd

import (
	"fmt"

	"gauth/internal/config"
	"gauth/pkg/gauth"
	"gauth/pkg/logging"
)

// loadConfig resolves the config directory and loads the service
// registration, failing early when it is incomplete.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultConfigPath()
		if err != nil {
			return config.Config{}, err
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("%w (run with --config or edit %s/config.yaml)", err, path)
	}

	return cfg, nil
}

// newClient builds the SDK client from the loaded configuration.
func newClient(cfg config.Config) (*gauth.Client, error) {
	return gauth.NewClient(gauth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURI:  cfg.RedirectURI,
		Logger:       logging.Logger(),
	})
}

// printTokenPair writes the token pair to stdout, one token per line, so
// the output stays easy to consume from scripts.
func printTokenPair(pair gauth.TokenPair) {
	fmt.Printf("accessToken:  %s\n", pair.AccessToken)
	fmt.Printf("refreshToken: %s\n", pair.RefreshToken)
}
