package learnworlds

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/checkoutjoy/learnworlds-go/oauth2client"
)

type envConfig struct {
	SchoolDomain string `env:"LEARNWORLDS_SCHOOL_DOMAIN,required"`
	ClientID     string `env:"LEARNWORLDS_CLIENT_ID,required"`
	ClientSecret string `env:"LEARNWORLDS_CLIENT_SECRET,required"`
	APIHost      string `env:"LEARNWORLDS_API_HOST"`
}

// CredentialsFromEnv loads school credentials from the environment:
// LEARNWORLDS_SCHOOL_DOMAIN, LEARNWORLDS_CLIENT_ID, LEARNWORLDS_CLIENT_SECRET,
// and optionally LEARNWORLDS_API_HOST.
func CredentialsFromEnv() (oauth2client.Credentials, error) {
	var cfg envConfig
	if err := env.Parse(&cfg); err != nil {
		return oauth2client.Credentials{}, fmt.Errorf("learnworlds: load credentials from env: %w", err)
	}

	return oauth2client.Credentials{
		SchoolDomain: cfg.SchoolDomain,
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		APIHost:      cfg.APIHost,
	}, nil
}
