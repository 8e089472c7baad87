package kraken

import "os"

// Environment variables the CLI reads credentials from.
const (
	EnvAPIKey    = "KRAKEN_API_KEY"
	EnvAPISecret = "KRAKEN_API_SECRET"
	EnvOTP       = "KRAKEN_OTP"
)

// Credentials holds the key material for private endpoints.
// Secret is the base64-encoded API secret as issued by the exchange.
// OTP is the optional one-time password for accounts with two-factor
// auth enabled on the API key.
type Credentials struct {
	Key    string
	Secret string
	OTP    string
}

// Complete reports whether the credentials are usable for signing.
func (c Credentials) Complete() bool {
	return c.Key != "" && c.Secret != ""
}

// CredentialsFromEnv reads credentials from the environment.
// The second return value is false when no usable credentials are set;
// that is not an error at this layer — only authenticated scenarios
// need them.
func CredentialsFromEnv() (Credentials, bool) {
	c := Credentials{
		Key:    os.Getenv(EnvAPIKey),
		Secret: os.Getenv(EnvAPISecret),
		OTP:    os.Getenv(EnvOTP),
	}
	return c, c.Complete()
}
