package config

import (
	"os"
	"strconv"
	"time"
)

// parseEnv overlays environment variables onto config. The variable names
// match the .env file the service was historically deployed with.
//
//	PORT                       HTTP port; becomes ":<PORT>"
//	DATABASE_DSN               PostgreSQL DSN
//	ACCESS_TOKEN_KEY           access token secret
//	REFRESH_TOKEN_KEY          refresh token secret
//	ACCESS_TOKEN_EXPIRES_IN    access token lifetime, Go duration ("15m")
//	REFRESH_TOKEN_EXPIRES_IN   refresh token lifetime, Go duration ("168h")
//	PAGINATION_DEFAULT_SIZE    default page size
//	PAGINATION_DEFAULT_PAGE    default page number
//
// Unparseable numeric or duration values are ignored.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		config.EndpointAddrHTTP = ":" + v
	}
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok && v != "" {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("ACCESS_TOKEN_KEY"); ok && v != "" {
		config.AccessTokenSecret = v
	}
	if v, ok := os.LookupEnv("REFRESH_TOKEN_KEY"); ok && v != "" {
		config.RefreshTokenSecret = v
	}
	envDuration("ACCESS_TOKEN_EXPIRES_IN", &config.AccessTokenValidityDuration)
	envDuration("REFRESH_TOKEN_EXPIRES_IN", &config.RefreshTokenValidityDuration)
	envInt("PAGINATION_DEFAULT_SIZE", &config.PaginationDefaultSize)
	envInt("PAGINATION_DEFAULT_PAGE", &config.PaginationDefaultPage)
}

func envDuration(key string, dst *time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return
	}
	*dst = d
}

func envInt(key string, dst *int) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	*dst = n
}
