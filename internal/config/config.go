package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Database settings are required; everything else
// falls back to a default so a developer can run the service against a local
// MySQL with no further setup.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	BcryptCost     int    // bcrypt cost for password hashing
	WeatherAPIKey  string // weatherapi.com API key
	TomorrowAPIKey string // tomorrow.io API key
	AMQPURL        string // RabbitMQ connection URL; empty disables event publishing
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
//
// JWT_SECRET falls back to an insecure placeholder so the service starts in
// development without one.  Do not rely on the default outside local testing.
func Load() Config {
	return Config{
		Env:            getenvDefault("APP_ENV", "dev"),
		Port:           getenvDefault("APP_PORT", "8080"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      getenvDefault("JWT_SECRET", "your-secret-key"),
		AccessTTLMin:   getenvInt("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:     getenvInt("BCRYPT_COST", 10),
		WeatherAPIKey:  os.Getenv("WEATHERAPI_KEY"),
		TomorrowAPIKey: os.Getenv("TOMORROW_API_KEY"),
		AMQPURL:        os.Getenv("RABBITMQ_URL"),
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
