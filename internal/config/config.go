package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time parses the auto-checkout interval

	"github.com/joho/godotenv" // godotenv loads a local .env file when present
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers, secrets and file paths, ints
// and durations for the values arithmetic is done on.
type Config struct {
	Env               string        // application environment (e.g. "dev", "prod")
	Port              string        // HTTP port to listen on
	JWTSecret         string        // secret used to sign admin JWTs
	AccessTTLMin      int           // access token time-to-live in minutes
	AdminEmail        string        // the single admin's login email
	AdminPasswordHash string        // bcrypt hash of the admin password
	BookingCSV        string        // path to the booking record file
	PaymentCSV        string        // path to the payment record file
	UserCSV           string        // path to the legacy user directory file
	IDPrefix          string        // booking ID prefix, e.g. "N2S"
	CheckoutInterval  time.Duration // auto-checkout sweep interval

	// Optional MySQL user directory.  When UserDBHost is set the MySQL
	// directory is used instead of the user CSV.
	UserDBUser string
	UserDBPass string
	UserDBHost string
	UserDBPort string
	UserDBName string
}

// Load reads configuration values from environment variables and returns a
// Config.  A .env file in the working directory is loaded first when
// present.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	_ = godotenv.Load() // absent .env is fine; the environment wins either way

	return Config{
		Env:               must("APP_ENV"),    // environment (dev/test/prod)
		Port:              must("APP_PORT"),   // port to bind the HTTP server
		JWTSecret:         must("JWT_SECRET"), // secret used for signing JWTs
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		AdminEmail:        must("ADMIN_EMAIL"),
		AdminPasswordHash: must("ADMIN_PASSWORD_HASH"),
		BookingCSV:        getenv("BOOKING_CSV", "data/Booking_Database.csv"),
		PaymentCSV:        getenv("PAYMENT_CSV", "data/Payment_Database.csv"),
		UserCSV:           getenv("USER_CSV", "data/User_Database.csv"),
		IDPrefix:          getenv("BOOKING_ID_PREFIX", "N2S"),
		CheckoutInterval:  parseDur(getenv("AUTO_CHECKOUT_INTERVAL", "1m")),
		UserDBUser:        os.Getenv("USER_DB_USER"),
		UserDBPass:        os.Getenv("USER_DB_PASS"),
		UserDBHost:        os.Getenv("USER_DB_HOST"),
		UserDBPort:        getenv("USER_DB_PORT", "3306"),
		UserDBName:        getenv("USER_DB_NAME", "parking"),
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

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return time.Minute
	}
	return d
}
