package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB  *sql.DB
	Fee FeeConfig
}

// FeeConfig carries the school-specific billing knobs. DefaultAnnualFee is the
// fallback applied when no fee structure is resolvable for a student's class;
// it is configuration, not a business rule.
type FeeConfig struct {
	SessionStartMonth int
	DefaultAnnualFee  float64
	DueDayOfMonth     int
}

var AppConfig *Config

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid integer for %s, using default %d", key, fallback)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("Invalid number for %s, using default %.2f", key, fallback)
	}
	return fallback
}

func InitDB() {
	// Load .env if present; real environment variables win over file values
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := getEnv("DB_HOST", "localhost")
	port := getEnvInt("DB_PORT", 5432)
	user := getEnv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getEnv("DB_NAME", "sunrise")
	sslmode := getEnv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=60",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}
	log.Printf("Connecting to database %s at %s:%d", dbname, host, port)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Println("Check DB_HOST/DB_PORT/DB_USER/DB_PASSWORD/DB_NAME and that the database exists")
		log.Fatal("Cannot establish database connection")
	}

	AppConfig = &Config{
		DB: db,
		Fee: FeeConfig{
			SessionStartMonth: getEnvInt("SESSION_START_MONTH", 4),
			DefaultAnnualFee:  getEnvFloat("DEFAULT_ANNUAL_FEE", 50000),
			DueDayOfMonth:     getEnvInt("FEE_DUE_DAY", 10),
		},
	}
	log.Println("Database connected successfully")
	log.Printf("Fee config: session starts month %d, default annual fee %.2f, due day %d",
		AppConfig.Fee.SessionStartMonth, AppConfig.Fee.DefaultAnnualFee, AppConfig.Fee.DueDayOfMonth)
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetFeeConfig returns the billing configuration.
func GetFeeConfig() FeeConfig {
	return AppConfig.Fee
}
