package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ZhatkinVyacheslav/foodgram-st/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// App holds the settings loaded at startup. Handlers read the media root
// from here the same way they reach the database through DB.
var App Settings

// Settings holds the env-driven values the server needs besides the
// database connection.
type Settings struct {
	HTTPPort           string
	JWTSecret          string
	AllowedHosts       []string // empty slice allows any Host header
	CSRFTrustedOrigins []string // CORS origins for browser clients
	MediaRoot          string
}

// LoadSettings reads the process environment, consulting .env when present.
func LoadSettings() (Settings, error) {
	// .env is optional: in compose the variables arrive via the environment.
	_ = godotenv.Load()

	s := Settings{
		HTTPPort:           getEnv("HTTP_PORT", "8000"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		AllowedHosts:       splitList(os.Getenv("ALLOWED_HOSTS")),
		CSRFTrustedOrigins: splitList(os.Getenv("CSRF_TRUSTED_ORIGINS")),
		MediaRoot:          getEnv("MEDIA_ROOT", "media"),
	}
	if s.JWTSecret == "" {
		return Settings{}, fmt.Errorf("JWT_SECRET is required")
	}
	App = s
	return s, nil
}

// InitDB connects to Postgres and applies the schema. Auto-migration is the
// migrate step of the deployment flow.
func InitDB() {
	_ = godotenv.Load()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		getEnv("DB_HOST", "localhost"),
		os.Getenv("POSTGRES_USER"),
		os.Getenv("POSTGRES_PASSWORD"),
		os.Getenv("POSTGRES_DB"),
		getEnv("DB_PORT", "5432"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate applies the schema to the given connection. Split out so tests
// can run it against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.Favorite{},
		&models.ShoppingList{},
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
