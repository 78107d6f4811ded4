package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	ModeDemo  = "demo"
	ModeSeed  = "seed"
	ModeServe = "serve"
)

type Config struct {
	MongoURI       string
	DBName         string
	CollectionName string
	Port           string
	RunMode        string
	Debug          bool
}

func LoadConfig() Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getEnv("DB_NAME", "plp_bookstore"),
		CollectionName: getEnv("COLLECTION_NAME", "books"),
		Port:           getEnv("PORT", "8080"),
		RunMode:        getEnv("RUN_MODE", ModeDemo),
		Debug:          os.Getenv("DEBUG") != "",
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
