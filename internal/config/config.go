package config

import "os"

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	ServerPort string
	GenAPIURL  string
	GenAPIKey  string
	UploadDir  string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "quizphere"),
		JWTSecret:  getEnv("JWT_SECRET", "super-secret-key-change-me"),
		ServerPort: getEnv("SERVER_PORT", "8001"),
		GenAPIURL:  getEnv("GEN_API_URL", ""),
		GenAPIKey:  getEnv("GEN_API_KEY", ""),
		UploadDir:  getEnv("UPLOAD_DIR", "/uploads"),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
