package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Chat ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	StreamLogFilePath  string
	CorsAllowedOrigins string
}

type ChatConfig struct {
	StreamChunkSize int
	StreamDelayMs   int
	AnswerDelayMs   int
	ActivityTopic   string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "8000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			StreamLogFilePath:  getEnv("STREAM_LOG_FILE_PATH", "logs/stream.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://arc-pdf.onrender.com"),
		},
		Chat: ChatConfig{
			StreamChunkSize: getEnvAsInt("CHAT_STREAM_CHUNK_SIZE", 3),
			StreamDelayMs:   getEnvAsInt("CHAT_STREAM_DELAY_MS", 100),
			AnswerDelayMs:   getEnvAsInt("QA_ANSWER_DELAY_MS", 500),
			ActivityTopic:   getEnv("CHAT_ACTIVITY_TOPIC", "CHAT_ACTIVITY"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
