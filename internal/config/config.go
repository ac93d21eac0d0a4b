package config

import "os"

// MaxJSONBody caps JSON request bodies, matching the frontend's 10mb limit.
const MaxJSONBody = 10 << 20

type Config struct {
	HTTPAddr        string
	CredentialsFile string
	CredentialsJSON string
	RasaURL         string
	UploadDir       string
	GelfAddr        string
}

func Load() *Config {
	return &Config{
		HTTPAddr:        ":" + getEnv("PORT", "3000"),
		CredentialsFile: os.Getenv("FIREBASE_SERVICE_ACCOUNT_FILE"),
		CredentialsJSON: os.Getenv("FIREBASE_SERVICE_ACCOUNT"),
		RasaURL:         getEnv("RASA_URL", "http://localhost:5005"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		GelfAddr:        os.Getenv("GELF_ADDR"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
