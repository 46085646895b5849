package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Separator string
	Format    string
	Mode      string

	MySQLHost      string
	MySQLPort      int
	MySQLUser      string
	MySQLPassword  string
	MySQLDB        string
	ConnectTimeout time.Duration
	QueryTimeout   time.Duration
	SinkChunk      int
}

// Load reads defaults from the environment, after an optional .env file.
// An explicitly empty PARSEFILE_SEPARATOR is kept so the parser can reject it.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional

	sep, ok := os.LookupEnv("PARSEFILE_SEPARATOR")
	if !ok {
		sep = ";"
	}

	return &Config{
		Separator:      sep,
		Format:         getenv("PARSEFILE_FORMAT", "text"),
		Mode:           getenv("PARSEFILE_MODE", "records"),
		MySQLHost:      getenv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:      getenvInt("MYSQL_PORT", 3306),
		MySQLUser:      getenv("MYSQL_USER", "root"),
		MySQLPassword:  getenv("MYSQL_PASSWORD", ""),
		MySQLDB:        getenv("MYSQL_DB", "parsefile"),
		ConnectTimeout: time.Duration(getenvInt("DB_CONNECT_TIMEOUT", 5)) * time.Second,
		QueryTimeout:   time.Duration(getenvInt("DB_QUERY_TIMEOUT", 30)) * time.Second,
		SinkChunk:      getenvInt("SINK_CHUNK", 2000),
	}, nil
}

func getenv(key, def string) string {
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
