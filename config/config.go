package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server    Server
	Database  Database
	Gemini    Gemini
	Auth      Auth
	Interview Interview
	Log       Log
}

type Server struct {
	Port             string
	GinMode          string
	CorsAllowOrigins []string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Gemini struct {
	ApiKey string
	Model  string
}

type Auth struct {
	JwtSecret   string
	JwtIssuer   string
	TokenExpiry time.Duration
}

type Interview struct {
	MaxQuestions   int
	ResumeDir      string
	MaxUploadBytes int64
}

type Log struct {
	Level  string
	Format string
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8000")
	viper.SetDefault("GIN_MODE", "debug")
	viper.SetDefault("CORS_ALLOW_ORIGINS", "*")

	viper.SetDefault("DATABASE_HOST", "localhost")
	viper.SetDefault("DATABASE_PORT", "5432")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_NAME", "mockinterview")
	viper.SetDefault("DATABASE_SSLMODE", "disable")

	viper.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")

	viper.SetDefault("JWT_ISSUER", "mockinterview")
	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60)

	viper.SetDefault("MAX_QUESTIONS", 5)
	viper.SetDefault("RESUME_DIR", "resumes")
	viper.SetDefault("MAX_UPLOAD_BYTES", 10<<20)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.GinMode = viper.GetString("GIN_MODE")
	config.Server.CorsAllowOrigins = viper.GetStringSlice("CORS_ALLOW_ORIGINS")

	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Gemini.ApiKey = viper.GetString("GEMINI_API_KEY")
	config.Gemini.Model = viper.GetString("GEMINI_MODEL")

	config.Auth.JwtSecret = viper.GetString("JWT_SECRET_KEY")
	config.Auth.JwtIssuer = viper.GetString("JWT_ISSUER")
	config.Auth.TokenExpiry = time.Duration(viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")) * time.Minute

	config.Interview.MaxQuestions = viper.GetInt("MAX_QUESTIONS")
	config.Interview.ResumeDir = viper.GetString("RESUME_DIR")
	config.Interview.MaxUploadBytes = viper.GetInt64("MAX_UPLOAD_BYTES")

	config.Log.Level = viper.GetString("LOG_LEVEL")
	config.Log.Format = viper.GetString("LOG_FORMAT")

	if config.Auth.JwtSecret == "" {
		log.Warn().Msg("JWT_SECRET_KEY is not set. The server will refuse to start.")
	}

	log.Info().
		Str("port", config.Server.Port).
		Str("dbHost", config.Database.Host).
		Str("dbName", config.Database.Name).
		Str("geminiModel", config.Gemini.Model).
		Int("maxQuestions", config.Interview.MaxQuestions).
		Msg("Config loaded")
	return &config, nil
}

// DSN builds the postgres connection string for gorm.
func (d Database) DSN() string {
	return "host=" + d.Host +
		" user=" + d.User +
		" password=" + d.Password +
		" dbname=" + d.Name +
		" port=" + d.Port +
		" sslmode=" + d.SSLMode
}
