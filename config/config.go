package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server       Server
	Database     Database
	Session      Session
	GeminiApiKey string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// Session holds the test assembly knobs.
type Session struct {
	QuestionsPerSubject int
	MaxSubjects         int
	MinutesPerQuestion  int
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("QUESTIONS_PER_SUBJECT", 10)
	viper.SetDefault("MAX_SUBJECTS", 6)
	viper.SetDefault("MINUTES_PER_QUESTION", 1)

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Session.QuestionsPerSubject = viper.GetInt("QUESTIONS_PER_SUBJECT")
	config.Session.MaxSubjects = viper.GetInt("MAX_SUBJECTS")
	config.Session.MinutesPerQuestion = viper.GetInt("MINUTES_PER_QUESTION")

	config.GeminiApiKey = viper.GetString("GEMINI_API_KEY")

	log.Info().Str("port", config.Server.Port).Msg("Config loaded")
	return &config, nil
}
