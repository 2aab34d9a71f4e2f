package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config representa a configuração da aplicação
type Config struct {
	Server struct {
		Port int
	}
	DB struct {
		Host     string
		Port     int
		User     string
		Password string
		DBName   string
	}
	JWT struct {
		SecretKey string
		ExpiresIn int // em horas
	}
	SMTP struct {
		Host     string
		Port     int
		Username string
		Password string
		From     string
	}
	Reminder struct {
		IntervalHours int // intervalo da varredura de parcelas vencidas
	}
}

// NewConfig carrega a configuração do ambiente com valores padrão
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.port", 8080)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "postgres")
	v.SetDefault("db.dbname", "crediario_db")
	v.SetDefault("jwt.secretkey", "your-secret-key-here")
	v.SetDefault("jwt.expiresin", 24)
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.username", "your-email@gmail.com")
	v.SetDefault("smtp.password", "your-app-password")
	v.SetDefault("smtp.from", "your-email@gmail.com")
	v.SetDefault("reminder.intervalhours", 24)

	// Arquivo de configuração opcional; o ambiente tem precedência
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("erro ao ler arquivo de configuração: %v", err)
		}
	}

	cfg := &Config{}
	cfg.Server.Port = v.GetInt("server.port")
	cfg.DB.Host = v.GetString("db.host")
	cfg.DB.Port = v.GetInt("db.port")
	cfg.DB.User = v.GetString("db.user")
	cfg.DB.Password = v.GetString("db.password")
	cfg.DB.DBName = v.GetString("db.dbname")
	cfg.JWT.SecretKey = v.GetString("jwt.secretkey")
	cfg.JWT.ExpiresIn = v.GetInt("jwt.expiresin")
	cfg.SMTP.Host = v.GetString("smtp.host")
	cfg.SMTP.Port = v.GetInt("smtp.port")
	cfg.SMTP.Username = v.GetString("smtp.username")
	cfg.SMTP.Password = v.GetString("smtp.password")
	cfg.SMTP.From = v.GetString("smtp.from")
	cfg.Reminder.IntervalHours = v.GetInt("reminder.intervalhours")

	if cfg.Reminder.IntervalHours <= 0 {
		return nil, fmt.Errorf("intervalo de lembretes inválido: %d", cfg.Reminder.IntervalHours)
	}

	return cfg, nil
}
