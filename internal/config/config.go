package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr            string
	DBDSN               string
	JWTIssuer           string
	JWTSecret           string
	JWTTTL              time.Duration
	WebSocketOrigin     string
	UserDefaultPassword string
	MigrationsDir       string
	KafkaBrokers        []string
	KafkaTopic          string
	KafkaGroupID        string
	RedisAddr           string
	QuoteCacheTTL       time.Duration
}

func Load() (Config, error) {
	var c Config
	var missing []string
	c.HTTPAddr = os.Getenv("HTTP_ADDR")
	if c.HTTPAddr == "" {
		missing = append(missing, "HTTP_ADDR")
	}
	c.DBDSN = os.Getenv("DB_DSN")
	if c.DBDSN == "" {
		missing = append(missing, "DB_DSN")
	}
	c.JWTIssuer = os.Getenv("JWT_ISSUER")
	if c.JWTIssuer == "" {
		missing = append(missing, "JWT_ISSUER")
	}
	c.JWTSecret = os.Getenv("JWT_SECRET")
	if c.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	jwtTTL := os.Getenv("JWT_TTL")
	if jwtTTL == "" {
		missing = append(missing, "JWT_TTL")
	} else {
		d, err := time.ParseDuration(jwtTTL)
		if err != nil {
			return c, err
		}
		c.JWTTTL = d
	}
	c.WebSocketOrigin = os.Getenv("WS_ORIGIN")
	if c.WebSocketOrigin == "" {
		c.WebSocketOrigin = "*"
	}
	c.UserDefaultPassword = os.Getenv("USER_DEFAULT_PASSWORD")
	if c.UserDefaultPassword == "" {
		c.UserDefaultPassword = "Password123!"
	}
	c.MigrationsDir = os.Getenv("MIGRATIONS_DIR")
	if c.MigrationsDir == "" {
		c.MigrationsDir = "db/migrations"
	}
	brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS"))
	if brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.KafkaBrokers = append(c.KafkaBrokers, b)
			}
		}
	}
	c.KafkaTopic = os.Getenv("KAFKA_TOPIC")
	if c.KafkaTopic == "" {
		c.KafkaTopic = "marketdata-observations"
	}
	c.KafkaGroupID = os.Getenv("KAFKA_GROUP_ID")
	if c.KafkaGroupID == "" {
		c.KafkaGroupID = "lv-broker"
	}
	c.RedisAddr = os.Getenv("REDIS_ADDR")
	quoteTTL := os.Getenv("QUOTE_CACHE_TTL")
	if quoteTTL == "" {
		c.QuoteCacheTTL = 5 * time.Second
	} else {
		d, err := time.ParseDuration(quoteTTL)
		if err != nil {
			return c, err
		}
		c.QuoteCacheTTL = d
	}
	if len(missing) > 0 {
		return c, errors.New("missing required env: " + strings.Join(missing, ","))
	}
	return c, nil
}
