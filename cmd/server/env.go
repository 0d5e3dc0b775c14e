package main

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Environment struct {
	Environment    string
	ServerAddress  string
	SecretKey      string
	DatabaseURL    string
	MigrationsPath string

	RedisAddress  string
	RedisUsername string
	RedisPassword string

	GatewayAPIURL    string
	GatewayAccountID string
	GatewayAuthToken string
	GatewaySender    string

	SendMinInterval    time.Duration
	ReminderHour       int
	ReminderTemplateID string
}

// LoadEnvironment reads and validates env vars
func LoadEnvironment() Environment {
	env := Environment{
		Environment:    os.Getenv("APP_ENV"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SecretKey:      os.Getenv("JWT_SECRET"),
		ServerAddress:  os.Getenv("SERVER_ADDRESS"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),

		RedisAddress:  os.Getenv("REDIS_ADDRESS"),
		RedisUsername: os.Getenv("REDIS_USERNAME"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		GatewayAPIURL:    os.Getenv("GATEWAY_API_URL"),
		GatewayAccountID: os.Getenv("GATEWAY_ACCOUNT_ID"),
		GatewayAuthToken: os.Getenv("GATEWAY_AUTH_TOKEN"),
		GatewaySender:    os.Getenv("GATEWAY_SENDER"),

		SendMinInterval:    10 * time.Second,
		ReminderHour:       17,
		ReminderTemplateID: os.Getenv("REMINDER_TEMPLATE_ID"),
	}

	if env.ServerAddress == "" {
		env.ServerAddress = ":8080"
	}
	if env.MigrationsPath == "" {
		env.MigrationsPath = "./migrations"
	}
	if raw := os.Getenv("SEND_MIN_INTERVAL"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid SEND_MIN_INTERVAL: %v", err)
		}
		env.SendMinInterval = d
	}
	if raw := os.Getenv("REMINDER_HOUR"); raw != "" {
		h, err := strconv.Atoi(raw)
		if err != nil || h < 0 || h > 23 {
			log.Fatalf("invalid REMINDER_HOUR: %q", raw)
		}
		env.ReminderHour = h
	}

	// Basic validation
	if env.DatabaseURL == "" || env.SecretKey == "" || env.GatewayAPIURL == "" || env.GatewaySender == "" {
		log.Fatal("Missing required environment variables")
	}

	return env
}
