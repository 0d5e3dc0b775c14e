package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/emasjid/gateway/internal/chat"
	"github.com/emasjid/gateway/internal/db"
	"github.com/emasjid/gateway/internal/dispatch"
	"github.com/emasjid/gateway/internal/provider"
	"github.com/emasjid/gateway/internal/redis"
	"github.com/emasjid/gateway/internal/reminder"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatalf("db init: %v", err)
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	// redis backs webhook dedupe; the gateway degrades gracefully without it
	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	store := db.NewStore()

	client := provider.NewChatClient(env.GatewayAPIURL, env.GatewayAccountID, env.GatewayAuthToken, env.GatewaySender)
	dispatcher := dispatch.New(client, dispatch.NewLimiter(env.SendMinInterval))
	dispatcher.Start()
	defer dispatcher.Stop()

	interpreter := chat.NewInterpreter(store)

	broadcaster := reminder.NewBroadcaster(store, dispatcher, env.ReminderTemplateID)
	scheduler := reminder.NewScheduler(env.ReminderHour, broadcaster)
	scheduler.Start()
	defer scheduler.Stop()

	// set up gin router
	r := gin.Default()
	RegisterRoutes(r, env, store, interpreter, dispatcher, broadcaster)

	// start
	log.Printf("listening on %s", env.ServerAddress)
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
