package main

import (
	"context"
	"ibarangay-be/announcement"
	"ibarangay-be/blotter"
	"ibarangay-be/config"
	"ibarangay-be/cron"
	"ibarangay-be/external"
	"ibarangay-be/message"
	"ibarangay-be/migrate"
	"ibarangay-be/notify"
	"ibarangay-be/request"
	"ibarangay-be/role"
	"ibarangay-be/seeder"
	"ibarangay-be/user"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables.")
	}

	args := os.Args
	db := config.InitDB()
	defer db.Close()

	if len(args) > 1 && args[1] == "--migrate" {
		migrate.RunMigrations(db)
		return
	}

	if len(args) > 1 && args[1] == "--seed" {
		seeder.RunSeeder(db)
		return
	}

	redisClient := config.InitRedis()
	defer redisClient.Close()

	wsClient := config.NewWebSocketClient(os.Getenv("WS_HUB_URL"), os.Getenv("WS_HUB_TOKEN"))
	go wsClient.AutoReconnect()

	smsClient := external.NewClient(config.LoadSMSGatewayConfig())
	dispatcher := notify.NewDispatcher(smsClient, 3)

	events := notify.NewService(notify.NewRepository(db), wsClient, dispatcher)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("ALLOWED_ORIGINS")},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	userRepo := user.RegisterRoutes(r, db, redisClient, events)
	role.RegisterRoutes(r, db)
	notify.RegisterRoutes(r, events)
	requestService := request.RegisterRoutes(r, db, events)
	blotterService := blotter.RegisterRoutes(r, db, events)
	announcement.RegisterRoutes(r, db, redisClient, events, userRepo)
	message.RegisterRoutes(r, db, events)

	scheduler := cron.NewScheduler()
	lifecycle := cron.NewLifecycleScheduler(requestService, blotterService)
	if err := lifecycle.RegisterJobs(scheduler); err != nil {
		log.Fatalf("Failed to register scheduler jobs: %v", err)
	}
	scheduler.Start()

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8000"
	}

	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: r,
	}

	go func() {
		log.Printf("Server running at http://0.0.0.0:%s\n", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	scheduler.Stop()
	dispatcher.Shutdown()
	wsClient.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited successfully")
}
