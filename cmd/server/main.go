package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/luizlenharo/crowdfundingBlockchain/internal/campaign"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/handler"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/middleware"
	"github.com/luizlenharo/crowdfundingBlockchain/internal/stellar"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/config"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/logger"
	"github.com/luizlenharo/crowdfundingBlockchain/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New("crowdfunding-service")

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", map[string]interface{}{"error": err.Error()})
	}

	log.Info("Starting Crowdfunding Service", map[string]interface{}{
		"port":    cfg.Server.Port,
		"horizon": cfg.Stellar.HorizonURL,
		"goal":    cfg.Campaign.Goal.String(),
	})

	ledger, err := stellar.NewClient(cfg.Stellar, log)
	if err != nil {
		log.Fatal("Failed to initialize Stellar client", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Stellar accounts configured", map[string]interface{}{
		"campaign_account": ledger.CampaignAddress(),
		"donor_account":    ledger.DonorAddress(),
	})

	service := campaign.NewService(ledger, cfg.Campaign.Title, cfg.Campaign.Description, cfg.Campaign.Goal, log)

	val := validator.New()
	campaignHandler := handler.NewCampaignHandler(service, log)
	donationHandler := handler.NewDonationHandler(service, val, log)
	debugHandler := handler.NewDebugHandler(service, cfg.Stellar.Network, log)
	healthHandler := handler.NewHealthHandler("crowdfunding-service")

	// Setup router
	r := mux.NewRouter()

	// Middleware
	r.Use(middleware.CORS)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.Recovery)
	r.Use(middleware.CorrelationID)
	r.Use(middleware.NewLoggingMiddleware(log).Log)
	r.Use(middleware.BodyLimit(1 << 20)) // 1MB global cap

	// Rate limiting only when Redis is configured.
	if cfg.Redis.URL != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to connect to Redis", map[string]interface{}{
				"error": err.Error(),
			})
		}
		log.Info("Redis connected, rate limiting enabled", nil)
		r.Use(middleware.NewRateLimiter(redisClient, 60, time.Minute).Limit)
	} else {
		log.Warn("REDIS_URL not set, rate limiting disabled", nil)
	}

	r.HandleFunc("/health", healthHandler.Health).Methods("GET")
	r.HandleFunc("/campaign/info", campaignHandler.GetInfo).Methods("GET")
	r.HandleFunc("/donations", donationHandler.List).Methods("GET")
	r.HandleFunc("/donations", donationHandler.Donate).Methods("POST")
	r.HandleFunc("/donations/top", donationHandler.TopDonors).Methods("GET")
	r.HandleFunc("/debug/memo/{donor_name}/{amount}", debugHandler.Memo).Methods("GET")
	r.HandleFunc("/debug/account", debugHandler.Account).Methods("GET")
	r.HandleFunc("/debug/simulate/{count}", debugHandler.Simulate).Methods("POST")

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		log.Info("Crowdfunding service started", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Server exited", nil)
}
