package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	config "github.com/phillip/pet-adoption-go/config"
	middleware "github.com/phillip/pet-adoption-go/middleware"
	routes "github.com/phillip/pet-adoption-go/routes"
	services "github.com/phillip/pet-adoption-go/services"
	store "github.com/phillip/pet-adoption-go/store"
	utils "github.com/phillip/pet-adoption-go/utils"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	if err := cfg.ConnectMongo(context.Background()); err != nil {
		log.Fatalf("database error: %v", err)
	}
	log.Printf("Connected to MongoDB database %s", cfg.DBName)

	db := store.NewMongoDatabase(cfg.MongoClient.Database(cfg.DBName))

	var mailer services.Mailer
	if cfg.MailEnabled() {
		mailer = utils.NewZeptoMailer(cfg.ZeptoAPIURL, cfg.ZeptoAPIKey, cfg.EmailFrom, cfg.EmailToName)
	}

	adoptions := services.NewAdoptionService(db, mailer)
	svcs := routes.Services{
		Pets:      services.NewPetService(db),
		Campaigns: services.NewCampaignService(db),
		Donations: services.NewDonationService(db),
		Adoptions: adoptions,
		Payments:  services.NewPaymentService(utils.NewStripeGateway(cfg.StripeSecretKey)),
	}
	if cfg.CloudinaryEnabled() {
		images, err := utils.NewCloudinaryStore(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, "pets")
		if err != nil {
			log.Fatalf("cloudinary error: %v", err)
		}
		svcs.Images = images
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigins), middleware.RequestID())
	routes.SetupRoutes(r, svcs)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server listening at http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := adoptions.Wait(ctx); err != nil {
		log.Printf("pending adoption emails: %v", err)
	}
	if err := cfg.MongoClient.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect: %v", err)
	}
}
