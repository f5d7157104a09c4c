package config

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Config struct {
	Port        string
	MongoURI    string
	DBName      string
	MongoClient *mongo.Client

	StripeSecretKey string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	ZeptoAPIURL string
	ZeptoAPIKey string
	EmailFrom   string
	EmailToName string

	CORSOrigins []string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		built, err := BuildMongoURI(
			os.Getenv("DB_USER"),
			os.Getenv("DB_PASSWORD"),
			os.Getenv("DB_HOST"),
			os.Getenv("DB_APP_NAME"),
		)
		if err != nil {
			return nil, err
		}
		uri = built
	}

	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		MongoURI: uri,
		DBName:   getEnv("DB_NAME", "petAdoptionDB"),

		StripeSecretKey: os.Getenv("STRIPE_SECRET_KEY"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		ZeptoAPIURL: os.Getenv("ZEPTO_API_URL"),
		ZeptoAPIKey: os.Getenv("ZEPTO_API_KEY"),
		EmailFrom:   os.Getenv("EMAIL_FROM"),
		EmailToName: os.Getenv("EMAIL_TO_NAME"),

		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}

	if cfg.StripeSecretKey == "" {
		return nil, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	return cfg, nil
}

// BuildMongoURI assembles an Atlas SRV connection string from credentials.
func BuildMongoURI(user, password, host, appName string) (string, error) {
	if user == "" || password == "" || host == "" {
		return "", fmt.Errorf("set MONGO_URI or DB_USER, DB_PASSWORD and DB_HOST")
	}

	u := url.URL{
		Scheme: "mongodb+srv",
		User:   url.UserPassword(user, password),
		Host:   host,
		Path:   "/",
	}
	q := url.Values{}
	q.Set("retryWrites", "true")
	q.Set("w", "majority")
	if appName != "" {
		q.Set("appName", appName)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func (c *Config) MailEnabled() bool {
	return c.ZeptoAPIURL != "" && c.ZeptoAPIKey != "" && c.EmailFrom != ""
}

// ConnectMongo opens the shared client, pinned to Stable API v1, and pings it.
func (c *Config) ConnectMongo(ctx context.Context) error {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(c.MongoURI).
		SetServerAPIOptions(serverAPI).
		SetBSONOptions(&options.BSONOptions{DefaultDocumentM: true})

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return fmt.Errorf("mongo ping: %w", err)
	}

	c.MongoClient = client
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
