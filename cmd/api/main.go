package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"

	"github.com/sai-laundry/laundry-backend/internal/auth"
	"github.com/sai-laundry/laundry-backend/internal/aws"
	"github.com/sai-laundry/laundry-backend/internal/catalog"
	"github.com/sai-laundry/laundry-backend/internal/config"
	"github.com/sai-laundry/laundry-backend/internal/handlers"
	"github.com/sai-laundry/laundry-backend/internal/orders"
	"github.com/sai-laundry/laundry-backend/internal/sequence"
	"github.com/sai-laundry/laundry-backend/internal/users"
)

func setupRouter(cfg handlers.HandlerConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterAuthRoutes(r, cfg)
	handlers.RegisterOrdersRoutes(r, cfg)
	handlers.RegisterCatalogRoutes(r, cfg)
	handlers.RegisterUsersRoutes(r, cfg)
	handlers.RegisterDashboardRoutes(r, cfg)

	return r
}

func main() {
	cfg := config.Load()

	clients, err := aws.NewAWSClients(context.Background())
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	userStore := users.NewStore(clients.DynamoDB, cfg.UsersTable)
	orderStore := orders.NewStore(clients.DynamoDB, cfg.OrdersTable)
	seqStore := sequence.NewStore(clients.DynamoDB, cfg.CountersTable)
	catalogStore := catalog.NewStore(clients.DynamoDB, cfg.CatalogTable)
	hub := orders.NewHub(orderStore)

	var publisher *aws.Publisher
	if cfg.QueueURL != "" {
		publisher = aws.NewPublisher(clients.SQS, cfg.QueueURL)
	}

	tokens := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)

	hcfg := handlers.HandlerConfig{
		Orders:  orders.NewService(orderStore, userStore, seqStore, hub, publisher),
		Users:   userStore,
		Catalog: catalogStore,
		Auth:    auth.NewService(userStore, tokens),
		Tokens:  tokens,
	}

	r := setupRouter(hcfg)

	// RUN_LOCAL=true runs a plain HTTP server for development.
	if cfg.RunLocal {
		log.Printf("running local server on %s", cfg.ListenAddr)
		if err := r.Run(cfg.ListenAddr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
