package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appsvc "skinvault/internal/app"
	"skinvault/internal/bootstrap"
	"skinvault/internal/config"
	"skinvault/internal/identity"
	"skinvault/internal/model"
	rabbitmqClient "skinvault/internal/platform/rabbitmq"
	"skinvault/internal/repository"
	"skinvault/internal/transport/http/handler"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	userRepo := repository.NewUserRepository(app.DB)
	collectionRepo := repository.NewCollectionRepository(app.DB)
	skinRepo := repository.NewSkinRepository(app.DB)
	eventRepo := repository.NewEventRepository(app.DB)

	authService := appsvc.NewAuthService(userRepo)

	var publisher appsvc.EventPublisher
	if app.MQConn != nil {
		publisher = rabbitmqClient.NewEventPublisher(app.MQConn, app.Config.RabbitMQ.EventPersistQueue)
	}
	catalogService := appsvc.NewCatalogService(collectionRepo, skinRepo, eventRepo, publisher)

	provider := newIdentityProvider(app, userRepo)
	authHandler := handler.NewAuthHandler(authService, provider)
	collectionHandler := handler.NewCollectionHandler(catalogService)
	skinHandler := handler.NewSkinHandler(catalogService)
	eventHandler := handler.NewEventHandler(catalogService)

	router.POST("/register", authHandler.Register)
	router.POST("/login", authHandler.Login)

	protected := router.Group("/")
	protected.Use(provider.Middleware())
	protected.POST("/logout", authHandler.Logout)
	protected.GET("/logout", authHandler.Logout)

	protected.GET("/colecoes", collectionHandler.List)
	protected.POST("/colecoes", collectionHandler.Add)
	protected.PUT("/colecoes/:id", collectionHandler.Update)
	protected.DELETE("/colecoes/:id", collectionHandler.Delete)

	protected.GET("/skins", skinHandler.List)
	protected.POST("/skins", skinHandler.Add)
	protected.PUT("/skins/:id", skinHandler.Update)
	protected.DELETE("/skins/:id", skinHandler.Delete)

	protected.GET("/events", eventHandler.List)

	return router
}

func newIdentityProvider(app *bootstrap.App, userRepo *repository.UserRepository) identity.Provider {
	authCfg := app.Config.Auth
	if authCfg.Mode == config.AuthModeSession {
		loader := func(_ context.Context, id uint) (*model.User, error) {
			return userRepo.GetByID(id)
		}
		return identity.NewSessionProvider(
			app.Sessions,
			loader,
			time.Duration(authCfg.SessionTTLMinute)*time.Minute,
			authCfg.SessionCookie,
		)
	}
	return identity.NewTokenProvider(
		authCfg.JWTSecret,
		time.Duration(authCfg.JWTExpireMinute)*time.Minute,
	)
}
