package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"uk.co.dudmesh.waggle/internal/boot"
	"uk.co.dudmesh.waggle/internal/handlers"
	"uk.co.dudmesh.waggle/internal/service/post"
	"uk.co.dudmesh.waggle/internal/service/relation"
	"uk.co.dudmesh.waggle/internal/service/token"
	"uk.co.dudmesh.waggle/internal/service/user"
	"uk.co.dudmesh.waggle/internal/store"
)

type config struct {
	*boot.Config
	store     *store.Store
	tokens    handlers.TokenService
	users     handlers.UserService
	posts     handlers.PostService
	relations handlers.RelationService
}

func newConfig(bootConfig *boot.Config) *config {
	db, err := store.New(bootConfig)
	if err != nil {
		log.Fatalf("opening store: %+v", err)
	}

	tokens, err := token.New(bootConfig.Auth.Secret, bootConfig.Auth.TokenTTL)
	if err != nil {
		log.Fatalf("configuring token service: %+v", err)
	}

	return &config{
		Config:    bootConfig,
		store:     db,
		tokens:    tokens,
		users:     user.New(db),
		posts:     post.New(db),
		relations: relation.New(db),
	}
}

func main() {
	bootConfig, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	config := newConfig(bootConfig)
	defer config.store.Close()

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("waggle"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     strings.Split(config.Server.Origins, ","),
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	authenticated := handlers.Authenticate(config.tokens)
	maybeAuthenticated := handlers.MaybeAuthenticate(config.tokens)

	server.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]interface{}{
			"status":    "OK",
			"timestamp": time.Now().UTC(),
		})
	})

	server.POST("/user/register", handlers.Register(config, config.users, config.tokens))
	server.POST("/user/login", handlers.Login(config, config.users, config.tokens))
	server.POST("/user/logout", handlers.Logout(config))
	server.GET("/user/:username", handlers.GetProfile(config.users), maybeAuthenticated)

	server.POST("/post/create", handlers.CreatePost(config.posts), authenticated)
	server.GET("/post", handlers.ListPosts(config.posts), maybeAuthenticated)
	server.GET("/post/:id", handlers.GetPost(config.posts), maybeAuthenticated)
	server.POST("/post/:id/like", handlers.ToggleLike(config.relations), authenticated)

	server.POST("/comment/create", handlers.CreateComment(config.posts), authenticated)
	server.GET("/comment/post/:postId", handlers.ListCommentsForPost(config.posts))

	server.POST("/follow/toggle", handlers.ToggleFollow(config.relations), authenticated)
	server.GET("/follow/followers", handlers.GetFollowers(config.store), authenticated)
	server.GET("/follow/following", handlers.GetFollowing(config.store), authenticated)

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":" + config.Server.MetricsPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
