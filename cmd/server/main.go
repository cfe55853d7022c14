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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/coursebook/course-booking-api/internal/config"
	"github.com/coursebook/course-booking-api/internal/handlers"
	"github.com/coursebook/course-booking-api/internal/logging"
	authmw "github.com/coursebook/course-booking-api/internal/middleware/auth"
	loggingmw "github.com/coursebook/course-booking-api/internal/middleware/logging"
	"github.com/coursebook/course-booking-api/internal/mykafka"
	"github.com/coursebook/course-booking-api/internal/repo"
	"github.com/coursebook/course-booking-api/internal/token"
	httpserver "github.com/coursebook/course-booking-api/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, db, err := config.InitMongo(initCtx, configuration)
	cancel()
	if err != nil {
		log.Fatalf("mongo init error: %v", err)
	}

	users := repo.NewMongoRepo(db)
	idxCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = users.EnsureIndexes(idxCtx)
	cancel()
	if err != nil {
		log.Fatalf("mongo index error: %v", err)
	}

	prod := mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})

	codec := token.NewCodec([]byte(configuration.JWT_SECRET), configuration.TOKEN_TTL)

	e := echo.New()
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"http://localhost:8000", "http://localhost:3000"},
		AllowCredentials: true,
	}))
	e.Use(loggingmw.RequestLogger(logger))

	deps := httpserver.Deps{
		UserHandler: &handlers.UserHandler{Repo: users, Codec: codec, Events: prod},
		Identity:    authmw.NewIdentityGate(codec),
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if err := client.Disconnect(ctx); err != nil {
		log.Printf("mongo disconnect error: %v", err)
	}

	if err := prod.Close(); err != nil {
		log.Printf("kafka close error: %v", err)
	}

	log.Println("shutdown complete")
}
