package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wedding-hall-booking/internal/config"
	"github.com/iliyamo/wedding-hall-booking/internal/database"
	"github.com/iliyamo/wedding-hall-booking/internal/handler"
	"github.com/iliyamo/wedding-hall-booking/internal/queue"
	"github.com/iliyamo/wedding-hall-booking/internal/repository"
	"github.com/iliyamo/wedding-hall-booking/internal/router"
	"github.com/iliyamo/wedding-hall-booking/internal/service"
	"github.com/iliyamo/wedding-hall-booking/internal/session"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	sessionTTL := time.Duration(cfg.SessionTTLDays) * 24 * time.Hour
	rdb := config.NewRedisClient()
	var sessions session.Store
	if rdb != nil {
		sessions = session.NewRedisStore(rdb, sessionTTL)
	} else {
		log.Println("redis unavailable, using in-memory sessions; logins will not survive a restart")
		sessions = session.NewMemoryStore(sessionTTL)
	}

	users := repository.NewUserRepo(db)
	halls := repository.NewHallRepo(db)
	bookings := repository.NewBookingRepo(db)
	favorites := repository.NewFavoriteRepo(db)
	ratings := repository.NewRatingRepo(db)

	authH := handler.NewAuthHandler(cfg, users, sessions)
	hallH := handler.NewHallHandler(halls, cfg.UploadDir)
	bookingH := handler.NewBookingHandler(bookings, halls, service.Publisher{})
	favoriteH := handler.NewFavoriteHandler(favorites, halls)
	ratingH := handler.NewRatingHandler(ratings, bookings, halls)

	go func() {
		if err := queue.StartStatusConsumer(); err != nil {
			log.Printf("status consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	router.RegisterRoutes(e, cfg.UploadDir, sessions, hallH, ratingH)
	router.RegisterAuth(e, authH, sessions, config.LoadRateLimitConfig(), rdb)
	router.RegisterBookingList(e, sessions, bookingH)
	router.RegisterClient(e, sessions, favoriteH, bookingH, ratingH)
	router.RegisterOwner(e, sessions, hallH, bookingH)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
