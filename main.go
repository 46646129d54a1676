package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/pflag"

	"hoponhub/internal/cache"
	intconfig "hoponhub/internal/config"
	intdb "hoponhub/internal/db"
	router "hoponhub/internal/http"
	"hoponhub/internal/http/handlers"
	"hoponhub/internal/services"
)

func main() {
	addr := pflag.String("addr", "", "listen address, overrides APP_ADDR")
	envFile := pflag.String("env-file", ".env", "optional dotenv file")
	seed := pflag.Bool("seed", false, "wipe and load sample data before serving")
	pflag.Parse()

	env := intconfig.LoadEnv(*envFile)
	if *addr != "" {
		env.AppAddr = *addr
	}
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db, err := intconfig.ConnectDB(env)
	if err != nil {
		log.Fatalf("Gagal konek ke database: %v", err)
	}
	defer db.Close()

	if err := intdb.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("Gagal menyiapkan schema: %v", err)
	}

	rdb, err := intconfig.ConnectRedis(env.RedisURL)
	if err != nil {
		log.Printf("Redis tidak tersedia, cache pencarian nonaktif: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}
	searchCache := cache.NewSearchCache(rdb)

	tickets := services.NewTicketService(env.TicketSecret)
	seeder := services.SeedService{DB: db, Cache: searchCache}
	if *seed {
		sum, err := seeder.Seed(context.Background())
		if err != nil {
			log.Fatalf("Seed gagal: %v", err)
		}
		log.Printf("Seed selesai: buses=%d routes=%d seats=%d", sum.Buses, sum.Routes, sum.Seats)
	}

	hd := &handlers.Handler{
		DB:       db,
		Search:   services.SearchService{DB: db, Cache: searchCache, StrictDate: env.SearchStrictDate},
		Seats:    services.SeatService{DB: db},
		Bookings: services.BookingService{DB: db},
		Payments: services.PaymentService{DB: db, Tickets: &tickets},
		Docs:     services.DocsService{DB: db},
		Tickets:  tickets,
		Seeder:   seeder,
	}

	r := router.NewRouter(env, hd)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Server berjalan di http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Gagal menjalankan server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Mematikan server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown server gagal: %v", err)
	}

	log.Println("Server berhenti dengan aman.")
}
