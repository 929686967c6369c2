package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "caravanas/internal/config"
	router "caravanas/internal/http"
	"caravanas/internal/jobs"
	"caravanas/internal/repositories"
	"caravanas/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	db := intconfig.ConnectDB(env)
	defer intconfig.CloseDB()

	intconfig.EnsureSchema(db)

	// Varredura noturna de reparo de status
	runner := jobs.RepairRunner{
		TripRepo:      repositories.TripRepository{},
		PassengerRepo: repositories.PassengerRepository{},
		Reconciler: services.ReconciliationService{
			PassengerRepo:   repositories.PassengerRepository{},
			PaymentRepo:     repositories.PaymentRepository{},
			TourRepo:        repositories.TourSelectionRepository{},
			InstallmentRepo: repositories.InstallmentRepository{},
			RequestID:       "repair-sweep",
		},
	}
	sched, err := jobs.StartScheduler(env.RepairSchedule, runner)
	if err != nil {
		log.Fatalf("Agendamento de reparo inválido: %v", err)
	}

	// Router (Gin engine)
	r := router.NewRouter(env)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("Servidor rodando em http://localhost%s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Falha ao iniciar o servidor: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Desligando o servidor...")

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Falha no shutdown do servidor: %v", err)
	}

	log.Println("Servidor encerrado com segurança.")
}
