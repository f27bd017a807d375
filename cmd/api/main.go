package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/ligue-cursos/internal/infra/database"
	"github.com/xavierca1/ligue-cursos/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-cursos/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-cursos/internal/infra/integration/whatsapp"
	"github.com/xavierca1/ligue-cursos/internal/infra/mail"
	"github.com/xavierca1/ligue-cursos/internal/infra/queue"
	"github.com/xavierca1/ligue-cursos/internal/infra/worker"
	"github.com/xavierca1/ligue-cursos/internal/usecase"
)

func main() {
	godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.Bootstrap(ctx, db); err != nil {
		log.Fatal(err)
	}

	rabbitMQ, err := queue.NewRabbitMQ(
		envOr("RABBITMQ_USER", "guest"),
		envOr("RABBITMQ_PASS", "guest"),
		envOr("RABBITMQ_HOST", "localhost"),
		envOr("RABBITMQ_PORT", "5672"),
	)
	if err != nil {
		log.Fatal(err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db, envInt("FOLLOWUP_AFTER_HOURS", 24))
	interactionRepo := database.NewInteractionRepository(db)
	templateRepo := database.NewTemplateRepository(db)
	userRepo := database.NewUserRepository(db)

	// 2. Gateways e Adapters
	waClient := whatsapp.NewClient(
		os.Getenv("WHATSAPP_ACCESS_TOKEN"),
		os.Getenv("WHATSAPP_PHONE_ID"),
		os.Getenv("WHATSAPP_VERIFY_TOKEN"),
	)
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), envInt("MAIL_PORT", 587),
		os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
		envOr("MAIL_FROM", "nao-responda@liguecursos.com"),
	)

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET é obrigatório")
	}

	// 3. UseCases
	handleMessageUC := usecase.NewHandleMessageUseCase(leadRepo, interactionRepo, waClient, mailSender)
	followUpUC := usecase.NewFollowUpUseCase(leadRepo, interactionRepo, waClient)
	registerUC := usecase.NewRegisterUserUseCase(userRepo)
	loginUC := usecase.NewLoginUseCase(userRepo, jwtSecret)

	// 4. Consumer (drena a fila de mensagens recebidas)
	consumer := queue.NewConsumer(rabbitMQ.Ch, handleMessageUC)
	go func() {
		if err := consumer.Start(ctx, queue.QueueName); err != nil {
			log.Fatalf("❌ Consumer parou: %v", err)
		}
	}()

	// 5. Worker de follow-up (varredura periódica, independente do consumer)
	interval := time.Duration(envInt("FOLLOWUP_INTERVAL_SECONDS", 60)) * time.Second
	followUpWorker := worker.NewFollowUpWorker(followUpUC, interval)
	go followUpWorker.Start(ctx)

	// 6. Handlers
	authHandler := handlers.NewAuthHandler(registerUC, loginUC)
	userHandler := handlers.NewUserHandler(userRepo)
	leadHandler := handlers.NewLeadHandler(leadRepo, interactionRepo)
	templateHandler := handlers.NewTemplateHandler(templateRepo)
	webhookHandler := handlers.NewWebhookHandler(producer, waClient.VerifyToken())
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 7. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/login", authHandler.HandleLogin)
	r.Post("/leads/capture", leadHandler.HandleCapture)

	r.Get("/webhook/whatsapp", webhookHandler.HandleVerify)
	r.Post("/webhook/whatsapp", webhookHandler.HandleInbound)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate(jwtSecret))

		r.Post("/leads", leadHandler.HandleCreate)
		r.Get("/leads", leadHandler.HandleList)
		r.Get("/leads/{phone}", leadHandler.HandleGet)
		r.Put("/leads/{phone}", leadHandler.HandleUpdate)
		r.Get("/leads/{phone}/interactions", leadHandler.HandleInteractions)
		r.Get("/templates", templateHandler.HandleList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles("admin"))

			r.Post("/auth/register", authHandler.HandleRegister)
			r.Get("/users", userHandler.HandleList)
			r.Delete("/leads/{phone}", leadHandler.HandleDelete)
		})
	})

	port := ":" + envOr("PORT", "8080")
	log.Printf("🔥 Server LigueCursos rodando na porta %s", port)

	server := &http.Server{Addr: port, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
