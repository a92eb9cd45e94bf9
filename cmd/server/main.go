package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"inmovisitas/internal/api"
	"inmovisitas/internal/auth"
	"inmovisitas/internal/repository"
	"inmovisitas/internal/schedule"
	"inmovisitas/internal/service"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	policy := schedule.Policy{
		MinOffsetDays: envInt("SLOT_MIN_OFFSET_DAYS", 1),
		MaxOffsetDays: envInt("SLOT_MAX_OFFSET_DAYS", 30),
	}
	validator := schedule.NewValidator(policy, schedule.SystemClock())

	slotRepo := repository.NewSlotRepository(db)
	visitRepo := repository.NewVisitRepository(db)
	jobRepo := repository.NewJobRepository(db)
	authRepo := repository.NewAgentAuthRepository(db)

	sender := service.NewSenderService()
	slotSvc := service.NewSlotService(slotRepo, validator)
	visitSvc := service.NewVisitService(slotRepo, visitRepo, sender)
	jobSvc := service.NewJobService(jobRepo, sender)
	authSvc := service.NewAgentAuthService(authRepo)

	visitorHandler := api.NewVisitorHandler(slotSvc, visitSvc)
	agentHandler := api.NewAgentHandler(slotSvc, visitSvc, validator)
	authHandler := api.NewAgentAuthHandler(authSvc)

	c := cron.New()
	c.AddFunc("@every 10m", func() {
		if err := jobSvc.ExpirePastSlots(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("0 8 * * *", func() {
		if err := jobSvc.SendVisitReminders(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/auth/login", authHandler.Login).Methods("POST")
	r.HandleFunc("/api/listings/{id}/slots", visitorHandler.ListListingSlots).Methods("GET")
	r.HandleFunc("/api/visits", visitorHandler.ConfirmVisit).Methods("POST")
	r.HandleFunc("/api/visits/{code}", visitorHandler.GetVisit).Methods("GET")

	// Agent endpoints (protected)
	agent := r.PathPrefix("/api/agent").Subrouter()
	agent.Use(auth.AgentAuthMiddleware)
	agent.HandleFunc("/slots", agentHandler.CreateSlot).Methods("POST")
	agent.HandleFunc("/visits", agentHandler.ListAgentVisits).Methods("GET")
	agent.HandleFunc("/register", authHandler.RegisterAgent).Methods("POST")

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}

func envInt(key string, fallback int) int {
	if raw := os.Getenv(key); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			return v
		}
	}
	return fallback
}
