package api

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/medicore-labs/hms-server/logger"
	"github.com/medicore-labs/hms-server/service/appointment"
	"github.com/medicore-labs/hms-server/service/dashboard"
	"github.com/medicore-labs/hms-server/service/doctor"
	"github.com/medicore-labs/hms-server/service/education"
	"github.com/medicore-labs/hms-server/service/fees"
	"github.com/medicore-labs/hms-server/service/health"
	"github.com/medicore-labs/hms-server/service/inventory"
	"github.com/medicore-labs/hms-server/service/messages"
	"github.com/medicore-labs/hms-server/service/patient"
	"github.com/medicore-labs/hms-server/service/session"
	"github.com/medicore-labs/hms-server/service/store"
	"github.com/medicore-labs/hms-server/service/user"
	"github.com/medicore-labs/hms-server/service/ws"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sessionTTL = 24 * time.Hour

type APIServer struct {
	address     string
	db          *gorm.DB
	redisClient *redis.Client
	stores      store.Stores
	httpServer  *http.Server
}

func NewAPIServer(address string, db *gorm.DB, redisClient *redis.Client, stores store.Stores) *APIServer {
	return &APIServer{
		address:     address,
		db:          db,
		redisClient: redisClient,
		stores:      stores,
	}
}

func (s *APIServer) Run() error {
	router := mux.NewRouter()
	router.Use(metricsMiddleware)
	subrouter := router.PathPrefix("/api/v1").Subrouter()

	sessions := session.NewStore(s.redisClient, sessionTTL)
	hub := ws.NewHub(s.stores.Messages)

	patient.NewHandler(s.stores.Patients).RegisterRoutes(subrouter)
	doctor.NewHandler(s.stores.Doctors).RegisterRoutes(subrouter)
	appointment.NewHandler(s.stores.Appointments, s.stores.Patients, s.stores.Doctors).RegisterRoutes(subrouter)
	inventory.NewHandler(s.stores.Products).RegisterRoutes(subrouter)
	education.NewHandler(s.stores.Education, s.stores.Patients).RegisterRoutes(subrouter)
	fees.NewHandler(s.stores.Fees, s.stores.Patients).RegisterRoutes(subrouter)
	dashboard.NewHandler(s.stores.Patients, s.stores.Doctors, s.stores.Appointments, s.stores.Products).RegisterRoutes(subrouter)
	user.NewHandler(s.stores.Users, sessions).RegisterRoutes(subrouter)
	messages.NewHandler(s.stores.Messages, hub).RegisterRoutes(subrouter)

	ws.NewHandler(hub).RegisterRoutes(router)
	health.NewHandler(s.db, s.redisClient).RegisterRoutes(router)
	router.Handle("/metrics", promhttp.Handler())

	cors := handlers.CORS(
		handlers.AllowedOrigins(allowedOrigins()),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	s.httpServer = &http.Server{
		Addr:              s.address,
		Handler:           cors(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Log.Info("server running", zap.String("address", s.address))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests before the process exits.
func (s *APIServer) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func allowedOrigins() []string {
	origins := os.Getenv("CORS_ORIGINS")
	if origins == "" {
		return []string{"*"}
	}
	parts := strings.Split(origins, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
