package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/medicore-labs/hms-server/cmd/api"
	"github.com/medicore-labs/hms-server/cmd/models"
	"github.com/medicore-labs/hms-server/db"
	"github.com/medicore-labs/hms-server/logger"
	"github.com/medicore-labs/hms-server/service/store"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using process environment")
	}
	logger.Init()
	defer logger.Sync()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			runMigrations()
			return
		case "seed":
			runSeed()
			return
		case "clear-db":
			runDatabaseClear()
			return
		default:
			logger.SLog.Fatalf("Unknown command: %s", os.Args[1])
		}
	}

	startServer()
}

func openDB() *gorm.DB {
	DB, err := db.NewPSQLStorage()
	if err != nil {
		logger.Log.Fatal("database initialization error", zap.Error(err))
	}
	return DB
}

func closeDB(DB *gorm.DB) {
	sqlDB, _ := DB.DB()
	sqlDB.Close()
	logger.Log.Info("database connection closed")
}

func runMigrations() {
	DB := openDB()
	defer closeDB(DB)
	logger.Log.Info("connected to the database for migrations")

	if err := performMigrations(DB); err != nil {
		logger.Log.Fatal("migration error", zap.Error(err))
	}
	logger.Log.Info("migrations completed successfully")
}

func performMigrations(DB *gorm.DB) error {
	migrations := map[interface{}]string{
		&models.Patient{}:          "Patient",
		&models.Doctor{}:           "Doctor",
		&models.Appointment{}:      "Appointment",
		&models.MedicineProduct{}:  "MedicineProduct",
		&models.EducationContent{}: "EducationContent",
		&models.PatientFee{}:       "PatientFee",
		&models.Message{}:          "Message",
		&models.User{}:             "User",
	}

	logger.Log.Info("starting database migrations")
	for model, name := range migrations {
		if err := DB.AutoMigrate(model); err != nil {
			return fmt.Errorf("error migrating %s table: %w", name, err)
		}
		logger.SLog.Infof("%s migration successful", name)
	}

	if err := os.MkdirAll("uploads/avatars", 0755); err != nil {
		return fmt.Errorf("could not create upload directory: %w", err)
	}

	return nil
}

func runSeed() {
	DB := openDB()
	defer closeDB(DB)

	if err := performMigrations(DB); err != nil {
		logger.Log.Fatal("migration error", zap.Error(err))
	}
	if err := db.Seed(DB); err != nil {
		logger.Log.Fatal("seed error", zap.Error(err))
	}
	logger.Log.Info("demo data seeded")
}

func runDatabaseClear() {
	DB := openDB()
	defer closeDB(DB)

	var confirmation string
	fmt.Print("Are you sure you want to clear the database? (yes/no): ")
	fmt.Scanln(&confirmation)
	if confirmation != "yes" {
		logger.Log.Info("database clearing cancelled")
		return
	}

	tables := []interface{}{
		&models.Message{},
		&models.PatientFee{},
		&models.EducationContent{},
		&models.Appointment{},
		&models.MedicineProduct{},
		&models.Doctor{},
		&models.Patient{},
		&models.User{},
	}

	logger.Log.Info("dropping tables")
	for _, table := range tables {
		if err := DB.Migrator().DropTable(table); err != nil {
			logger.SLog.Warnf("dropping table %T: %v", table, err)
		} else {
			logger.SLog.Infof("table %T dropped", table)
		}
	}
}

func buildStores(DB *gorm.DB) store.Stores {
	stores := store.GormStores(DB)

	// DATA_PROVIDER=remote points the list entities at another service
	// that owns the records; this service keeps sessions and messaging.
	if strings.EqualFold(os.Getenv("DATA_PROVIDER"), "remote") {
		stores = stores.WithRemote(store.RemoteConfig{
			BaseURL: os.Getenv("REMOTE_API_URL"),
			Token:   os.Getenv("REMOTE_API_TOKEN"),
		})
		logger.Log.Info("using remote data provider", zap.String("base_url", os.Getenv("REMOTE_API_URL")))
	}
	return stores
}

func newRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Log.Warn("redis unreachable, sessions disabled", zap.Error(err))
		return nil
	}
	return client
}

func startServer() {
	DB := openDB()
	defer closeDB(DB)
	logger.Log.Info("connected to the database")

	redisClient := newRedisClient()
	if redisClient != nil {
		defer redisClient.Close()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}
	server := api.NewAPIServer(":"+port, DB, redisClient, buildStores(DB))

	go func() {
		if err := server.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()
	logger.Log.Info("server started", zap.String("port", port))

	<-quit
	logger.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown error", zap.Error(err))
	}
}
