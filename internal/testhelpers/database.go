package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/recipeshare/backend/internal/database"
	"github.com/pageza/recipeshare/backend/internal/logging"
	"github.com/pageza/recipeshare/backend/internal/store/gormstore"
	"github.com/pageza/recipeshare/backend/internal/store/mongostore"
)

const (
	testDBUser     = "postgres"
	testDBPassword = "postpass"
	testDBName     = "recipeshare"
)

// SetupSQLiteStore creates a migrated in-memory sqlite store private to the test
func SetupSQLiteStore(t *testing.T) *gormstore.Store {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(gormstore.OpenSQLite(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}

	// One connection keeps the in-memory database alive and serializes writers
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.RunMigrations(db, logging.Discard()); err != nil {
		t.Fatalf("failed to migrate sqlite database: %v", err)
	}

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return gormstore.New(db)
}

// SetupPostgresStore starts a postgres container and returns a migrated store on it
func SetupPostgresStore(t *testing.T) *gormstore.Store {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     testDBUser,
				"POSTGRES_PASSWORD": testDBPassword,
				"POSTGRES_DB":       testDBName,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
						testDBUser, testDBPassword, host, port.Port(), testDBName)
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}
	terminateOnCleanup(t, container)

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, mappedPort.Port(), testDBUser, testDBPassword, testDBName)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.RunMigrations(db, logging.Discard()); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gormstore.New(db)
}

// ResetSQLStore empties every table of a gorm-backed store
func ResetSQLStore(t *testing.T, s *gormstore.Store) {
	t.Helper()

	for _, table := range []string{"recipe_recommendations", "recipes", "users"} {
		if err := s.DB().Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}
}

// SetupMongoClient starts a mongo container and returns a client connected to it
func SetupMongoClient(t *testing.T) *mongo.Client {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{"27017/tcp"},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("27017/tcp"),
				wait.ForLog("Waiting for connections"),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start mongo container: %v", err)
	}
	terminateOnCleanup(t, container)

	endpoint, err := container.Endpoint(ctx, "mongodb")
	if err != nil {
		t.Fatalf("failed to get mongo endpoint: %v", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Disconnect(context.Background())
	})
	return client
}

// NewMongoStore returns an indexed store on a fresh database of client
func NewMongoStore(t *testing.T, client *mongo.Client) *mongostore.Store {
	t.Helper()

	s := mongostore.New(client, "recipeshare_"+strings.ReplaceAll(uuid.NewString(), "-", "")[:12])
	if err := s.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("failed to create mongo indexes: %v", err)
	}
	return s
}

// SetupRedis starts a redis container and returns a connected client
func SetupRedis(t *testing.T) *redis.Client {
	t.Helper()
	requireDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start redis container: %v", err)
	}
	terminateOnCleanup(t, container)

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		t.Fatalf("failed to get redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

func terminateOnCleanup(t *testing.T, container testcontainers.Container) {
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})
}
