package testhelpers

import (
	"context"
	"os/exec"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/pageza/recipebox/config"
)

// requireDocker skips the test when no docker binary is available
func requireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

func startContainer(t *testing.T, req testcontainers.ContainerRequest) (string, string) {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("failed to start container %s: %v", req.Image, err)
	}

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, req.ExposedPorts[0])
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}
	return host, mappedPort.Port()
}

// SetupRedis starts a Redis container and returns a config pointing at it
func SetupRedis(t *testing.T) *config.Config {
	requireDocker(t)

	host, port := startContainer(t, testcontainers.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("6379/tcp"),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(60 * time.Second),
	})

	return &config.Config{
		SlotBackend: config.BackendRedis,
		SlotName:    "recipe-storage",
		RedisHost:   host,
		RedisPort:   port,
	}
}

// SetupPostgres starts a PostgreSQL container and returns a config pointing at it
func SetupPostgres(t *testing.T) *config.Config {
	requireDocker(t)

	cfg := &config.Config{
		SlotBackend: config.BackendPostgres,
		SlotName:    "recipe-storage",
		DBUser:      "postgres",
		DBPassword:  "postpass",
		DBName:      "recipebox",
		DBSSLMode:   "disable",
	}

	cfg.DBHost, cfg.DBPort = startContainer(t, testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     cfg.DBUser,
			"POSTGRES_PASSWORD": cfg.DBPassword,
			"POSTGRES_DB":       cfg.DBName,
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
		).WithStartupTimeout(60 * time.Second),
	})

	return cfg
}
