package postgres

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	TestUsername = "testuser"
	TestPassword = "testpass"
	TestDBName   = "testdb"
)

func setupPostgres(t *testing.T) *Database {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     TestUsername,
			"POSTGRES_PASSWORD": TestPassword,
			"POSTGRES_DB":       TestDBName,
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal("Failed to start Postgres container:", err)
	}
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatal("Failed to get container host:", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatal("Failed to get mapped port:", err)
	}

	uri := fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=disable",
		TestUsername, TestPassword, net.JoinHostPort(host, port.Port()), TestDBName)

	db, err := Connect(Config{
		URI:               uri,
		ConnectionTimeout: 30000,
		QueryTimeout:      30000,
	})
	if err != nil {
		t.Fatal("Failed to connect to Postgres:", err)
	}
	t.Cleanup(func() {
		_ = db.Stop()
	})

	return db
}

func seedUser(t *testing.T, db *Database, id int64, name string) {
	t.Helper()

	_, err := db.Pool.Exec(context.Background(),
		`INSERT INTO users (id, name) VALUES ($1, $2)`, id, name)
	if err != nil {
		t.Fatal("Failed to seed user:", err)
	}
}
