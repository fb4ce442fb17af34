//go:build integration

// Package testutil starts MongoDB testcontainers for integration tests.
package testutil

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
)

const mongoImage = "mongo:7.0"

// MongoServer is a running MongoDB testcontainer.
type MongoServer struct {
	URI       string
	container testcontainers.Container
}

// StartMongo starts a dedicated MongoDB container. Most packages should
// share one container via RunWithSharedMongo instead, a fresh container
// costs 30s or more.
func StartMongo(ctx context.Context) (*MongoServer, error) {
	container, err := mongodb.Run(ctx, mongoImage)
	if err != nil {
		return nil, fmt.Errorf("start mongodb container: %w", err)
	}

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("mongodb connection string: %w", err)
	}

	return &MongoServer{URI: uri, container: container}, nil
}

// Stop terminates the container.
func (s *MongoServer) Stop(ctx context.Context) error {
	if s.container == nil {
		return nil
	}
	if err := s.container.Terminate(ctx); err != nil {
		return fmt.Errorf("terminate mongodb container: %w", err)
	}
	return nil
}

var (
	sharedMu     sync.Mutex
	sharedServer *MongoServer
)

// RunWithSharedMongo starts one MongoDB container, runs the package's
// tests against it, and tears it down. Call from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testutil.RunWithSharedMongo(context.Background(), m))
//	}
func RunWithSharedMongo(ctx context.Context, m *testing.M) int {
	server, err := StartMongo(ctx)
	if err != nil {
		panic(err)
	}

	sharedMu.Lock()
	sharedServer = server
	sharedMu.Unlock()

	code := m.Run()

	if err := server.Stop(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "warning: leaked mongodb container:", err)
	}
	return code
}

// SharedMongoURI returns the URI of the package-shared container.
// Panics when called outside a RunWithSharedMongo TestMain.
func SharedMongoURI() string {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if sharedServer == nil {
		panic("testutil: no shared mongodb container, wrap TestMain in RunWithSharedMongo")
	}
	return sharedServer.URI
}

// UniqueDBName turns a test name into a database name that is valid for
// MongoDB and unique across the run, so tests sharing a container stay
// isolated.
func UniqueDBName(testName string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", " ", "_").Replace(testName)
	if len(name) > 50 {
		name = name[:50]
	}
	return fmt.Sprintf("%s_%d", name, time.Now().UnixNano()%1000000)
}
