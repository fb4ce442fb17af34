//go:build integration

package http

import (
	"context"
	"os"
	"testing"

	"github.com/pharmabot/basket-service/internal/testutil"
)

// Handler integration tests share one MongoDB container.
func TestMain(m *testing.M) {
	os.Exit(testutil.RunWithSharedMongo(context.Background(), m))
}

func getSharedContainerURI() string {
	return testutil.SharedMongoURI()
}

func sanitizeDBNameForHTTP(testName string) string {
	return testutil.UniqueDBName(testName)
}
