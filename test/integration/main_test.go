package integration_test

import (
	"log"
	"os"
	"sync"
	"testing"

	"buspass_backend/test/helpers"
)

// Глобальные переменные для общего состояния
var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer возвращает тестовый сервер (создает при первом вызове).
// Тесты пропускаются, если тестовая БД не сконфигурирована.
func GetTestServer(t *testing.T) *helpers.TestServer {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL не задан, интеграционные тесты пропущены")
	}

	serverOnce.Do(func() {
		os.Setenv("SERVER_ENV", "test")
		os.Setenv("DATABASE_URL", os.Getenv("TEST_DATABASE_URL"))
		if os.Getenv("JWT_SECRET") == "" {
			os.Setenv("JWT_SECRET", "my_super_secret_key_for_tests_12345")
		}

		log.Println("--- [GetTestServer] Initializing test server... ---")
		globalTestServer = helpers.NewTestServer(t)
		log.Println("--- [GetTestServer] Test server ready ---")
	})
	return globalTestServer
}

// TestMain только для глобальной очистки
func TestMain(m *testing.M) {
	code := m.Run()

	if globalTestServer != nil {
		log.Println("--- [TestMain] Cleaning up... ---")
		globalTestServer.Close()
	}

	os.Exit(code)
}
