package helpers

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"buspass_backend/internal/app"
	"buspass_backend/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// TestServer объединяет httptest-сервер и подключение к тестовой БД
type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
}

// NewTestServer создает и настраивает тестовый сервер и БД
func NewTestServer(t *testing.T) *TestServer {
	// Конфиг берет DATABASE_URL (с тестовой базой) из окружения
	config.LoadConfig()
	cfg := config.GetConfig()
	dsn := cfg.Database.DSN

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("Не удалось подключиться к тестовой БД (%s): %v", dsn, err)
	}

	if err := app.Migrate(db); err != nil {
		t.Fatalf("Не удалось выполнить AutoMigrate для тестовой БД: %v", err)
	}

	router := app.SetupRouter(cfg, db)

	server := httptest.NewServer(router)

	log.Printf("✅ Тестовый сервер запущен, тестовая БД настроена.")

	return &TestServer{
		Server: server,
		DB:     db,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	sqlDB, _ := ts.DB.DB()
	sqlDB.Close()
}

// ClearTables очищает все таблицы между тестами
func (ts *TestServer) ClearTables(t *testing.T) {
	err := ts.DB.Exec("TRUNCATE TABLE conductor_scans, bus_passes, payments, pass_approvals, documents, pass_applications, pass_types, users RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("Не удалось очистить таблицы: %v", err)
	}
}

// SendRequest отправляет JSON-запрос на тестовый сервер
func (ts *TestServer) SendRequest(t *testing.T, method, path, token string, body interface{}) (*http.Response, string) {
	url := ts.Server.URL + path

	var reqBody io.Reader = nil
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Ошибка кодирования JSON для запроса: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("Ошибка создания HTTP-запроса: %v", err)
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("Ошибка отправки HTTP-запроса: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("Ошибка чтения тела ответа: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// Envelope - общий конверт ответов API
type Envelope struct {
	Success    bool            `json:"success"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	StatusCode int             `json:"statusCode"`
}

// ParseEnvelope разбирает конверт ответа
func ParseEnvelope(t *testing.T, body string) Envelope {
	var envelope Envelope
	if err := json.Unmarshal([]byte(body), &envelope); err != nil {
		t.Fatalf("Не удалось распарсить конверт ответа: %v. Тело: %s", err, body)
	}
	return envelope
}

// ParseData разбирает поле data конверта в указанную структуру
func ParseData(t *testing.T, body string, out interface{}) {
	envelope := ParseEnvelope(t, body)
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("Не удалось распарсить data: %v. Тело: %s", err, body)
	}
}
