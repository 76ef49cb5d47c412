package app

import (
	"errors"
	"fmt"

	"buspass_backend/internal/config"
	"buspass_backend/internal/email"
	"buspass_backend/internal/handlers"
	"buspass_backend/internal/logger"
	"buspass_backend/internal/middleware"
	"buspass_backend/internal/models"
	"buspass_backend/internal/routes"
	"buspass_backend/internal/services"
	"buspass_backend/internal/storage"
	"buspass_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := Migrate(gormDB); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}
	if err := seedPassTypes(gormDB); err != nil {
		logger.Fatal("Failed to seed pass types", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info(fmt.Sprintf("🚀 Server starting on %s", address))
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// Migrate прогоняет автомиграции всех моделей
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PassType{},
		&models.PassApplication{},
		&models.Document{},
		&models.PassApproval{},
		&models.Payment{},
		&models.BusPass{},
		&models.ConductorScan{},
	)
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewStorage(storage.Config{
		Type:       cfg.Storage.Type,
		BasePath:   cfg.Storage.BasePath,
		BaseURL:    cfg.Storage.BaseURL,
		Bucket:     cfg.Storage.Bucket,
		Region:     cfg.Storage.Region,
		AccessKey:  cfg.Storage.AccessKey,
		SecretKey:  cfg.Storage.SecretKey,
		Endpoint:   cfg.Storage.Endpoint,
		PublicRead: cfg.Storage.PublicRead,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	serviceContainer := initializeServices(cfg, gormDB)

	appHandlers := initializeHandlers(serviceContainer, storageInstance, cfg)

	ginRouter := initializeGinRouter()

	routes.RegisterRoutes(ginRouter, appHandlers)

	return ginRouter
}

func initializeServices(cfg *config.Config, gormDB *gorm.DB) *services.ServiceContainer {
	var emailProvider email.Provider
	if cfg.Email.Enabled {
		provider, err := email.NewSMTPProvider(email.SMTPConfig{
			Host:      cfg.Email.SMTPHost,
			Port:      cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			logger.Fatal("Failed to initialize email provider", "error", err)
		}
		emailProvider = provider
		logger.Info("Email provider initialized", "host", cfg.Email.SMTPHost)
	} else {
		logger.Warn("Email sending disabled, using noop provider")
		emailProvider = email.NewNoopProvider()
	}

	return services.NewServiceContainer(gormDB, emailProvider)
}

func initializeHandlers(container *services.ServiceContainer, storageInstance storage.Storage, cfg *config.Config) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler: handlers.NewAuthHandler(baseHandler, container.Auth),
		PassengerHandler: handlers.NewPassengerHandler(
			baseHandler, container.PassType, container.Application, container.Payment, container.Pass),
		AdminHandler: handlers.NewAdminHandler(
			baseHandler, container.PassType, container.Application, container.Auth, container.Report),
		ConductorHandler: handlers.NewConductorHandler(baseHandler, container.Verification),
		FileHandler:      handlers.NewFileHandler(baseHandler, storageInstance, cfg),
	}
}

func initializeGinRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	return router
}

func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.FirstAdminEmail
	adminPassword := cfg.FirstAdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var adminUser models.User
	result := tx.Where("email = ?", adminEmail).First(&adminUser)

	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		tx.Rollback()
		return nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	logger.Warn("No admin user found with specified email. Creating first admin...", "email", adminEmail)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	newAdmin := &models.User{
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		FullName:     "System Administrator",
		Role:         models.UserRoleAdmin,
		IsActive:     true,
	}

	if err := tx.Create(newAdmin).Error; err != nil {
		return fmt.Errorf("failed to create admin user in database: %w", err)
	}

	logger.Info("✅ Successfully created first admin user", "email", adminEmail)

	return tx.Commit().Error
}

// seedPassTypes создает стартовый каталог тарифов, если он пуст
func seedPassTypes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.PassType{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count pass types: %w", err)
	}
	if count > 0 {
		return nil
	}

	logger.Info("Pass type catalog is empty. Seeding defaults...")

	defaults := []models.PassType{
		{
			Name:         "Weekly Pass",
			Description:  "Valid for 7 days from activation",
			Price:        decimal.NewFromInt(175),
			DurationDays: 7,
			PerDayLimit:  3,
			IsActive:     true,
		},
		{
			Name:         "Monthly Pass",
			Description:  "Valid for 30 days from activation",
			Price:        decimal.NewFromInt(750),
			DurationDays: 30,
			PerDayLimit:  5,
			IsActive:     true,
		},
		{
			Name:         "Quarterly Pass",
			Description:  "Valid for 90 days from activation",
			Price:        decimal.NewFromInt(2000),
			DurationDays: 90,
			PerDayLimit:  10,
			IsActive:     true,
		},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range defaults {
			if err := tx.Create(&defaults[i]).Error; err != nil {
				return fmt.Errorf("failed to seed pass type %q: %w", defaults[i].Name, err)
			}
		}
		return nil
	})
}
