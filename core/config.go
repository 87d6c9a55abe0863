package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		AppName   string
		Env       string // DEV (default), TEST, QA, PROD
		Debug     bool
		TestMode  bool
		Build     string
		SecretKey string

		DefaultFromEmail mail.Address
		ContactEmail     mail.Address // contact form recipient
		SendgridAPIKey   string
		RollbarToken     string

		// dev/staging identity seed; ignored when empty
		AdminEmail    string
		AdminPassword string

		SyncInterval time.Duration // offline snapshot refresh period

		Server  ServerConfig
		Storage StorageConfig
		API     APIConfig
		UI      UIConfig
		Cache   CacheConfig
		Audit   AuditConfig
	}

	ServerConfig struct {
		Host                      string
		Port                      string
		ShutdownTimeout           time.Duration
		JWTExpirationDelta        time.Duration
		JWTRefreshExpirationDelta time.Duration
	}

	StorageConfig struct {
		BaseURL              string // public URL prefix for uploaded files
		LocalPath            string // local key-value store file
		MaxFileSize          int64
		AllowedImageTypes    []string
		AllowedDocumentTypes []string
	}

	APIConfig struct {
		Timeout       time.Duration
		RetryAttempts int
		RetryDelay    time.Duration
	}

	UIConfig struct {
		ToastDuration   time.Duration
		PaginationLimit int
		SlideInterval   time.Duration
		SlideSettle     time.Duration
	}

	CacheConfig struct {
		TTL time.Duration
	}

	AuditConfig struct {
		MaxEntries           int
		AlertWindow          time.Duration
		FailedLoginThreshold int
		SuspiciousThreshold  int
		SessionTimeout       time.Duration
	}
)

func (c ServerConfig) Address() string {
	return c.Host + ":" + c.Port
}

// NewConfig loads the application configuration: viper defaults overlaid with
// an optional config/.env.<env> file and environment variables. It is meant to
// be called once in main and the result passed down explicitly.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("build", "dev")
	conf.SetDefault("appName", "Maqom Maktab-Internati")
	conf.SetDefault("secretKey", "o2f(-f2m#&5ya4&-c6ty9&dj3x8a0=uqs9b05ai-devonly")
	conf.SetDefault("defaultFromEmail", "noreply@maqom-fergana.uz")
	conf.SetDefault("contactEmail", "farmaqommaktab@umail.uz")
	conf.SetDefault("sendgridApiKey", "")
	conf.SetDefault("rollbarToken", "")

	conf.SetDefault("serverHost", "0.0.0.0")
	conf.SetDefault("serverPort", "8000")
	conf.SetDefault("serverShutdownTimeout", 5*time.Second)
	conf.SetDefault("jwtExpirationDelta", 7*24*time.Hour)
	conf.SetDefault("jwtRefreshExpirationDelta", 4*time.Hour)

	conf.SetDefault("adminEmail", "")
	conf.SetDefault("adminPassword", "")
	conf.SetDefault("syncInterval", 10*time.Minute)

	conf.SetDefault("storageBaseURL", "https://storage.maqom-fergana.uz")
	conf.SetDefault("storageLocalPath", filepath.Join("data", "local.json"))
	conf.SetDefault("maxFileSize", int64(5*1024*1024)) // 5MB
	conf.SetDefault("allowedImageTypes", []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"})
	conf.SetDefault("allowedDocumentTypes", []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})

	conf.SetDefault("apiTimeout", 30*time.Second)
	conf.SetDefault("apiRetryAttempts", 3)
	conf.SetDefault("apiRetryDelay", time.Second)

	conf.SetDefault("toastDuration", 5*time.Second)
	conf.SetDefault("paginationLimit", 10)
	conf.SetDefault("slideInterval", 5*time.Second)
	conf.SetDefault("slideSettle", 500*time.Millisecond)

	conf.SetDefault("cacheTTL", 5*time.Minute)

	conf.SetDefault("auditMaxEntries", 1000)
	conf.SetDefault("auditAlertWindow", 15*time.Minute)
	conf.SetDefault("auditFailedLoginThreshold", 5)
	conf.SetDefault("auditSuspiciousThreshold", 3)
	conf.SetDefault("auditSessionTimeout", 30*time.Minute)

	env := strings.ToUpper(os.Getenv("ENV"))
	if env == "" {
		env = "DEV"
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	appName := conf.GetString("appName")
	return &Config{
		AppName:          appName,
		Env:              env,
		Debug:            conf.GetBool("debug"),
		TestMode:         env == "TEST",
		Build:            conf.GetString("build"),
		SecretKey:        conf.GetString("secretKey"),
		DefaultFromEmail: mail.Address{Name: appName, Address: conf.GetString("defaultFromEmail")},
		ContactEmail:     mail.Address{Name: appName, Address: conf.GetString("contactEmail")},
		SendgridAPIKey:   conf.GetString("sendgridApiKey"),
		RollbarToken:     conf.GetString("rollbarToken"),
		AdminEmail:       conf.GetString("adminEmail"),
		AdminPassword:    conf.GetString("adminPassword"),
		SyncInterval:     conf.GetDuration("syncInterval"),
		Server: ServerConfig{
			Host:                      conf.GetString("serverHost"),
			Port:                      conf.GetString("serverPort"),
			ShutdownTimeout:           conf.GetDuration("serverShutdownTimeout"),
			JWTExpirationDelta:        conf.GetDuration("jwtExpirationDelta"),
			JWTRefreshExpirationDelta: conf.GetDuration("jwtRefreshExpirationDelta"),
		},
		Storage: StorageConfig{
			BaseURL:              conf.GetString("storageBaseURL"),
			LocalPath:            conf.GetString("storageLocalPath"),
			MaxFileSize:          conf.GetInt64("maxFileSize"),
			AllowedImageTypes:    conf.GetStringSlice("allowedImageTypes"),
			AllowedDocumentTypes: conf.GetStringSlice("allowedDocumentTypes"),
		},
		API: APIConfig{
			Timeout:       conf.GetDuration("apiTimeout"),
			RetryAttempts: conf.GetInt("apiRetryAttempts"),
			RetryDelay:    conf.GetDuration("apiRetryDelay"),
		},
		UI: UIConfig{
			ToastDuration:   conf.GetDuration("toastDuration"),
			PaginationLimit: conf.GetInt("paginationLimit"),
			SlideInterval:   conf.GetDuration("slideInterval"),
			SlideSettle:     conf.GetDuration("slideSettle"),
		},
		Cache: CacheConfig{
			TTL: conf.GetDuration("cacheTTL"),
		},
		Audit: AuditConfig{
			MaxEntries:           conf.GetInt("auditMaxEntries"),
			AlertWindow:          conf.GetDuration("auditAlertWindow"),
			FailedLoginThreshold: conf.GetInt("auditFailedLoginThreshold"),
			SuspiciousThreshold:  conf.GetInt("auditSuspiciousThreshold"),
			SessionTimeout:       conf.GetDuration("auditSessionTimeout"),
		},
	}
}

// NewTestConfig returns a Config for tests: TEST env semantics regardless of
// the ambient ENV variable.
func NewTestConfig() *Config {
	conf := NewConfig()
	conf.Env = "TEST"
	conf.TestMode = true
	conf.Debug = false
	return conf
}
