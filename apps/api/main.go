package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/locales/uz"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/maqomuz/maktab/apps/api/echo"
	"github.com/maqomuz/maktab/core"
	"github.com/maqomuz/maktab/core/auth"
	"github.com/maqomuz/maktab/core/backend"
	"github.com/maqomuz/maktab/core/cache"
	"github.com/maqomuz/maktab/core/contact"
	"github.com/maqomuz/maktab/core/employee"
	"github.com/maqomuz/maktab/core/files"
	"github.com/maqomuz/maktab/core/news"
	syncer "github.com/maqomuz/maktab/core/sync"
	"github.com/maqomuz/maktab/services/audit"
	emailsvc "github.com/maqomuz/maktab/services/email"
	logsvc "github.com/maqomuz/maktab/services/logger"
	"github.com/maqomuz/maktab/storage/inmem"
	"github.com/maqomuz/maktab/storage/local"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewZapLogger(conf)
	} else {
		rollbarLogger := logsvc.NewRollbarLogger(
			log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
			conf,
		)
		rollbarLogger.Enable(true)
		logger = rollbarLogger
	}

	// hosted-service stand-ins: in-memory store + file-backed key-value store
	db, err := inmem.Open()
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening store: %v", err), err)
	}
	kv, err := local.Open(conf.Storage.LocalPath)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening local store: %v", err), err)
	}

	if conf.AdminEmail != "" {
		db.SeedIdentity(conf.AdminEmail, conf.AdminPassword, false)
	}

	facade := backend.NewFacade(
		inmem.NewIdentityProvider(db),
		inmem.NewFileStore(db, conf.Storage.BaseURL),
		kv,
	)

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	<-facade.Ready()
	identitySvc, err := facade.Identity()
	if err != nil {
		logger.Fatal(fmt.Sprintf("resolving identity service: %v", err), err)
	}
	fileStore, err := facade.Files()
	if err != nil {
		logger.Fatal(fmt.Sprintf("resolving file store: %v", err), err)
	}
	kvStore, err := facade.KV()
	if err != nil {
		logger.Fatal(fmt.Sprintf("resolving key-value store: %v", err), err)
	}

	authSvc := auth.NewService(identitySvc)
	dataCache := cache.New(conf.Cache.TTL)
	newsSvc := news.NewService(inmem.NewNewsRepository(db), authSvc, dataCache, validate, logger)
	employeeSvc := employee.NewService(inmem.NewEmployeeRepository(db), authSvc, dataCache, validate, logger)
	fileSvc := files.NewService(fileStore, authSvc, conf)
	contactSvc := contact.NewService(mailSvc, validate, conf)
	auditLog := audit.NewLogger(kvStore, conf.Audit, logger)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	// =========================================================================
	// Start Offline Snapshot Sync

	syncCtx, cancelSync := context.WithCancel(context.Background())
	defer cancelSync()

	snapshots := syncer.NewSyncer(newsSvc, employeeSvc, kvStore, logger)
	go snapshots.Run(syncCtx, conf.SyncInterval)

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:        conf,
			Logger:      logger,
			AuthSvc:     authSvc,
			NewsSvc:     newsSvc,
			EmployeeSvc: employeeSvc,
			FileSvc:     fileSvc,
			ContactSvc:  contactSvc,
			AuditLog:    auditLog,
			Validate:    validate,
			Translator:  translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
		cancelSync()

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_uz := uz.New()
	uni := ut.New(_uz, _uz)
	translator, _ := uni.GetTranslator("uz")
	return translator
}
