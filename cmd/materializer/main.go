// Материализатор — запускаемое по расписанию задание: создает бронирования
// по активным еженедельным правилам и закрывает подтвержденные сессии,
// чьё время уже прошло. Запуск идемпотентен, повторный прогон в пределах
// одной ISO-недели правил не дублирует
package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/lib/pq"

	"github.com/tutorlane/TL-BookingService/internal/config"
	bookingRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	paymentRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/payment"
	ruleRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/rule"
	identityClient "github.com/tutorlane/TL-BookingService/internal/integrations/identity"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
	conflictsService "github.com/tutorlane/TL-BookingService/internal/service/conflicts"
	eligibilityService "github.com/tutorlane/TL-BookingService/internal/service/eligibility"
	createBookingUC "github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
	materializeRulesUC "github.com/tutorlane/TL-BookingService/internal/usecase/materialize_rules"
	"github.com/tutorlane/TL-BookingService/pkg/logger"
	"github.com/tutorlane/TL-BookingService/pkg/simpletxmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TL-BookingService materializer...")

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}

	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)

	txMgr := simpletxmanager.NewTransactionManager(db)

	bookingRepository := bookingRepo.NewRepository(db)
	ruleRepository := ruleRepo.NewRepository(db)
	paymentRepository := paymentRepo.NewRepository(db)

	conflictsSvc := conflictsService.NewService(bookingRepository, ruleRepository, log)
	eligibilitySvc := eligibilityService.NewService(bookingRepository, log)
	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		conflictsSvc,
		identity,
		txMgr,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		eligibilitySvc,
		conflictsSvc,
		identity,
		txMgr,
		log,
	)

	materializeUseCase := materializeRulesUC.NewUseCase(ruleRepository, createBookingUseCase, log)

	ctx := context.Background()
	exitCode := 0

	// 1. Материализация еженедельных правил
	report, err := materializeUseCase.Execute(ctx)
	if err != nil {
		log.Error("Materialization failed: %v", err)
		exitCode = 1
	} else {
		log.Info("Materialization finished: total=%d, processed=%d, skipped=%d, errors=%d",
			report.TotalRules, report.ProcessedCount, report.SkippedCount, report.ErrorCount)
		if report.ErrorCount > 0 {
			exitCode = 1
		}
	}

	// 2. Автозавершение прошедших подтвержденных сессий
	completed, err := bookingSvc.CompleteElapsed(ctx)
	if err != nil {
		log.Error("Auto-completion sweep failed: %v", err)
		exitCode = 1
	} else {
		log.Info("Auto-completion sweep finished: completed=%d", completed)
	}

	os.Exit(exitCode)
}
