package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	acceptBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/accept_booking"
	cancelBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/cancel_booking"
	completeBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/complete_booking"
	createBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/create_booking"
	createRuleHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/create_recurring_rule"
	getAvailableSlotsHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/get_booking"
	getEligibilityHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/get_eligibility"
	getMessagesHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/get_messages"
	getUserBookingsHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/get_user_bookings"
	initiatePaymentHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/initiate_payment"
	markMessageReadHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/mark_message_read"
	paymentWebhookHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/payment_webhook"
	rejectBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/reject_booking"
	rescheduleBookingHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/reschedule_booking"
	sendMessageHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/send_message"
	updateRuleHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/update_recurring_rule"
	verifyParticipantHandler "github.com/tutorlane/TL-BookingService/internal/api/handlers/verify_participant"
	"github.com/tutorlane/TL-BookingService/internal/api/middleware"
	"github.com/tutorlane/TL-BookingService/internal/config"
	bookingRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/booking"
	messageRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/message"
	paymentRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/payment"
	ruleRepo "github.com/tutorlane/TL-BookingService/internal/infra/storage/rule"
	identityClient "github.com/tutorlane/TL-BookingService/internal/integrations/identity"
	bookingsService "github.com/tutorlane/TL-BookingService/internal/service/bookings"
	conflictsService "github.com/tutorlane/TL-BookingService/internal/service/conflicts"
	eligibilityService "github.com/tutorlane/TL-BookingService/internal/service/eligibility"
	messagesService "github.com/tutorlane/TL-BookingService/internal/service/messages"
	rulesService "github.com/tutorlane/TL-BookingService/internal/service/rules"
	createBookingUC "github.com/tutorlane/TL-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/tutorlane/TL-BookingService/internal/usecase/get_available_slots"
	"github.com/tutorlane/TL-BookingService/pkg/dbmetrics"
	"github.com/tutorlane/TL-BookingService/pkg/logger"
	"github.com/tutorlane/TL-BookingService/pkg/metrics"
	"github.com/tutorlane/TL-BookingService/pkg/simpletxmanager"
	"github.com/tutorlane/TL-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting TL-BookingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем клиент identity-сервиса
	identity := identityClient.NewClient(
		cfg.Identity.URL,
		time.Duration(cfg.Identity.Timeout)*time.Second,
		log,
	)
	log.Info("Identity client initialized (url=%s, timeout=%ds)", cfg.Identity.URL, cfg.Identity.Timeout)

	// Интерфейс transaction manager (используется сервисами и usecases)
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}

	var (
		executor dbmetrics.DBExecutor = db
		txMgr    TxManager            = simpletxmanager.NewTransactionManager(db)
	)

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		executor = wrappedDB
		txMgr = txmanager.NewTransactionManager(wrappedDB)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(executor)
	ruleRepository := ruleRepo.NewRepository(executor)
	paymentRepository := paymentRepo.NewRepository(executor)
	messageRepository := messageRepo.NewRepository(executor)

	// Инициализируем сервисы
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
	rulesSvc := rulesService.NewService(ruleRepository, identity, txMgr, log)
	messagesSvc := messagesService.NewService(messageRepository, bookingRepository, log)

	// Инициализируем use cases
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		eligibilitySvc,
		conflictsSvc,
		identity,
		txMgr,
		log,
	)

	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository,
		ruleRepository,
		cfg.Scheduling.SlotStepMinutes,
		cfg.Scheduling.WorkingOpenHour,
		cfg.Scheduling.WorkingCloseHour,
		log,
	)

	// Инициализируем handlers
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getEligibility := getEligibilityHandler.NewHandler(eligibilitySvc, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	acceptBooking := acceptBookingHandler.NewHandler(bookingSvc, log)
	rejectBooking := rejectBookingHandler.NewHandler(bookingSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	completeBooking := completeBookingHandler.NewHandler(bookingSvc, log)
	initiatePayment := initiatePaymentHandler.NewHandler(bookingSvc, log)
	paymentWebhook := paymentWebhookHandler.NewHandler(bookingSvc, log)
	verifyParticipant := verifyParticipantHandler.NewHandler(bookingSvc, log)
	createRule := createRuleHandler.NewHandler(rulesSvc, log)
	updateRule := updateRuleHandler.NewHandler(rulesSvc, log)
	sendMessage := sendMessageHandler.NewHandler(messagesSvc, log)
	getMessages := getMessagesHandler.NewHandler(messagesSvc, log)
	markMessageRead := markMessageReadHandler.NewHandler(messagesSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без пользовательской аутентификации)
	// ============================================================

	// Вебхук платежного провайдера (подпись проверяет гейтвей)
	api.HandleFunc("/payments/webhook", paymentWebhook.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Слоты и допуски ---
	protected.HandleFunc("/slots", getAvailableSlots.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/eligibility", getEligibility.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/accept", acceptBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reject", rejectBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/complete", completeBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/verify", verifyParticipant.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/bookings/{bookingId}/payment", initiatePayment.Handle).Methods(http.MethodPost)

	// --- Еженедельные правила ---
	protected.HandleFunc("/rules", createRule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/rules/{ruleId}", updateRule.Handle).Methods(http.MethodPatch)

	// --- Чат бронирования ---
	protected.HandleFunc("/bookings/{bookingId}/messages", sendMessage.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/messages", getMessages.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/messages/{messageId}/read", markMessageRead.Handle).Methods(http.MethodPatch)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
