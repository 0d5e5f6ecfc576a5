package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/radshield/radshield-web/config"
	"github.com/radshield/radshield-web/internal/cache"
	"github.com/radshield/radshield-web/internal/catalog"
	"github.com/radshield/radshield-web/internal/handlers"
	"github.com/radshield/radshield-web/internal/i18n"
	"github.com/radshield/radshield-web/internal/middleware"
	"github.com/radshield/radshield-web/internal/notify"
	"github.com/radshield/radshield-web/internal/services"
	"github.com/radshield/radshield-web/internal/web"
	"github.com/radshield/radshield-web/pkg/httpclient"
	"github.com/radshield/radshield-web/pkg/logger"
	"github.com/radshield/radshield-web/pkg/mailer"
	"github.com/radshield/radshield-web/pkg/metrics"
	"github.com/radshield/radshield-web/pkg/profiling"
	"github.com/radshield/radshield-web/pkg/storage"
	"github.com/radshield/radshield-web/pkg/tracing"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

const (
	formBodyLimit = 64 * 1024
	logsBodyLimit = 256 * 1024
)

type rateLimiters struct {
	general *middleware.RateLimiter
	submit  *middleware.RateLimiter
}

func (r rateLimiters) stop() {
	r.general.Stop()
	r.submit.Stop()
}

// registerPageRoutes registers the HTML pages of one locale under /<locale>
func registerPageRoutes(
	router *gin.Engine,
	locale string,
	limiters rateLimiters,
	wizardSession gin.HandlerFunc,
	pagesHandler *handlers.PagesHandler,
	quotePageHandler *handlers.QuotePageHandler,
) {
	path := func(p i18n.Page) string { return "/" + i18n.Segment(locale, p) }

	g := router.Group("/"+locale, middleware.FixedLocaleMiddleware(locale), limiters.general.Middleware())
	g.GET("", pagesHandler.Home)
	g.GET(path(i18n.PageProducts), pagesHandler.Products)
	g.GET(path(i18n.PageProducts)+"/:slug", pagesHandler.Product)
	g.GET(path(i18n.PageServices), pagesHandler.Services)
	g.GET(path(i18n.PageAbout), pagesHandler.About)
	g.GET(path(i18n.PageLegal), pagesHandler.Legal)
	g.GET(path(i18n.PagePrivacy), pagesHandler.Privacy)
	g.GET(path(i18n.PageContact), pagesHandler.ContactForm)
	g.POST(path(i18n.PageContact), limiters.submit.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), pagesHandler.SubmitContact)

	q := g.Group(path(i18n.PageQuote), middleware.NoStoreMiddleware(), wizardSession)
	q.GET("", quotePageHandler.Show)
	q.POST("", middleware.BodySizeLimitMiddleware(formBodyLimit), quotePageHandler.Act)
}

// registerAPIRoutes registers the JSON API under /api/v1
func registerAPIRoutes(
	group *gin.RouterGroup,
	limiters rateLimiters,
	wizardSession gin.HandlerFunc,
	catalogHandler *handlers.CatalogHandler,
	quoteHandler *handlers.QuoteHandler,
	contactHandler *handlers.ContactHandler,
	logsHandler *handlers.LogsHandler,
) {
	group.GET("/products", catalogHandler.ListProducts)
	group.GET("/products/:slug", catalogHandler.GetProduct)
	group.GET("/products/:slug/datasheet", catalogHandler.Datasheet)

	group.POST("/contact", limiters.submit.Middleware(), middleware.BodySizeLimitMiddleware(formBodyLimit), contactHandler.SubmitContact)
	group.POST("/logs", middleware.BodySizeLimitMiddleware(logsBodyLimit), logsHandler.ReceiveBrowserLogs)

	q := group.Group("/quote", middleware.NoStoreMiddleware(), wizardSession, middleware.BodySizeLimitMiddleware(formBodyLimit))
	q.POST("", quoteHandler.Mount)
	q.GET("", quoteHandler.Get)
	q.DELETE("", quoteHandler.Discard)
	q.POST("/next", quoteHandler.Next)
	q.POST("/back", quoteHandler.Back)
	q.POST("/needs/:need", quoteHandler.ToggleNeed)
	q.PATCH("/fields", quoteHandler.SetFields)
	q.POST("/submit", limiters.submit.Middleware(), quoteHandler.Submit)
}

// newMailer picks the configured mail provider and guards it with a circuit breaker
func newMailer(cfg *config.Config) *mailer.Guarded {
	var sender mailer.Sender
	switch cfg.Mail.Provider {
	case config.MailProviderSMTP:
		sender = mailer.NewSMTPSender(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUsername, cfg.Mail.SMTPPassword, cfg.Mail.From, cfg.Mail.FromName)
	case config.MailProviderLog:
		logger.Warn("Mail provider is 'log': quote requests are written to the log, not sent")
		sender = mailer.LogSender{}
	default:
		timeout := time.Duration(cfg.Mail.TimeoutSeconds) * time.Second
		sender = mailer.NewAPISender(cfg.Mail.APIURL, cfg.Mail.APIKey, cfg.Mail.From, cfg.Mail.FromName, httpclient.NewClientWithTimeout(timeout))
	}
	return mailer.NewGuarded(sender)
}

// newDatasheets resolves technical sheets from the private bucket when one is
// configured, otherwise from the public base URL
func newDatasheets(cfg *config.Config) *cache.DatasheetCache {
	ttl := time.Duration(cfg.Datasheets.PresignTTLMinute) * time.Minute
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	var source cache.DatasheetSource = storage.PublicDatasheets{BaseURL: cfg.Datasheets.PublicBaseURL}
	if cfg.Datasheets.UsesBucket() {
		source = storage.NewDatasheetClient(
			cfg.Datasheets.AccessKeyID,
			cfg.Datasheets.SecretAccessKey,
			cfg.Datasheets.BucketName,
			cfg.Datasheets.Endpoint,
			cfg.Datasheets.Region,
			ttl,
		)
	}
	// cached URLs must expire before the presigned ones
	return cache.NewDatasheetCache(source, ttl/2)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	err = logger.Initialize(logger.Config{
		Level:       cfg.Logging.Level,
		LogDir:      cfg.Logging.Dir,
		Environment: cfg.Server.AppEnv,
		ServiceName: cfg.Observability.ServiceName,
		MaxSizeMB:   cfg.Logging.MaxSizeMB,
		MaxBackups:  cfg.Logging.MaxBackups,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting RadShield web",
		zap.String("version", cfg.Observability.ServiceVersion),
		zap.String("environment", cfg.Server.AppEnv),
		zap.String("default_locale", cfg.Server.DefaultLocale),
	)

	tracerShutdown, err := tracing.InitTracer(cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tracerShutdown(ctx); shutdownErr != nil {
			logger.Error("Failed to shutdown tracer", zap.Error(shutdownErr))
		}
	}()

	stopProfiler, err := profiling.InitProfiler(cfg.Profiling, cfg.Observability, cfg.Server.AppEnv)
	if err != nil {
		logger.Fatal("Failed to initialize profiler", zap.Error(err))
	}
	defer stopProfiler()

	metrics.Init(cfg.Observability.ServiceName)
	metrics.RecordInfrastructureMetrics()

	// Reference data is compiled in; a broken catalogue must stop the boot
	products, err := catalog.New(catalog.Products)
	if err != nil {
		logger.Fatal("Invalid product catalogue", zap.Error(err))
	}
	msgs := i18n.Default()

	httpClient := httpclient.NewStandardClient()
	mail := newMailer(cfg)

	quoteNotifier := notify.NewQuoteNotifier(mail, products, msgs, cfg.Mail.QuoteRecipient, cfg.Mail.SendCustomerAck)
	contactNotifier := notify.NewContactNotifier(mail, msgs, cfg.ContactRecipient())

	sessionTTL := time.Duration(cfg.Wizard.SessionTTLMinutes) * time.Minute
	wizardStore := cache.NewWizardStore(sessionTTL, time.Duration(cfg.Wizard.CleanupIntervalMin)*time.Minute, cfg.Wizard.MaxSessions)

	catalogService := services.NewCatalogService(products, newDatasheets(cfg))
	quoteService := services.NewQuoteService(wizardStore, products, quoteNotifier, cfg, httpClient)
	contactService := services.NewContactService(contactNotifier, cfg, httpClient)

	renderer, err := web.NewRenderer()
	if err != nil {
		logger.Fatal("Failed to parse page templates", zap.Error(err))
	}
	site := &web.Site{
		Msgs:             msgs,
		BaseURL:          cfg.Server.BaseURL,
		RecaptchaSiteKey: cfg.ReCAPTCHA.SiteKey,
	}

	pagesHandler := handlers.NewPagesHandler(site, catalogService, contactService)
	quotePageHandler := handlers.NewQuotePageHandler(site, products, quoteService)
	catalogHandler := handlers.NewCatalogHandler(catalogService, msgs)
	quoteHandler := handlers.NewQuoteHandler(quoteService, msgs)
	contactHandler := handlers.NewContactHandler(contactService, msgs)
	logsHandler := handlers.NewLogsHandler(cfg.Logging.Dir)
	healthHandler := handlers.NewHealthHandler(map[string]handlers.HealthCheck{
		"mailer": mail.Healthy,
		"wizards": func() bool {
			return cfg.Wizard.MaxSessions <= 0 || wizardStore.Count() < cfg.Wizard.MaxSessions
		},
	})

	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.HTMLRender = renderer

	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(cfg.Observability.ServiceName))
	router.Use(middleware.ObservabilityMiddleware())
	router.Use(middleware.SecurityHeadersMiddleware())

	allowedOrigins := cfg.Server.AllowedOrigins
	if cfg.IsDevelopment() {
		allowedOrigins = append(allowedOrigins, "http://localhost:"+cfg.Server.Port, "http://127.0.0.1:"+cfg.Server.Port)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Accept-Language", "traceparent", "tracestate"},
		ExposeHeaders:    []string{"Content-Length", "Content-Language", "Retry-After"},
		AllowCredentials: true, // quote session cookie
		MaxAge:           12 * time.Hour,
	}))

	limiters := rateLimiters{
		general: middleware.NewRateLimiter("general", rate.Limit(cfg.RateLimit.GeneralPerSecond), cfg.RateLimit.GeneralBurst),
		submit:  middleware.NewRateLimiter("submit", middleware.PerMinute(cfg.RateLimit.SubmitPerMinute), cfg.RateLimit.SubmitPerMinute),
	}
	defer limiters.stop()

	wizardSession := middleware.WizardSessionMiddleware(quoteService.GetTokenManager(), quoteService.GetCookieDomain(), quoteService.GetCookieSecure())

	router.GET("/", pagesHandler.Root)
	router.StaticFS("/static", web.Static())
	for _, locale := range i18n.Locales {
		registerPageRoutes(router, locale, limiters, wizardSession, pagesHandler, quotePageHandler)
	}

	// Operational endpoints, not versioned
	api := router.Group("/api")
	api.GET("/healthcheck", healthHandler.Healthcheck)
	api.GET("/metrics", middleware.MetricsAuthMiddleware(cfg.Observability.MetricsToken), gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1", middleware.NegotiateLocaleMiddleware(cfg.Server.DefaultLocale), limiters.general.Middleware())
	registerAPIRoutes(v1, limiters, wizardSession, catalogHandler, quoteHandler, contactHandler, logsHandler)

	router.NoRoute(pagesHandler.NotFound)

	submitTimeout := cfg.Wizard.SubmitTimeout()
	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		// submissions may wait on the mail provider
		WriteTimeout:   submitTimeout + 15*time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		logger.Info("Server started", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// in-flight submissions get their full timeout
	ctx, cancel := context.WithTimeout(context.Background(), submitTimeout+5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
