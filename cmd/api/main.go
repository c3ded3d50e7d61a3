package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"

	"wfm/internal/adapter/repo"
	"wfm/internal/http/handlers"
	httpapi "wfm/internal/http/httpapi"
	"wfm/internal/infra"
	"wfm/internal/infra/geoip"
	"wfm/internal/mail"
	"wfm/internal/middleware"
	"wfm/internal/service"
	"wfm/internal/storage"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	files, err := storage.NewFileStore(cfg.StoragePath, cfg.StorageBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to prepare storage")
	}

	countries, err := geoip.Open(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer countries.Close()

	var mailer mail.Mailer = mail.LogMailer{Logger: logger}
	if cfg.MailEnabled() {
		mailer = mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	}

	sql := infra.NewSQLRunner(dbpool, logger)
	users := repo.NewUserRepository(sql)
	events := repo.NewEventRepository(sql)
	photos := repo.NewPhotoRepository(sql)
	items := repo.NewItemRepository(sql)
	donations := repo.NewDonationRepository(sql)
	testimonials := repo.NewTestimonialRepository(sql)

	app := handlers.NewApp(logger, cfg.JWTSecret, cfg.JWTTTL)
	app.Users = service.NewUserService(users, mailer, cfg.MailFrom, logger)
	app.Events = service.NewEventService(events)
	app.Photos = service.NewPhotoService(photos, events, files, logger)
	app.Items = service.NewItemService(items)
	app.Donations = service.NewDonationService(donations, users, events, items)
	app.Testimonials = service.NewTestimonialService(testimonials)
	app.Files = files
	app.Pinger = dbpool

	router := httpapi.NewRouter(app, httpapi.Options{
		Logger:        logger,
		CORSOrigins:   cfg.CORSOrigins,
		DefaultLocale: cfg.DefaultLocale,
		CountryLookup: countries.Lookup(),
		SubmitLimiter: middleware.NewRateLimiter(cfg.RateLimitPerMin),
		Media:         http.FileServer(http.Dir(files.BasePath())),
		ActiveUser:    app.ActiveUser,
	})

	server := infra.NewHTTPServer(cfg, router)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("addr", server.Addr()).Msg("api listening")
	if err := server.Run(ctx, nil); err != nil {
		logger.Error().Err(err).Msg("http server failed")
		return
	}
	logger.Info().Msg("server stopped")
}
