package main

import (
    "context"
    "fmt"
    "io/fs"
    "net/http"
    "os"
    "time"

    "github.com/go-chi/chi/v5"
    chimw "github.com/go-chi/chi/v5/middleware"
    "go.uber.org/zap"

    "github.com/fernandokaraka/portugal-engenharia-novo/internal/config"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/contact"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/handlers"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/i18n"
    mw "github.com/fernandokaraka/portugal-engenharia-novo/internal/middleware"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/observability"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/portfolio"
    "github.com/fernandokaraka/portugal-engenharia-novo/internal/site"
)

// app holds the wired dependencies of the web server.
type app struct {
    cfg    config.Config
    logger *zap.Logger
    public fs.FS
    loader i18n.Loader
    store  *portfolio.Store
    mailer contact.Mailer
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
    store, err := portfolio.Embedded()
    if err != nil {
        return nil, fmt.Errorf("load portfolio: %w", err)
    }
    loader, err := newLoader(ctx, cfg.Site)
    if err != nil {
        return nil, fmt.Errorf("load bundles: %w", err)
    }
    if catalog, ok := loader.(*i18n.Catalog); ok {
        logger.Info("bundles preloaded", zap.Strings("langs", catalog.Languages()))
    }
    mailer, err := newMailer(cfg.Mail, logger)
    if err != nil {
        return nil, err
    }
    return &app{
        cfg:    cfg,
        logger: logger,
        public: os.DirFS(cfg.Site.PublicDir),
        loader: loader,
        store:  store,
        mailer: mailer,
    }, nil
}

// newLoader reads bundles from the remote base URL when set, else from the locales
// directory. Dev mode rereads on every request; otherwise bundles are preloaded once.
func newLoader(ctx context.Context, cfg config.SiteConfig) (i18n.Loader, error) {
    var loader i18n.Loader = i18n.DirLoader(cfg.LocalesDir)
    if cfg.BundleBaseURL != "" {
        loader = i18n.NewHTTPLoader(cfg.BundleBaseURL, &http.Client{Timeout: 10 * time.Second})
    }
    if cfg.Dev {
        return loader, nil
    }
    return i18n.Preload(ctx, loader)
}

func newMailer(cfg config.MailConfig, logger *zap.Logger) (contact.Mailer, error) {
    switch cfg.Transport {
    case config.TransportSendmail:
        return contact.SendmailMailer{Path: cfg.SendmailPath}, nil
    case config.TransportSMTP:
        return contact.SMTPMailer{Addr: cfg.SMTPAddr, Username: cfg.SMTPUsername, Password: cfg.SMTPPassword}, nil
    case config.TransportLog:
        return contact.LogMailer{Logger: logger.Named("mail")}, nil
    default:
        return nil, fmt.Errorf("unknown mail transport %q", cfg.Transport)
    }
}

func (a *app) routes() http.Handler {
    r := chi.NewRouter()
    r.Use(chimw.RequestID)
    // If deployed behind a trusted reverse proxy/load balancer, RealIP will use
    // X-Forwarded-For to determine the client IP. Ensure only trusted proxies
    // can set these headers in production environments.
    r.Use(chimw.RealIP)
    r.Use(observability.InjectLoggerMiddleware(a.logger))
    r.Use(observability.RequestLoggerMiddleware())
    r.Use(observability.RecoveryMiddleware(a.logger))
    r.Use(mw.Compress(5))
    if a.cfg.Server.RequestTimeout > 0 {
        r.Use(chimw.Timeout(a.cfg.Server.RequestTimeout))
    }

    // Health check
    r.Get("/healthz", handlers.Healthz)

    // Static assets under /assets/
    assets, err := fs.Sub(a.public, "assets")
    if err == nil {
        r.Handle("/assets/*", http.StripPrefix("/assets", mw.AssetsWithCache(assets, a.cfg.Site.Dev)))
    }

    // Bundles for client-side switching
    r.Get("/{lang}.json", handlers.Bundles(a.loader))

    projects := handlers.NewProjectHandler(a.store)
    r.Route("/api/projects", func(r chi.Router) {
        r.Get("/", projects.ListProjects)
        r.Get("/tags", projects.ListTags)
        r.Get("/{slug}", projects.GetProject)
    })

    // Contact relay; /send.php keeps the legacy form action working.
    relay := contact.NewHandler(a.mailer,
        contact.Sender{To: a.cfg.Mail.To, From: a.cfg.Mail.From, FromName: a.cfg.Mail.FromName},
        contact.WithLimiter(contact.NewLimiter(a.cfg.Contact.RatePerMinute, a.cfg.Contact.RateBurst)),
        contact.WithMaxUpload(a.cfg.Contact.MaxUpload),
    )
    r.Handle("/send", relay)
    r.Handle("/send.php", relay)

    // Pages
    pages := handlers.NewPages(a.public, a.loader,
        handlers.WithPortfolio(a.store),
        handlers.WithMeta(site.DefaultMeta(a.cfg.Site.BaseURL, a.cfg.Mail.To)),
    )
    r.Group(func(r chi.Router) {
        r.Use(mw.CanonicalIndex)
        r.Use(mw.Locale)
        r.Get("/", pages.ServeHTTP)
        r.Get("/*", pages.ServeHTTP)
    })
    return r
}
