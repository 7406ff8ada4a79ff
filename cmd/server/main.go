package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
	"github.com/joho/godotenv"

	"github.com/danishansari-dev/scrunchcreate/internal/catalog"
	"github.com/danishansari-dev/scrunchcreate/internal/config"
	"github.com/danishansari-dev/scrunchcreate/internal/filter"
	"github.com/danishansari-dev/scrunchcreate/internal/handlers"
	"github.com/danishansari-dev/scrunchcreate/internal/repository"
	"github.com/danishansari-dev/scrunchcreate/internal/store"
)

func main() {
	// Configure slog as early as possible in main.
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded .env file")
	}

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Load the catalog. Prefer the generated products.json; fall back to
	// scanning the image tree directly so a fresh checkout still serves.
	products, err := catalog.LoadJSON(cfg.CatalogPath)
	if err != nil {
		slog.Error("Failed to read catalog", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	if len(products) == 0 {
		slog.Info("Catalog file empty or missing, scanning image tree", "dir", cfg.ProductsDir)
		products, err = catalog.NewBuilder(cfg.ProductsDir).Build()
		if err != nil {
			slog.Error("Failed to build catalog", "error", err)
			os.Exit(1)
		}
	}
	repo := repository.New(products)
	engine := filter.NewEngine(repo.GetAll())
	slog.Info("Catalog loaded", "products", repo.Len(), "categories", len(repo.Categories()))

	// 4. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 5. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("mulInt", func(a, b int) int { return a * b })
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 6. Setup Handlers
	shopHandler := &handlers.ShopHandler{
		Repo:         repo,
		Engine:       engine,
		KV:           db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	cartHandler := &handlers.CartHandler{
		Repo:         repo,
		KV:           db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	wishlistHandler := &handlers.WishlistHandler{
		Repo:         repo,
		KV:           db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	accountHandler := &handlers.AccountHandler{
		KV:           db,
		Templates:    templates,
		SessionStore: sessionStore,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		KV:             db,
		Orders:         db,
		Templates:      templates,
		SessionStore:   sessionStore,
		WhatsAppNumber: cfg.WhatsAppNumber,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir(cfg.PublicDir))
	mux.Handle("/assets/", fileServer)

	// Rate limiter for write endpoints that do expensive or abusable work.
	rateLimiter := handlers.NewRateLimiter(2 * time.Second)

	// Shop
	mux.HandleFunc("GET /{$}", shopHandler.Home)
	mux.HandleFunc("GET /products", shopHandler.Products)
	mux.HandleFunc("GET /products/{slug}", shopHandler.ProductDetail)

	// Cart
	mux.HandleFunc("GET /cart", cartHandler.View)
	mux.HandleFunc("POST /cart/add", cartHandler.Add)
	mux.HandleFunc("POST /cart/update", cartHandler.Update)
	mux.HandleFunc("POST /cart/remove", cartHandler.Remove)

	// Wishlist
	mux.HandleFunc("GET /wishlist", wishlistHandler.View)
	mux.HandleFunc("POST /wishlist/toggle", wishlistHandler.Toggle)

	// Account
	mux.HandleFunc("GET /signup", accountHandler.SignUpForm)
	mux.HandleFunc("POST /signup", rateLimiter.Middleware(accountHandler.SignUp))
	mux.HandleFunc("GET /signin", accountHandler.SignInForm)
	mux.HandleFunc("POST /signin", rateLimiter.Middleware(accountHandler.SignIn))
	mux.HandleFunc("POST /signout", accountHandler.SignOut)

	// Checkout
	mux.HandleFunc("GET /checkout", checkoutHandler.Form)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.Submit))

	// 7. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 8. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
