package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/wichananm65/ride-shop-client/internal/address"
	"github.com/wichananm65/ride-shop-client/internal/backend"
	"github.com/wichananm65/ride-shop-client/internal/banner"
	"github.com/wichananm65/ride-shop-client/internal/cart"
	"github.com/wichananm65/ride-shop-client/internal/category"
	"github.com/wichananm65/ride-shop-client/internal/config"
	"github.com/wichananm65/ride-shop-client/internal/domain/repository"
	"github.com/wichananm65/ride-shop-client/internal/infrastructure/database/inmemory"
	"github.com/wichananm65/ride-shop-client/internal/infrastructure/database/postgres"
	"github.com/wichananm65/ride-shop-client/internal/interface/http/handler"
	"github.com/wichananm65/ride-shop-client/internal/interface/http/router"
	"github.com/wichananm65/ride-shop-client/internal/interface/presenter"
	"github.com/wichananm65/ride-shop-client/internal/product"
	"github.com/wichananm65/ride-shop-client/internal/ride"
	"github.com/wichananm65/ride-shop-client/internal/usecase"
	"github.com/wichananm65/ride-shop-client/internal/user"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	kv, closeKV := openKVStore(ctx, cfg.DatabaseURL)
	defer closeKV()

	session, err := user.LoadSession(ctx, kv)
	if err != nil {
		log.Fatal("[MAIN] [ERROR] load session: ", err)
	}

	secret := cfg.SessionSecret
	if secret == "" {
		// tokens issued by this process stop working after a restart
		secret = uuid.NewString()
		log.Println("[MAIN] [WARN] SESSION_SECRET not set, using an ephemeral secret")
	}

	client := backend.NewClient(cfg.APIBaseURL, cfg.APITimeout, session, backend.WithProbeTimeout(cfg.ProbeTimeout))

	cartStore := cart.NewStore(cart.NewKVRepository(kv))
	if err := cartStore.Load(ctx); err != nil {
		log.Println("[MAIN] [WARN] starting with an empty cart:", err)
	}

	addressStore := address.NewStore(address.NewKVRepository(kv), client, session, session)
	if _, err := addressStore.FetchUserProfileForAddress(ctx); err != nil {
		log.Println("[MAIN] [WARN] address seed failed:", err)
	}

	session.OnLogout(func(ctx context.Context) {
		cartStore.Reset()
		addressStore.Reset()
	})

	productService := product.NewService(product.NewCachedRepository(client, cfg.CatalogTTL), cartStore)

	checkout := usecase.NewCheckoutService(cartStore, addressStore, session, client, usecase.CheckoutOptions{
		Probe:       cfg.CheckoutProbe,
		MaxAttempts: cfg.CheckoutMaxAttempts,
		RetryDelay:  cfg.CheckoutRetryDelay,
	})

	app := router.New(router.Handlers{
		User:     user.NewHandler(user.NewService(session, client), []byte(secret), cfg.SessionTTL),
		Cart:     cart.NewHandler(cartStore),
		Address:  address.NewHandler(addressStore),
		Product:  product.NewHandler(productService),
		Category: category.NewHandler(category.NewService(client)),
		Banner:   banner.NewHandler(banner.NewService(client)),
		Ride:     ride.NewHandler(ride.NewService(client, session)),
		Checkout: handler.NewCheckoutHandler(checkout, presenter.NewCheckoutPresenter(), cartStore.GetCartItemsCount),
	}, router.Options{
		SigningKey:  []byte(secret),
		CORSOrigins: cfg.CORSOrigins,
	})

	go func() {
		log.Printf("[MAIN] [INFO] session agent listening on %s, backend %s", cfg.Addr, cfg.APIBaseURL)
		if err := app.Listen(cfg.Addr); err != nil {
			log.Fatal("[MAIN] [ERROR] listen: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[MAIN] [INFO] shutting down")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Println("[MAIN] [WARN] shutdown:", err)
	}
}

// openKVStore uses Postgres when a DSN is configured and falls back to an
// in-process map otherwise.
func openKVStore(ctx context.Context, dsn string) (repository.KeyValueStore, func()) {
	if dsn == "" {
		log.Println("[MAIN] [INFO] DATABASE_URL not set, session data is kept in memory")
		return inmemory.NewKVStore(nil), func() {}
	}

	db, err := postgres.Open(ctx, dsn)
	if err != nil {
		log.Fatal("[MAIN] [ERROR] ", err)
	}
	store := postgres.NewKVStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		log.Fatal("[MAIN] [ERROR] ensure schema: ", err)
	}
	return store, func() { db.Close() }
}
