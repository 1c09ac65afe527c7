package main

import (
	"os"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"StoreFront/internal/cart"
	"StoreFront/internal/catalog"
	"StoreFront/internal/storefront"
	"StoreFront/pkg/kit"
)

func main() {
	service := "storefront"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "8080")
	priceURL := getenv("PRICE_API_URL", "https://equalexperts.github.io/backend-take-home-test-data")

	taxRate, err := decimal.NewFromString(getenv("TAX_RATE", "0.125"))
	if err != nil {
		log.Fatal("invalid TAX_RATE", zap.Error(err))
	}

	products := catalog.NewCatalog()
	categories := catalog.NewCategories()
	carts := cart.NewRegistry(cart.NewPriceClient(priceURL), taxRate)

	h := storefront.NewHandler(
		&catalog.Server{Products: products, Categories: categories, Log: log},
		&cart.Server{Carts: carts, Log: log},
		storefront.HTTPDeps{
			Log:      log,
			Service:  service,
			Registry: prometheus.NewRegistry(),

			MetricsEnabled: getenv("METRICS_ENABLED", "") == "true",
			MetricsToken:   getenv("METRICS_TOKEN", ""),

			RateLimit:         getenvInt("RATE_LIMIT", 0),
			RateWindowSeconds: getenvInt("RATE_WINDOW_SECONDS", 60),
		},
	)

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
