package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

const (
	EnvPrefix = "luxemarket"

	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Store   StoreConfig
	JWT     JWTConfig
	Pricing PricingConfig
	Mock    MockConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"LUXEMARKET_APP_ENV" default:"dev"`
	Port         string `envconfig:"LUXEMARKET_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"LUXEMARKET_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"LUXEMARKET_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// StoreConfig locates the durable snapshot database. The storefront keeps all
// rehydratable client state (cart, auth, theme) in one sqlite file.
type StoreConfig struct {
	Path string `envconfig:"LUXEMARKET_STORE_PATH" default:"luxemarket.db"`
}

type JWTConfig struct {
	Secret            string `envconfig:"LUXEMARKET_JWT_SECRET" default:"local-dev-secret"`
	Issuer            string `envconfig:"LUXEMARKET_JWT_ISSUER" default:"luxemarket"`
	ExpirationMinutes int    `envconfig:"LUXEMARKET_JWT_EXPIRATION_MINUTES" default:"60"`
}

// PricingConfig carries the checkout policy constants. Defaults match the
// storefront's fixed policy: free shipping strictly above 100, flat 15 fee,
// 8% tax.
type PricingConfig struct {
	FreeShippingThreshold decimal.Decimal `envconfig:"LUXEMARKET_PRICING_FREE_SHIPPING_THRESHOLD" default:"100"`
	ShippingFee           decimal.Decimal `envconfig:"LUXEMARKET_PRICING_SHIPPING_FEE" default:"15"`
	TaxRate               decimal.Decimal `envconfig:"LUXEMARKET_PRICING_TAX_RATE" default:"0.08"`
}

func (p PricingConfig) validate() error {
	if p.ShippingFee.IsNegative() {
		return fmt.Errorf("shipping fee must be non-negative")
	}
	if p.TaxRate.IsNegative() {
		return fmt.Errorf("tax rate must be non-negative")
	}
	return nil
}

// MockConfig sets the artificial latency applied to the simulated network
// calls (login, order placement, coupon lookup).
type MockConfig struct {
	LoginDelay     time.Duration `envconfig:"LUXEMARKET_MOCK_LOGIN_DELAY" default:"1s"`
	PlacementDelay time.Duration `envconfig:"LUXEMARKET_MOCK_PLACEMENT_DELAY" default:"1500ms"`
	CouponDelay    time.Duration `envconfig:"LUXEMARKET_MOCK_COUPON_DELAY" default:"1s"`
}
