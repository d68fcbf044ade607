package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	HerdDB HerdDBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Redis  RedisConfig
	Orders OrdersConfig
	Jobs   JobsConfig
	Issuer IssuerConfig
	NodeID int64 // nodo snowflake para numeración de documentos
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	DocsPath string // swagger.json alternativo para /docs; vacío = el generado en el paquete docs
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL    string
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConns       int
	AcquireTimeout time.Duration // tiempo máximo de espera por una conexión libre del pool
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HerdDBConfig configuración del almacén MySQL del módulo de hato (vacas, leche, sanidad, alimento).
// DSN vacío deshabilita el módulo.
type HerdDBConfig struct {
	DSN      string
	MaxConns int
}

// Enabled indica si el módulo de hato tiene base de datos configurada.
func (c HerdDBConfig) Enabled() bool { return c.DSN != "" }

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host            string
	Port            int
	CORSOrigin      string
	RateLimitMax    int
	RateLimitWindow time.Duration
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig configuración de Redis (llaves de idempotencia). Address vacío = sin idempotencia.
type RedisConfig struct {
	Address        string
	Password       string
	DB             int
	IdempotencyTTL time.Duration
}

// OrdersConfig reglas del ciclo de vida de pedidos.
type OrdersConfig struct {
	TaxRate           decimal.Decimal
	StrictTransitions bool
}

// JobsConfig tareas programadas (expresiones cron/v3).
type JobsConfig struct {
	Enabled      bool
	Location     string
	OverdueSpec  string
	LowStockSpec string
}

// IssuerConfig datos del emisor impresos en facturas (PDF y XML).
type IssuerConfig struct {
	Name    string
	TaxID   string
	Address string
	Phone   string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, DB_PORT, JWT_SECRET, etc.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo .env en el directorio actual
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	// También intenta config.env
	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.MergeInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	taxRate, err := decimal.NewFromString(getString(v, "ORDER_TAX_RATE", "0.20"))
	if err != nil {
		return nil, fmt.Errorf("ORDER_TAX_RATE inválido: %w", err)
	}
	if taxRate.IsNegative() || taxRate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, fmt.Errorf("ORDER_TAX_RATE fuera de rango [0,1]: %s", taxRate)
	}

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "dairy-farm-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			DocsPath: getString(v, "DOCS_PATH", ""),
		},
		DB: DBConfig{
			DatabaseURL:    getString(v, "DATABASE_URL", ""),
			Host:           getString(v, "DB_HOST", "localhost"),
			Port:           getInt(v, "DB_PORT", 5432),
			User:           getString(v, "DB_USER", "postgres"),
			Password:       getString(v, "DB_PASSWORD", ""),
			DBName:         getString(v, "DB_NAME", "dairy_farm"),
			SSLMode:        getString(v, "DB_SSLMODE", "disable"),
			MaxConns:       getInt(v, "DB_MAX_CONNS", 10),
			AcquireTimeout: time.Duration(getInt(v, "DB_ACQUIRE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		HerdDB: HerdDBConfig{
			DSN:      getString(v, "HERD_DB_DSN", ""),
			MaxConns: getInt(v, "HERD_DB_MAX_CONNS", 5),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "dairy-farm-api"),
		},
		HTTP: HTTPConfig{
			Host:            getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:            getInt(v, "HTTP_PORT", 8080),
			CORSOrigin:      getString(v, "CORS_ORIGIN", "*"),
			RateLimitMax:    getInt(v, "RATE_LIMIT_MAX", 100),
			RateLimitWindow: time.Duration(getInt(v, "RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
		Redis: RedisConfig{
			Address:        getString(v, "REDIS_ADDRESS", ""),
			Password:       getString(v, "REDIS_PASSWORD", ""),
			DB:             getInt(v, "REDIS_DB", 0),
			IdempotencyTTL: time.Duration(getInt(v, "IDEMPOTENCY_TTL_HOURS", 24)) * time.Hour,
		},
		Orders: OrdersConfig{
			TaxRate:           taxRate,
			StrictTransitions: getBool(v, "ORDER_STRICT_TRANSITIONS", true),
		},
		Jobs: JobsConfig{
			Enabled:      getBool(v, "JOBS_ENABLED", true),
			Location:     getString(v, "JOBS_LOCATION", "UTC"),
			OverdueSpec:  getString(v, "JOBS_OVERDUE_SPEC", "@daily"),
			LowStockSpec: getString(v, "JOBS_LOW_STOCK_SPEC", "@every 1h"),
		},
		Issuer: IssuerConfig{
			Name:    getString(v, "ISSUER_NAME", "Lácteos La Pradera"),
			TaxID:   getString(v, "ISSUER_TAX_ID", ""),
			Address: getString(v, "ISSUER_ADDRESS", ""),
			Phone:   getString(v, "ISSUER_PHONE", ""),
		},
		NodeID: int64(getInt(v, "NODE_ID", 1)),
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
		if err != nil {
			return def
		}
		return b
	}
	return def
}
