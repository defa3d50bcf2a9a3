package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Redis   RedisConfig
	Storage StorageConfig
	Chrome  ChromeConfig
	Print   PrintConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	MaxConns    int
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

// JWTConfig configuración de JWT. Los tokens los emite otro servicio; aquí sólo se validan.
type JWTConfig struct {
	Secret string
	Issuer string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig almacén de estado (ajustes de rasterizado y repartos de bultos).
// Sin Addr se usa un almacén en memoria.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// StorageConfig archivo de PDFs exportados.
// Driver: "none", "fs" o "s3".
type StorageConfig struct {
	Driver      string
	Dir         string
	Bucket      string
	Region      string
	Endpoint    string // S3 compatible (MinIO); vacío = AWS
	AccessKeyID string
	SecretKey   string
}

// ChromeConfig navegador headless usado para rasterizar páginas.
type ChromeConfig struct {
	ExecPath    string // vacío = autodetección de chromedp
	NoSandbox   bool
	PageTimeout time.Duration
}

// PrintConfig valores por defecto de rasterizado cuando el usuario no tiene ajustes guardados.
type PrintConfig struct {
	DefaultScale      int
	DefaultQuality    int
	DefaultResolution int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, REDIS_ADDR, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-print"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventory_pro"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", "inventory-pro"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", ""),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "print:"),
		},
		Storage: StorageConfig{
			Driver:      getString(v, "STORAGE_DRIVER", "none"),
			Dir:         getString(v, "STORAGE_DIR", "./exports"),
			Bucket:      getString(v, "STORAGE_BUCKET", ""),
			Region:      getString(v, "STORAGE_REGION", "us-east-1"),
			Endpoint:    getString(v, "STORAGE_ENDPOINT", ""),
			AccessKeyID: getString(v, "STORAGE_ACCESS_KEY_ID", ""),
			SecretKey:   getString(v, "STORAGE_SECRET_ACCESS_KEY", ""),
		},
		Chrome: ChromeConfig{
			ExecPath:    getString(v, "CHROME_PATH", ""),
			NoSandbox:   getBool(v, "CHROME_NO_SANDBOX", true),
			PageTimeout: time.Duration(getInt(v, "CHROME_PAGE_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Print: PrintConfig{
			DefaultScale:      getInt(v, "PRINT_DEFAULT_SCALE", 2),
			DefaultQuality:    getInt(v, "PRINT_DEFAULT_QUALITY", 92),
			DefaultResolution: getInt(v, "PRINT_DEFAULT_RESOLUTION", 96),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Storage.Driver {
	case "none", "fs":
	case "s3":
		if c.Storage.Bucket == "" {
			return fmt.Errorf("config: STORAGE_BUCKET es obligatorio con STORAGE_DRIVER=s3")
		}
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	if c.Print.DefaultScale < 1 || c.Print.DefaultScale > 5 {
		return fmt.Errorf("config: PRINT_DEFAULT_SCALE fuera de rango (1-5): %d", c.Print.DefaultScale)
	}
	if c.Print.DefaultQuality < 1 || c.Print.DefaultQuality > 100 {
		return fmt.Errorf("config: PRINT_DEFAULT_QUALITY fuera de rango (1-100): %d", c.Print.DefaultQuality)
	}
	return nil
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
	if !v.IsSet(key) {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return b
}
