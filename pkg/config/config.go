package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Agenda AgendaConfig
	AMQP   AMQPConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
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

// DSN arma la URL con la contraseña escapada.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

// JWTConfig verificación de tokens emitidos por el servicio de autenticación.
// Secret vacío desactiva la autenticación.
type JWTConfig struct {
	Secret string
	Issuer string
}

// Enabled indica si hay secreto configurado.
func (c JWTConfig) Enabled() bool { return c.Secret != "" }

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host             string
	Port             int
	CORSAllowOrigins string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AgendaConfig parámetros de generación y proyección de horarios.
type AgendaConfig struct {
	LookaheadDays  int
	DisplayMinutes int    // 0 = cada bloque dura su intervalo de generación
	ReplaceScope   string // "window" | "all"
	Timezone       string
}

// Replace scopes soportados.
const (
	ScopeWindow = "window"
	ScopeAll    = "all"
)

// AMQPConfig publicación de eventos de etapa. URL vacía desactiva la publicación.
type AMQPConfig struct {
	URL      string
	Exchange string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig()

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "flowboard-api"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "flowboard"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 10),
		},
		JWT: JWTConfig{
			Secret: getString(v, "JWT_SECRET", ""),
			Issuer: getString(v, "JWT_ISSUER", ""),
		},
		HTTP: HTTPConfig{
			Host:             getString(v, "HTTP_HOST", "0.0.0.0"),
			Port:             getInt(v, "HTTP_PORT", 8080),
			CORSAllowOrigins: getString(v, "CORS_ALLOW_ORIGINS", "*"),
		},
		Agenda: AgendaConfig{
			LookaheadDays:  getInt(v, "AGENDA_LOOKAHEAD_DAYS", 15),
			DisplayMinutes: getInt(v, "AGENDA_DISPLAY_MINUTES", 0),
			ReplaceScope:   strings.ToLower(getString(v, "AGENDA_REPLACE_SCOPE", ScopeWindow)),
			Timezone:       getString(v, "AGENDA_TIMEZONE", "America/Sao_Paulo"),
		},
		AMQP: AMQPConfig{
			URL:      getString(v, "AMQP_URL", ""),
			Exchange: getString(v, "AMQP_EXCHANGE", "ex.pipeline"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Agenda.ReplaceScope != ScopeWindow && c.Agenda.ReplaceScope != ScopeAll {
		return fmt.Errorf("config: AGENDA_REPLACE_SCOPE inválido %q (window|all)", c.Agenda.ReplaceScope)
	}
	if c.Agenda.LookaheadDays <= 0 {
		return fmt.Errorf("config: AGENDA_LOOKAHEAD_DAYS debe ser positivo")
	}
	if c.Agenda.DisplayMinutes < 0 {
		return fmt.Errorf("config: AGENDA_DISPLAY_MINUTES no puede ser negativo")
	}
	if c.DB.MaxConns <= 0 {
		c.DB.MaxConns = 10
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
