package config

import (
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/collegeprep/CPS-AppointmentService/internal/domain"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// EnvDevelopment значение calendar.environment / APP_ENV для dev-окружения
const EnvDevelopment = "development"

type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Calendar      CalendarConfig      `toml:"calendar"`
	BusinessHours BusinessHoursConfig `toml:"business_hours"`
	Booking       BookingConfig       `toml:"booking"`
	Services      map[string]int      `toml:"services"`
	SMTP          SMTPConfig          `toml:"smtp"`
	Redis         RedisConfig         `toml:"redis"`
	RateLimit     RateLimitConfig     `toml:"rate_limit"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`

	// URL полная строка подключения (DATABASE_URL); если задана, остальные поля подключения игнорируются
	URL string `toml:"url"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type CalendarConfig struct {
	CalendarID          string `toml:"calendar_id"`
	CredentialsFile     string `toml:"credentials_file"`
	ServiceAccountEmail string `toml:"service_account_email"`
	PrivateKey          string `toml:"private_key"`
	TimeZone            string `toml:"timezone"`
	RequestTimeout      int    `toml:"request_timeout"` // секунды
	Environment         string `toml:"environment"`
	InviteAttendees     bool   `toml:"invite_attendees"`
}

type BusinessHoursConfig struct {
	Start int `toml:"start"`
	End   int `toml:"end"`
}

type BookingConfig struct {
	SlotGranularityMinutes int    `toml:"slot_granularity_minutes"`
	LeadDays               int    `toml:"lead_days"`
	DefaultServiceType     string `toml:"default_service_type"`
}

type SMTPConfig struct {
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	User       string `toml:"user"`
	Password   string `toml:"password"`
	From       string `toml:"from"`
	AdminEmail string `toml:"admin_email"`
	Timeout    int    `toml:"timeout"` // секунды, на всю отправку письма
}

type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	LockTTL  int    `toml:"lock_ttl"`  // секунды
	LockWait int    `toml:"lock_wait"` // секунды
}

type RateLimitConfig struct {
	Enabled bool    `toml:"enabled"`
	RPS     float64 `toml:"rps"`
	Burst   int     `toml:"burst"`

	// TrustedProxies адреса или CIDR балансировщиков, которым доверяется X-Forwarded-For
	TrustedProxies []string `toml:"trusted_proxies"`
}

// Load читает конфигурацию: значения по умолчанию -> TOML файл -> .env файлы -> переменные окружения
// Отсутствующий файл не является ошибкой: сервис можно настроить только через окружение
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			// Таблица [services] в файле заменяет каталог по умолчанию целиком
			defaultServices := cfg.Services
			cfg.Services = nil
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, fmt.Errorf("config: decode %s: %w", path, err)
			}
			if cfg.Services == nil {
				cfg.Services = defaultServices
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	if err := loadDotEnv(os.Getenv("APP_ENV")); err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	services := make(map[string]int, len(domain.DefaultServiceDurations))
	for serviceType, minutes := range domain.DefaultServiceDurations {
		services[string(serviceType)] = minutes
	}

	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "appointment-service",
		},
		Calendar: CalendarConfig{
			TimeZone:       domain.DefaultTimeZone,
			RequestTimeout: 10,
			Environment:    "production",
		},
		BusinessHours: BusinessHoursConfig{
			Start: domain.DefaultBusinessHoursStart,
			End:   domain.DefaultBusinessHoursEnd,
		},
		Booking: BookingConfig{
			SlotGranularityMinutes: domain.DefaultSlotGranularityMinutes,
			LeadDays:               domain.DefaultLeadDays,
			DefaultServiceType:     string(domain.DefaultServiceType),
		},
		Services: services,
		SMTP:     SMTPConfig{Port: 587, Timeout: 10},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			LockTTL:  30,
			LockWait: 5,
		},
		RateLimit: RateLimitConfig{RPS: 1, Burst: 5},
	}
}

// loadDotEnv подгружает .env файлы; уже заданные переменные окружения не перезаписываются,
// поэтому более специфичные файлы идут первыми
func loadDotEnv(appEnv string) error {
	var files []string
	if appEnv != "" {
		files = append(files, ".env."+appEnv+".local", ".env."+appEnv)
	}
	files = append(files, ".env.local", ".env")

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("%w: load %s: %v", ErrInvalidConfig, f, err)
		}
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Calendar.CalendarID, "GOOGLE_CALENDAR_ID")
	setString(&c.Calendar.ServiceAccountEmail, "GOOGLE_SERVICE_ACCOUNT_EMAIL")
	setString(&c.Calendar.CredentialsFile, "GOOGLE_CREDENTIALS_FILE")
	if key, ok := os.LookupEnv("GOOGLE_SERVICE_ACCOUNT_PRIVATE_KEY"); ok && key != "" {
		// В .env ключ обычно хранится в одну строку с экранированными переводами строк
		c.Calendar.PrivateKey = strings.ReplaceAll(key, `\n`, "\n")
	}
	setString(&c.Calendar.Environment, "APP_ENV")

	setString(&c.SMTP.User, "EMAIL_USER")
	setString(&c.SMTP.Password, "EMAIL_PASSWORD")
	setString(&c.SMTP.AdminEmail, "ADMIN_EMAIL")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")

	if err := setInt(&c.BusinessHours.Start, "BUSINESS_HOURS_START"); err != nil {
		return err
	}
	if err := setInt(&c.BusinessHours.End, "BUSINESS_HOURS_END"); err != nil {
		return err
	}
	if err := setInt(&c.Booking.LeadDays, "BOOKING_LEAD_DAYS"); err != nil {
		return err
	}

	// <SERVICE>_DURATION, например SAT_PREP_DURATION=90
	for name := range c.Services {
		minutes := c.Services[name]
		if err := setInt(&minutes, serviceDurationEnv(name)); err != nil {
			return err
		}
		c.Services[name] = minutes
	}

	return nil
}

// serviceDurationEnv имя переменной окружения для длительности услуги: sat-prep -> SAT_PREP_DURATION
func serviceDurationEnv(serviceType string) string {
	return strings.ToUpper(strings.ReplaceAll(serviceType, "-", "_")) + "_DURATION"
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not an integer", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}

// ParseTrustedProxy принимает адрес ("10.0.0.1") или подсеть ("10.0.0.0/8")
func ParseTrustedProxy(s string) (netip.Prefix, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "/") {
		prefix, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, fmt.Errorf("invalid CIDR %q: %w", s, err)
		}
		return prefix.Masked(), nil
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("invalid address %q: %w", s, err)
	}
	addr = addr.Unmap()
	return netip.PrefixFrom(addr, addr.BitLen()), nil
}

// TrustedProxyPrefixes разобранные rate_limit.trusted_proxies; вызывается после Validate
func (c *Config) TrustedProxyPrefixes() []netip.Prefix {
	prefixes := make([]netip.Prefix, 0, len(c.RateLimit.TrustedProxies))
	for _, proxy := range c.RateLimit.TrustedProxies {
		if prefix, err := ParseTrustedProxy(proxy); err == nil {
			prefixes = append(prefixes, prefix)
		}
	}
	return prefixes
}

// SMTPTimeout предел на одну отправку письма
func (c *Config) SMTPTimeout() time.Duration {
	return time.Duration(c.SMTP.Timeout) * time.Second
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	var problems []string

	if c.BusinessHours.Start < 0 || c.BusinessHours.End > 23 || c.BusinessHours.Start >= c.BusinessHours.End {
		problems = append(problems, fmt.Sprintf("business_hours: need 0 <= start < end < 24, got start=%d end=%d",
			c.BusinessHours.Start, c.BusinessHours.End))
	}
	if c.Booking.SlotGranularityMinutes <= 0 {
		problems = append(problems, "booking.slot_granularity_minutes must be positive")
	}
	if c.Booking.LeadDays < 0 || c.Booking.LeadDays > domain.MaxLeadDays {
		problems = append(problems, fmt.Sprintf("booking.lead_days must be in [0,%d]", domain.MaxLeadDays))
	}
	if len(c.Services) == 0 {
		problems = append(problems, "services: at least one service is required")
	}
	for name, minutes := range c.Services {
		if minutes <= 0 {
			problems = append(problems, fmt.Sprintf("services.%s: duration must be positive", name))
		}
	}
	if _, ok := c.Services[string(domain.NormalizeServiceType(c.Booking.DefaultServiceType))]; !ok && len(c.Services) > 0 {
		problems = append(problems, fmt.Sprintf("booking.default_service_type %q is not in services", c.Booking.DefaultServiceType))
	}
	if _, err := time.LoadLocation(c.Calendar.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("calendar.timezone %q: %v", c.Calendar.TimeZone, err))
	}
	if c.Calendar.CalendarID == "" {
		problems = append(problems, "calendar.calendar_id is required (GOOGLE_CALENDAR_ID)")
	}
	if c.Calendar.RequestTimeout <= 0 {
		problems = append(problems, "calendar.request_timeout must be positive")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		problems = append(problems, "redis.addr is required when redis is enabled")
	}
	if c.Redis.LockTTL <= 0 || c.Redis.LockWait <= 0 {
		problems = append(problems, "redis.lock_ttl and redis.lock_wait must be positive")
	}
	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		problems = append(problems, "rate_limit: rps and burst must be positive")
	}
	for _, proxy := range c.RateLimit.TrustedProxies {
		if _, err := ParseTrustedProxy(proxy); err != nil {
			problems = append(problems, fmt.Sprintf("rate_limit.trusted_proxies: %v", err))
		}
	}
	if c.SMTP.Enabled && c.SMTP.Timeout <= 0 {
		problems = append(problems, "smtp.timeout must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// IsDevelopment true для dev-окружения (события и письма помечаются как тестовые)
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Calendar.Environment, EnvDevelopment) || strings.EqualFold(c.Calendar.Environment, "dev")
}

// Location часовой пояс бизнеса; вызывать после Validate
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Calendar.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) CalendarTimeout() time.Duration {
	return time.Duration(c.Calendar.RequestTimeout) * time.Second
}

func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Redis.LockTTL) * time.Second
}

func (c *Config) LockWait() time.Duration {
	return time.Duration(c.Redis.LockWait) * time.Second
}
