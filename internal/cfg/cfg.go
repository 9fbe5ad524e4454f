package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hsm-textlab/workbench/pkg/e"
	"github.com/hsm-textlab/workbench/pkg/logger"
	"github.com/jimlawless/whereami"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileEnv - переменная окружения с путем к необязательному TOML-файлу настроек.
const ConfigFileEnv = "TEXTLAB_CONFIG"

type Config struct {
	Backend *BackendCfg
	Http    *HTTPConfig
	Redis   *RedisCfg
	Db      *PGDBCfg
	Minio   *MinIOCfg
	Kafka   *KafkaCfg
	Log     *LogCfg
}

type BackendCfg struct {
	BaseURL           string        // Адрес бэкенда textlab (cherrypy)
	Timeout           time.Duration // 0 означает отсутствие таймаута
	DefaultSampleSize int           // n для clusterer/update, если поле формы пустое
	DefaultMethod     string        // метод понижения размерности по умолчанию
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type RedisCfg struct {
	Addr        string // пустой адрес отключает кэш графиков
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	PlotTTL     time.Duration
}

type PGDBCfg struct {
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string // пустое имя базы отключает журнал разметки
	SSLMode    string
	Migrations string
}

type MinIOCfg struct {
	MinioEndpoint     string // пустой адрес отключает экспорт графиков
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type KafkaCfg struct {
	Brokers []string // пустой список отключает публикацию событий
	Topic   string
}

type LogCfg struct {
	Level string
}

// Enabled сообщает, настроен ли Redis.
func (c *RedisCfg) Enabled() bool { return c != nil && c.Addr != "" }

// Enabled сообщает, настроен ли PostgreSQL.
func (c *PGDBCfg) Enabled() bool { return c != nil && c.DBName != "" }

// Enabled сообщает, настроен ли MinIO.
func (c *MinIOCfg) Enabled() bool { return c != nil && c.MinioEndpoint != "" }

// Enabled сообщает, настроена ли Kafka.
func (c *KafkaCfg) Enabled() bool { return c != nil && len(c.Brokers) > 0 }

// DSN собирает строку подключения к PostgreSQL.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// source отдает значения настроек: сначала переменные окружения, затем TOML-файл.
type source struct {
	file map[string]string
}

// Load безопасно загружает конфигурацию и возвращает ошибку в случае неудачи.
func Load(log logger.Logger) (*Config, error) {
	src, err := newSource(os.Getenv(ConfigFileEnv))
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return load(src, log)
}

func load(src *source, log logger.Logger) (*Config, error) {
	backend, err := src.loadBackendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	http, err := src.loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := src.loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := src.loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Backend: backend,
		Http:    http,
		Redis:   redis,
		Db:      src.loadPGDBCfg(),
		Minio:   minio,
		Kafka:   src.loadKafkaCfg(),
		Log:     &LogCfg{Level: src.getOrDefault("LOG_LEVEL", "info")},
	}, nil
}

// newSource читает TOML-файл, если путь задан. Ключ key секции [section]
// соответствует переменной окружения SECTION_KEY.
func newSource(path string) (*source, error) {
	src := &source{file: map[string]string{}}
	if path == "" {
		return src, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	flatten(src.file, "", doc)
	return src, nil
}

func flatten(dst map[string]string, prefix string, doc map[string]any) {
	for key, value := range doc {
		name := strings.ToUpper(key)
		if prefix != "" {
			name = prefix + "_" + name
		}

		switch v := value.(type) {
		case map[string]any:
			flatten(dst, name, v)
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			dst[name] = strings.Join(parts, ",")
		default:
			dst[name] = fmt.Sprint(v)
		}
	}
}

func (s *source) loadBackendCfg(log logger.Logger) (*BackendCfg, error) {
	const (
		defaultBaseURL    = "http://localhost:8080"
		defaultSampleSize = 500
		defaultMethod     = "FastICA"
	)

	timeout, err := s.parseDuration("BACKEND_TIMEOUT", 0)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_TIMEOUT")
		return nil, err
	}

	sampleSize, err := s.parseInt("PREVIEW_SAMPLE_SIZE", defaultSampleSize)
	if err != nil {
		log.Errorf(err, "invalid PREVIEW_SAMPLE_SIZE")
		return nil, e.Wrap("PREVIEW_SAMPLE_SIZE", err)
	}

	return &BackendCfg{
		BaseURL:           strings.TrimRight(s.getOrDefault("BACKEND_URL", defaultBaseURL), "/"),
		Timeout:           timeout,
		DefaultSampleSize: sampleSize,
		DefaultMethod:     s.getOrDefault("REDUCTION_METHOD", defaultMethod),
	}, nil
}

func (s *source) loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8090"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 5 * time.Minute // clusterer/update на большой выборке считается долго
		defaultIdleTimeout  = 60 * time.Second
	)

	readTimeout, err := s.parseDuration("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := s.parseDuration("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := s.parseDuration("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         s.getOrDefault("HTTP_PORT", defaultPort),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}, nil
}

func (s *source) loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultDB          = 0
		defaultMaxRetries  = 3
		defaultDialTimeout = 5 * time.Second
		defaultTimeout     = 3 * time.Second
		defaultPlotTTL     = 24 * time.Hour
	)

	db, err := s.parseInt("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := s.parseInt("REDIS_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid REDIS_MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := s.parseDuration("REDIS_DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DIAL_TIMEOUT")
		return nil, err
	}

	timeout, err := s.parseDuration("REDIS_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid REDIS_TIMEOUT")
		return nil, err
	}

	plotTTL, err := s.parseDuration("PLOT_TTL", defaultPlotTTL)
	if err != nil {
		log.Errorf(err, "invalid PLOT_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:        s.get("REDIS_ADDR"),
		Password:    s.get("REDIS_PASSWORD"),
		User:        s.get("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     timeout,
		PlotTTL:     plotTTL,
	}, nil
}

func (s *source) loadPGDBCfg() *PGDBCfg {
	const (
		defaultHost       = "localhost"
		defaultPort       = "5432"
		defaultSSLMode    = "disable"
		defaultMigrations = "file://db/migrations"
	)

	return &PGDBCfg{
		Host:       s.getOrDefault("POSTGRES_HOST", defaultHost),
		Port:       s.getOrDefault("POSTGRES_PORT", defaultPort),
		User:       s.get("POSTGRES_USER"),
		Password:   s.get("POSTGRES_PASSWORD"),
		DBName:     s.get("POSTGRES_DB"),
		SSLMode:    s.getOrDefault("SSL_MODE", defaultSSLMode),
		Migrations: s.getOrDefault("MIGRATIONS_URL", defaultMigrations),
	}
}

func (s *source) loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL = false
		defaultBucket = "textlab-plots"
	)

	useSSL, err := strconv.ParseBool(s.getOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     s.get("MINIO_ENDPOINT"),
		BucketName:        s.getOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     s.get("MINIO_ROOT_USER"),
		MinioRootPassword: s.get("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func (s *source) loadKafkaCfg() *KafkaCfg {
	const defaultTopic = "textlab.labels"

	var brokers []string
	for _, b := range strings.Split(s.get("KAFKA_BROKERS"), ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}

	return &KafkaCfg{
		Brokers: brokers,
		Topic:   s.getOrDefault("KAFKA_TOPIC", defaultTopic),
	}
}

// get возвращает значение переменной окружения, а если она не задана - значение из файла.
func (s *source) get(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return s.file[key]
}

// getOrDefault возвращает значение настройки или значение по умолчанию.
func (s *source) getOrDefault(key, defaultValue string) string {
	if value := s.get(key); value != "" {
		return value
	}

	return defaultValue
}

// parseDuration считывает длительность или возвращает значение по умолчанию.
func (s *source) parseDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := s.get(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func (s *source) parseInt(key string, defaultValue int) (int, error) {
	v := s.get(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
