// Package config loads service configuration from flags and environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Default values
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultMaxUploadSize  = 5 * 1024 * 1024 // 5MB
	DefaultOCRLanguages   = "eng+tam"
	DefaultPopplerPath    = "pdftoppm"
	DefaultRasterDPI      = 300
	DefaultRequestsPerMin = 10
	DefaultLogLevel       = "info"
)

// Config holds all configuration for the extraction service.
type Config struct {
	// Server configuration
	Host string
	Port int

	// Pipeline configuration
	MaxUploadSize int64  // Maximum PDF upload size in bytes
	OCRLanguages  string // Tesseract languages, "+"-separated
	PopplerPath   string // pdftoppm binary name or absolute path
	RasterDPI     int    // Rasterization resolution for OCR fallback

	// Boundary configuration
	RequestsPerMinute int // Per-IP rate limit on /extract

	// Application configuration
	Version     string
	ServiceName string
	LogLevel    string
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:              DefaultHost,
		Port:              DefaultPort,
		MaxUploadSize:     DefaultMaxUploadSize,
		OCRLanguages:      DefaultOCRLanguages,
		PopplerPath:       DefaultPopplerPath,
		RasterDPI:         DefaultRasterDPI,
		RequestsPerMinute: DefaultRequestsPerMin,
		Version:           "1.0.0",
		ServiceName:       "aadhaar-extract",
		LogLevel:          DefaultLogLevel,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("AADHAAR")
	viper.AutomaticEnv()

	viper.SetDefault("host", cfg.Host)
	viper.SetDefault("port", cfg.Port)
	viper.SetDefault("maxuploadsize", cfg.MaxUploadSize)
	viper.SetDefault("ocrlanguages", cfg.OCRLanguages)
	viper.SetDefault("popplerpath", cfg.PopplerPath)
	viper.SetDefault("rasterdpi", cfg.RasterDPI)
	viper.SetDefault("ratelimit", cfg.RequestsPerMinute)
	viper.SetDefault("loglevel", cfg.LogLevel)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("host", cfg.Host, "Server host address")
	pflag.Int("port", cfg.Port, "Server port")
	pflag.Int64("maxuploadsize", cfg.MaxUploadSize, "Maximum PDF upload size in bytes")
	pflag.String("ocrlanguages", cfg.OCRLanguages, "Tesseract languages, '+'-separated (e.g. eng+tam)")
	pflag.String("popplerpath", cfg.PopplerPath, "pdftoppm binary name or absolute path")
	pflag.Int("rasterdpi", cfg.RasterDPI, "Rasterization DPI for the OCR fallback")
	pflag.Int("ratelimit", cfg.RequestsPerMinute, "Per-IP requests per minute on /extract")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("host", pflag.Lookup("host"))
	_ = viper.BindPFlag("port", pflag.Lookup("port"))
	_ = viper.BindPFlag("maxuploadsize", pflag.Lookup("maxuploadsize"))
	_ = viper.BindPFlag("ocrlanguages", pflag.Lookup("ocrlanguages"))
	_ = viper.BindPFlag("popplerpath", pflag.Lookup("popplerpath"))
	_ = viper.BindPFlag("rasterdpi", pflag.Lookup("rasterdpi"))
	_ = viper.BindPFlag("ratelimit", pflag.Lookup("ratelimit"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nAadhaar Extract - structured field extraction from Aadhaar card PDFs\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_HOST           Server host\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_PORT           Server port\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_MAXUPLOADSIZE  Maximum upload size in bytes\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_OCRLANGUAGES   Tesseract languages\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_POPPLERPATH    pdftoppm binary path\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_RASTERDPI      Rasterization DPI\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_RATELIMIT      Requests per minute per IP\n")
		fmt.Fprintf(os.Stderr, "  AADHAAR_LOGLEVEL       Log level\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Host = viper.GetString("host")
	cfg.Port = viper.GetInt("port")
	cfg.MaxUploadSize = viper.GetInt64("maxuploadsize")
	cfg.OCRLanguages = viper.GetString("ocrlanguages")
	cfg.PopplerPath = viper.GetString("popplerpath")
	cfg.RasterDPI = viper.GetInt("rasterdpi")
	cfg.RequestsPerMinute = viper.GetInt("ratelimit")
	cfg.LogLevel = viper.GetString("loglevel")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.MaxUploadSize <= 0 {
		return errors.New("maximum upload size must be positive")
	}
	if c.OCRLanguages == "" {
		return errors.New("OCR languages cannot be empty")
	}
	if c.PopplerPath == "" {
		return errors.New("poppler path cannot be empty")
	}
	if c.RasterDPI < 72 || c.RasterDPI > 1200 {
		return errors.New("raster DPI must be between 72 and 1200")
	}
	if c.RequestsPerMinute < 1 {
		return errors.New("rate limit must be at least 1 request per minute")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.LogLevel)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
