package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Server holds API process settings. Every key can be overridden from the
// environment with a BACKTEST_ prefix, e.g. BACKTEST_SERVER_PORT=9090.
type Server struct {
	Server  ServerConfig  `mapstructure:"server"`
	Data    DataConfig    `mapstructure:"data"`
	Results ResultsConfig `mapstructure:"results"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	// Mode is the gin mode: debug, release or test.
	Mode string `mapstructure:"mode"`
	// StaticDir is served at / when it exists.
	StaticDir string `mapstructure:"static_dir"`
}

type DataConfig struct {
	ReturnsFile    string `mapstructure:"returns_file"`
	TimeframesFile string `mapstructure:"timeframes_file"`
	ScenarioDir    string `mapstructure:"scenario_dir"`
}

type ResultsConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	// RedisAddr switches result storage to redis when set.
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Addr is the listen address.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Server.Host, s.Server.Port)
}

// Defaults returns server settings that work out of the box.
func Defaults() *Server {
	return &Server{
		Server: ServerConfig{
			Host:      "0.0.0.0",
			Port:      8080,
			Mode:      "release",
			StaticDir: "./web/dist",
		},
		Data: DataConfig{
			ReturnsFile: "./data/historic.csv",
			ScenarioDir: "./examples/scenarios",
		},
		Results: ResultsConfig{
			TTL:           time.Hour,
			SweepInterval: 5 * time.Minute,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"*"},
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// LoadServer reads settings from path (optional) on top of Defaults, then
// applies environment overrides.
func LoadServer(path string) (*Server, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix("BACKTEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Server
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can see it.
func setDefaults(v *viper.Viper, d *Server) {
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.mode", d.Server.Mode)
	v.SetDefault("server.static_dir", d.Server.StaticDir)
	v.SetDefault("data.returns_file", d.Data.ReturnsFile)
	v.SetDefault("data.timeframes_file", d.Data.TimeframesFile)
	v.SetDefault("data.scenario_dir", d.Data.ScenarioDir)
	v.SetDefault("results.ttl", d.Results.TTL)
	v.SetDefault("results.sweep_interval", d.Results.SweepInterval)
	v.SetDefault("results.redis_addr", d.Results.RedisAddr)
	v.SetDefault("results.redis_password", d.Results.RedisPassword)
	v.SetDefault("results.redis_db", d.Results.RedisDB)
	v.SetDefault("cors.allowed_origins", d.CORS.AllowedOrigins)
	v.SetDefault("metrics.enabled", d.Metrics.Enabled)
	v.SetDefault("metrics.path", d.Metrics.Path)
	v.SetDefault("log.development", d.Log.Development)
}

func (s *Server) Validate() error {
	if s.Server.Port < 1 || s.Server.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", s.Server.Port)
	}
	switch s.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.mode must be debug, release or test, got %q", s.Server.Mode)
	}
	if s.Data.ReturnsFile == "" {
		return fmt.Errorf("data.returns_file is required")
	}
	if s.Results.TTL <= 0 {
		return fmt.Errorf("results.ttl must be > 0, got %s", s.Results.TTL)
	}
	if s.Results.RedisAddr == "" && s.Results.SweepInterval <= 0 {
		return fmt.Errorf("results.sweep_interval must be > 0, got %s", s.Results.SweepInterval)
	}
	if s.Metrics.Enabled && !strings.HasPrefix(s.Metrics.Path, "/") {
		return fmt.Errorf("metrics.path must start with /, got %q", s.Metrics.Path)
	}
	return nil
}
