package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/DedS3t/monopoly-auction/app/models"
	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload"
	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTPAddr       string   `env:"HTTP_ADDR" envDefault:":4101"`
	SocketAddr     string   `env:"SOCKET_ADDR" envDefault:":8000"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	JWTSecret      string   `env:"JWT_SECRET" envDefault:"secret"`

	DB struct {
		User     string `env:"DB_USER"`
		Addr     string `env:"DB_ADDR" envDefault:"localhost:5432"`
		Password string `env:"DB_PASSWORD"`
		Name     string `env:"DB_NAME"`
	}
	RedisURL string `env:"REDIS_URL" envDefault:"localhost:6379"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`

	RulesPath         string `env:"RULES_PATH"`
	SimulationGames   int    `env:"SIMULATION_GAMES" envDefault:"100"`
	SimulationWorkers int    `env:"SIMULATION_WORKERS"`
	SimulationSeed    int64  `env:"SIMULATION_SEED"`
}

// Load reads the process environment, after any .env file has been applied.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.SimulationGames <= 0 {
		return Config{}, fmt.Errorf("parse env: SIMULATION_GAMES must be positive, got %d", cfg.SimulationGames)
	}
	return cfg, nil
}

// LoadRules overlays a YAML rules file on the default rules. An empty path
// yields the defaults.
func LoadRules(path string) (models.Rules, error) {
	rules := models.DefaultRules()
	if path == "" {
		return rules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.Rules{}, fmt.Errorf("read rules: %w", err)
	}
	if err := yaml.Unmarshal(raw, &rules); err != nil {
		return models.Rules{}, fmt.Errorf("parse rules %s: %w", path, err)
	}
	if err := validateRules(rules); err != nil {
		return models.Rules{}, fmt.Errorf("rules %s: %w", path, err)
	}
	return rules, nil
}

func validateRules(r models.Rules) error {
	switch {
	case r.MaxTurns <= 1:
		return errors.New("max turns must be above 1")
	case r.ImprovementPool < 0:
		return errors.New("improvement pool cannot be negative")
	case r.MortgageRate <= 0 || r.MortgageRate > 1:
		return errors.New("mortgage rate must be in (0, 1]")
	case r.StartingMoney < 0 || r.CashBuffer < 0:
		return errors.New("money amounts cannot be negative")
	}
	return nil
}
