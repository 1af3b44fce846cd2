// Package config handles loading and parsing application configuration.
// It supports two sources for the file path (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/aanand-mishra/university/internal/university"
	"github.com/aanand-mishra/university/internal/validation"
)

// Config is the root configuration structure.
// Every scalar field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than to silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev" validate:"oneof=dev staging prod"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true" validate:"required"`

	// Payroll is the salary policy applied to every professor.
	// Nested under payroll: in the YAML file.
	Payroll Payroll `yaml:"payroll"`
}

// Payroll holds the inputs of the salary computation.
//
//	payroll:
//	  base_salary: {assistant: 70000, associate: 85000, full: 105000}
//	  department_multiplier: {computer science: 1.15}
//	  default_multiplier: 1.0
type Payroll struct {
	BaseSalary           map[string]float64 `yaml:"base_salary"           validate:"omitempty,dive,keys,oneof=assistant associate full,endkeys,gt=0"`
	DepartmentMultiplier map[string]float64 `yaml:"department_multiplier" validate:"omitempty,dive,keys,required,endkeys,gt=0"`
	DefaultMultiplier    float64            `yaml:"default_multiplier" env:"PAYROLL_DEFAULT_MULTIPLIER" env-default:"1" validate:"gt=0"`
}

// ErrNoConfigPath is returned when neither CONFIG_PATH nor --config is set.
var ErrNoConfigPath = errors.New("config path is not set: use --config flag or CONFIG_PATH env var")

// MustLoad reads, validates, and returns the application config.
//
// The name "MustLoad" follows a Go convention: functions prefixed with
// "Must" are allowed to panic/fatal on failure. Callers do not need to
// check a returned error — if this function returns, the config is valid.
//
// MustLoad calls flag.Parse, so any other flags must be registered first.
func MustLoad() *Config {
	// ── Source 1: environment variable ───────────────────────────────
	configPath := os.Getenv("CONFIG_PATH")

	// ── Source 2: command-line flag ───────────────────────────────────
	//   go run ./cmd/university --config=config/local.yaml courses
	flags := flag.String("config", "", "Path to the configuration YAML file")
	flag.Parse()
	if configPath == "" {
		configPath = *flags
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %s", err.Error())
	}
	return cfg
}

// Load reads the YAML file at path, applies env overrides and defaults, and
// validates the result.
func Load(path string) (*Config, error) {
	// Neither source provided a path — we cannot continue.
	if path == "" {
		return nil, ErrNoConfigPath
	}

	// Verify the file exists before trying to read it, for a clearer
	// message than a cryptic "open: no such file" later.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", path)
	}

	// cleanenv.ReadConfig reads the YAML file and populates the struct.
	// It also reads any env:"..." tagged fields from the environment,
	// and enforces env-required:"true" constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := validation.Validator().Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return nil, fmt.Errorf("invalid config: %s", strings.Join(validation.Messages(verrs), "; "))
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// SalaryPolicy layers the configured payroll over
// university.DefaultSalaryPolicy: listed ranks and departments override the
// defaults, everything else is kept.
func (p Payroll) SalaryPolicy() *university.SalaryPolicy {
	def := university.DefaultSalaryPolicy
	policy := &university.SalaryPolicy{
		BaseSalary:           make(map[university.Rank]float64, len(def.BaseSalary)),
		DepartmentMultiplier: make(map[string]float64, len(def.DepartmentMultiplier)+len(p.DepartmentMultiplier)),
		DefaultMultiplier:    p.DefaultMultiplier,
	}
	for r, v := range def.BaseSalary {
		policy.BaseSalary[r] = v
	}
	for r, v := range p.BaseSalary {
		policy.BaseSalary[university.Rank(r)] = v
	}
	for d, m := range def.DepartmentMultiplier {
		policy.DepartmentMultiplier[d] = m
	}
	for d, m := range p.DepartmentMultiplier {
		policy.DepartmentMultiplier[d] = m
	}
	if policy.DefaultMultiplier <= 0 {
		policy.DefaultMultiplier = def.DefaultMultiplier
	}
	return policy
}
