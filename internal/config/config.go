package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is loaded from a YAML file and environment variables.
// Priority: ENV > YAML > env-default tags.
type Config struct {
	HTTPAddr string `yaml:"http_addr" env:"HTTP_ADDR" env-default:":8080"`

	DBDriver string `yaml:"db_driver" env:"DB_DRIVER" env-default:"sqlite"`
	DBDSN    string `yaml:"db_dsn" env:"DB_DSN" env-default:""`

	AuthSecret    string `yaml:"auth_secret" env:"AUTH_HMAC_SECRET" env-default:"supersecret-dev-key"`
	AdminUser     string `yaml:"admin_user" env:"ADMIN_USER" env-default:"admin"`
	AdminPassHash string `yaml:"admin_pass_hash" env:"ADMIN_PASS_HASH" env-default:"$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"`

	CORSOrigins []string `yaml:"cors_origins" env:"CORS_ORIGINS" env-default:"http://localhost:3000,http://localhost:3010"`

	// Printed on practice admit cards for mock exam applications.
	MockExamDate   string `yaml:"mock_exam_date" env:"MOCK_EXAM_DATE" env-default:""`
	MockExamCentre string `yaml:"mock_exam_centre" env:"MOCK_EXAM_CENTRE" env-default:"Online"`
}

// Load reads configuration from CONFIG_PATH (fallback "./config.yaml") and ENV.
// If the file does not exist and CONFIG_PATH was not set explicitly,
// configuration comes from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicit := path != ""
	if !explicit {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicit {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, fmt.Errorf("config: unsupported db driver %q", cfg.DBDriver)
	}
	return &cfg, nil
}
