package config

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/bibliotek/library-api/pkg/auth"
	"github.com/bibliotek/library-api/pkg/kafka"
	"github.com/bibliotek/library-api/pkg/logger"
	"github.com/bibliotek/library-api/pkg/postgres"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"HTTP_HOST" default:"0.0.0.0"`
	Port         string        `yaml:"port" envconfig:"HTTP_PORT" default:"8080"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"30s"`
	WriteTimeout time.Duration
}

type Config struct {
	Server    HTTPServer   `yaml:"server"`
	Database  postgres.DB  `yaml:"db"`
	Auth      auth.Config  `yaml:"auth"`
	Kafka     kafka.Config `yaml:"kafka"`
	Log       logger.Log   `yaml:"log"`
	ExportDir string       `yaml:"exportDir" envconfig:"EXPORT_DIR" default:"exports"`
}

// NewConfig builds a config from options and the environment. Each call
// returns a fresh value.
func NewConfig(ops ...Option) *Config {
	var cfg Config
	for _, op := range ops {
		op(&cfg)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatal("NewConfig ", err)
	}
	printConfig(&cfg)
	return &cfg
}

func printConfig(cfg *Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}
