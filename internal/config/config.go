package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/Behyna/saldo-service/pkg/database"
	"github.com/Behyna/saldo-service/pkg/locker"
	"github.com/Behyna/saldo-service/pkg/mq"
	"github.com/Behyna/saldo-service/pkg/userdirectory"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API            API                  `mapstructure:"api"`
	Database       database.Config      `mapstructure:"database"`
	Redis          locker.RedisConfig   `mapstructure:"redis"`
	Locker         locker.Config        `mapstructure:"locker"`
	RabbitMQ       mq.Config            `mapstructure:"rabbitmq"`
	Reconciliation Reconciliation       `mapstructure:"reconciliation"`
	UserDirectory  userdirectory.Config `mapstructure:"user_directory"`
	Engine         Engine               `mapstructure:"engine"`
}

type API struct {
	Port        string `mapstructure:"port"`
	ServiceName string `mapstructure:"service_name"`
}

type Reconciliation struct {
	Queue     string        `mapstructure:"queue"`
	BatchSize int           `mapstructure:"batch_size"`
	Interval  time.Duration `mapstructure:"interval"`
	Prefetch  int           `mapstructure:"prefetch"`
}

type Engine struct {
	MaxTopupAmount      int64         `mapstructure:"max_topup_amount"`
	MaxTransferAmount   int64         `mapstructure:"max_transfer_amount"`
	CASRetries          int           `mapstructure:"cas_retries"`
	OperationTimeout    time.Duration `mapstructure:"operation_timeout"`
	CompensationTimeout time.Duration `mapstructure:"compensation_timeout"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.port", ":8080")
	v.SetDefault("api.service_name", "saldo-service")
	v.SetDefault("database.driver", database.DriverMySQL)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("locker.backend", "memory")
	v.SetDefault("locker.ttl", 10*time.Second)
	v.SetDefault("locker.retry_interval", 20*time.Millisecond)
	v.SetDefault("locker.prefix", "saldo:lock:")
	v.SetDefault("reconciliation.queue", "saldo.reconcile")
	v.SetDefault("reconciliation.batch_size", 100)
	v.SetDefault("reconciliation.interval", 30*time.Second)
	v.SetDefault("reconciliation.prefetch", 1)
	v.SetDefault("user_directory.backend", "database")
	v.SetDefault("user_directory.timeout", 5*time.Second)
	v.SetDefault("engine.max_topup_amount", 50000)
	v.SetDefault("engine.max_transfer_amount", 50000)
	v.SetDefault("engine.cas_retries", 5)
	v.SetDefault("engine.operation_timeout", 10*time.Second)
	v.SetDefault("engine.compensation_timeout", 10*time.Second)
}

func Load() (cfg *Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yml")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err = v.ReadInConfig()
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}

	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}
