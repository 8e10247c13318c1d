package app

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Secrets описывает YAML-документ с параметрами подключения к базе.
//
//	database:
//	  host: localhost
//	  port: 5432
//	  database: backoffice
//	  user: backoffice
//	  password: secret
//	  sslmode: disable
type Secrets struct {
	Database DatabaseSecrets `yaml:"database"`
}

type DatabaseSecrets struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// LoadSecrets читает файл секретов.
func LoadSecrets(path string) (Secrets, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Secrets{}, fmt.Errorf("read secrets file: %w", err)
	}

	var secrets Secrets
	if err := yaml.Unmarshal(data, &secrets); err != nil {
		return Secrets{}, fmt.Errorf("parse secrets file %s: %w", path, err)
	}
	return secrets, nil
}

// DSN собирает строку подключения PostgreSQL. Порт по умолчанию 5432, sslmode по умолчанию disable.
func (d DatabaseSecrets) DSN() (string, error) {
	if d.Host == "" || d.Database == "" || d.User == "" {
		return "", errors.New("database host, database and user are required")
	}

	port := d.Port
	if port == 0 {
		port = 5432
	}
	sslmode := d.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(port)),
		Path:     "/" + d.Database,
		RawQuery: url.Values{"sslmode": {sslmode}}.Encode(),
	}
	if d.Password == "" {
		u.User = url.User(d.User)
	}
	return u.String(), nil
}

// resolvePostgresDSN отдаёт явный DSN, иначе собирает его из файла секретов.
func resolvePostgresDSN(cfg Config) (string, error) {
	if cfg.PostgresDSN != "" {
		return cfg.PostgresDSN, nil
	}
	if cfg.SecretsFile == "" {
		return "", errors.New("postgres storage requires BACKOFFICE_POSTGRES_DSN or BACKOFFICE_SECRETS_FILE")
	}

	secrets, err := LoadSecrets(cfg.SecretsFile)
	if err != nil {
		return "", err
	}
	dsn, err := secrets.Database.DSN()
	if err != nil {
		return "", fmt.Errorf("secrets file %s: %w", cfg.SecretsFile, err)
	}
	return dsn, nil
}
