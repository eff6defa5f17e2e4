package config

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Listen struct {
	BindIp string `yaml:"bind_ip" env-default:"0.0.0.0"`
	Port   string `yaml:"port" env-default:"8000"`
}

type MongoConfig struct {
	Host     string `yaml:"host" env-default:"localhost"`
	Port     string `yaml:"port" env-default:"27017"`
	User     string `yaml:"user" env-default:""`
	Password string `yaml:"password" env-default:""`
	Database string `yaml:"database" env-default:"igc"`
}

type AuthConfig struct {
	Secret       string `yaml:"secret" env:"JWT_SECRET" env-default:""`
	CookieName   string `yaml:"cookie_name" env-default:"token"`
	TokenTTLMin  int    `yaml:"token_ttl_min" env-default:"60"`
	SecureCookie bool   `yaml:"secure_cookie" env-default:"true"`
}

type MailjetConfig struct {
	APIKeyPublic  string `yaml:"api_key_public" env:"MJ_APIKEY_PUBLIC" env-default:""`
	APIKeyPrivate string `yaml:"api_key_private" env:"MJ_APIKEY_PRIVATE" env-default:""`
	FromEmail     string `yaml:"from_email" env:"MJ_FROM_EMAIL" env-default:""`
	FromName      string `yaml:"from_name" env-default:"PCCOE IGC"`
}

type TelegramConfig struct {
	ApiKey string `yaml:"api_key" env-default:""`
	ChatId int64  `yaml:"chat_id" env-default:"0"`
}

type Config struct {
	Listen   Listen         `yaml:"listen"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Auth     AuthConfig     `yaml:"auth"`
	Mailjet  MailjetConfig  `yaml:"mailjet"`
	Telegram TelegramConfig `yaml:"telegram"`
	Env      string         `yaml:"env" env-default:"local"`
}

// TokenTTL is the session token and cookie lifetime.
func (a AuthConfig) TokenTTL() time.Duration {
	return time.Duration(a.TokenTTLMin) * time.Minute
}

var instance *Config
var once sync.Once

func MustLoad(path string) *Config {
	var err error
	once.Do(func() {
		instance = &Config{}
		if err = cleanenv.ReadConfig(path, instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			err = fmt.Errorf("config: %s; %s", err, desc)
			instance = nil
			log.Fatal(err)
		}
	})
	return instance
}
