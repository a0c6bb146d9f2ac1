package config

import (
	"os"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/service"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/redis"
)

var config *Config

type Config struct {
	service.ServiceConf
	ListenOn string
	State    string
	Mongo    struct {
		URL string
		DB  string
	}
	Cache    cache.CacheConf
	Redis    *redis.RedisConf
	RabbitMQ RabbitMQ
	Groq     Groq
	Vision   Vision
}

type RabbitMQ struct {
	Url string
}

// Groq 大模型对话服务配置
type Groq struct {
	ApiKey string
	Url    string
	Model  string
}

// Vision 叶片识别模型服务配置
type Vision struct {
	Url string
}

func NewConfig() (*Config, error) {
	c := new(Config)
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "etc/config.yaml"
	}
	err := conf.Load(path, c)
	if err != nil {
		return nil, err
	}
	err = c.SetUp()
	if err != nil {
		return nil, err
	}
	config = c
	return c, nil
}

func GetConfig() *Config {
	return config
}
