package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config 分析服务配置
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Dataset     DatasetConfig     `yaml:"dataset"`
	LLM         LLMConfig         `yaml:"llm"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
	DB          DBConfig          `yaml:"db"`
	Limits      LimitsConfig      `yaml:"limits"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	Timeout string `yaml:"timeout"`
}

// DatasetConfig Excel 数据集位置
type DatasetConfig struct {
	Path  string `yaml:"path"`
	Sheet string `yaml:"sheet"`
}

// LLMConfig LLM 相关配置，api_key 为空时使用规则生成的摘要
type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// DBConfig 数据库相关配置，host 为空时不记录查询日志
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig LLM 调用限流
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LimitsConfig 返回结果的条数限制
type LimitsConfig struct {
	MaxCompareAreas   int `yaml:"max_compare_areas"`
	TableRows         int `yaml:"table_rows"`
	CompareTableRows  int `yaml:"compare_table_rows"`
	CompareTableTotal int `yaml:"compare_table_total"`
}

// LoadConfig 从指定路径加载配置
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "0.0.0.0:8001"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.groq.com/openai/v1"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "llama-3.3-70b-versatile"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Limits.MaxCompareAreas <= 0 {
		c.Limits.MaxCompareAreas = 3
	}
	if c.Limits.TableRows <= 0 {
		c.Limits.TableRows = 20
	}
	if c.Limits.CompareTableRows <= 0 {
		c.Limits.CompareTableRows = 10
	}
	if c.Limits.CompareTableTotal <= 0 {
		c.Limits.CompareTableTotal = 30
	}
}
