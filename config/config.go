package config

import (
	"encoding/json"
	"os"
	"sync"
)

type Config struct {
	ListenPort        string `json:"listenPort"`
	DefaultFormat     string `json:"defaultFormat"`
	MappingFolderPath string `json:"mappingFolderPath"`
}

var (
	cfg Config
	mu  sync.RWMutex
)

const configFilePath = "./swout_config.json"

func applyDefaults(c Config) Config {
	if c.ListenPort == "" {
		c.ListenPort = "8080"
	}
	if c.DefaultFormat == "" {
		c.DefaultFormat = "xlsx"
	}
	return c
}

// LoadConfig は設定ファイルを読み込みます。ファイルが無い場合は既定値で
// 新しく作成します。読み込みに失敗してもメモリ上の設定は既定値に
// 初期化されるため、GetConfig は常に有効な値を返します。
func LoadConfig() (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	file, err := os.ReadFile(configFilePath)
	if err != nil {
		cfg = applyDefaults(Config{})
		if os.IsNotExist(err) {
			// 初回起動: 既定値で設定ファイルを作っておく
			if err := writeConfigFile(cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return cfg, err
	}

	var tempCfg Config
	if err := json.Unmarshal(file, &tempCfg); err != nil {
		cfg = applyDefaults(Config{})
		return cfg, err
	}
	cfg = applyDefaults(tempCfg)

	return cfg, nil
}

func writeConfigFile(c Config) error {
	file, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(configFilePath, file, 0644)
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
