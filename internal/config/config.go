package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig возвращается, если значения конфигурации вне допустимых границ
var ErrInvalidConfig = errors.New("invalid config")

// Config корневая структура конфигурации симуляции.
// Значения фиксируются при старте процесса.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Terrain   TerrainConfig   `yaml:"terrain"`
	Movement  MovementConfig  `yaml:"movement"`
	Inventory InventoryConfig `yaml:"inventory"`
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Game      GameConfig      `yaml:"game"`
}

// WorldConfig параметры сетки чанков и стриминга
type WorldConfig struct {
	ChunkSize      int `yaml:"chunk_size"`      // Размер ребра чанка в блоках
	RenderDistance int `yaml:"render_distance"` // Радиус загрузки (Чебышёв, в чанках)
	RetentionSlack int `yaml:"retention_slack"` // Дополнительный радиус до выгрузки
}

type TerrainConfig struct {
	Generator string  `yaml:"generator"` // "sine" или "perlin"
	Seed      int64   `yaml:"seed"`
	Amplitude float64 `yaml:"amplitude"`
	MinHeight int     `yaml:"min_height"`
	Scale     float64 `yaml:"scale"` // Масштаб координат для шума Перлина
}

type MovementConfig struct {
	Speed     float64 `yaml:"speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
	Gravity   float64 `yaml:"gravity"`
}

type InventoryConfig struct {
	MaxSlots int `yaml:"max_slots"`
}

type ServerConfig struct {
	HTTPPort int `yaml:"http_port"`
	TickRate int `yaml:"tick_rate"` // Кадров симуляции в секунду
}

// GameConfig параметры сессии
type GameConfig struct {
	StartMode string `yaml:"start_mode"` // survival | creative | adventure | spectator
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default возвращает конфигурацию по умолчанию
func Default() *Config {
	return &Config{
		World: WorldConfig{
			ChunkSize:      16,
			RenderDistance: 2,
			RetentionSlack: 1,
		},
		Terrain: TerrainConfig{
			Generator: "sine",
			Seed:      0,
			Amplitude: 10,
			MinHeight: 2,
			Scale:     0.05,
		},
		Movement: MovementConfig{
			Speed:     0.1,
			JumpSpeed: 0.2,
			Gravity:   0.01,
		},
		Inventory: InventoryConfig{
			MaxSlots: 10,
		},
		Server: ServerConfig{
			TickRate: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Game: GameConfig{
			StartMode: "survival",
		},
	}
}

// GetHTTPPort возвращает порт отладочного HTTP с поддержкой fallback значений
func (s *ServerConfig) GetHTTPPort() int {
	return getIntWithEnvFallback(s.HTTPPort, "VOXEL_HTTP_PORT", 2112)
}

// getIntWithEnvFallback возвращает значение с приоритетом: config -> env -> default
func getIntWithEnvFallback(configValue int, envVar string, defaultValue int) int {
	if configValue > 0 {
		return configValue
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if v, err := strconv.Atoi(envVal); err == nil && v > 0 {
			return v
		}
	}

	return defaultValue
}

// Load читает YAML файл конфигурации поверх значений по умолчанию.
// Если path == "", пытается прочитать путь из ENV VOXEL_CONFIG;
// если не задан и он, возвращает Default().
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("VOXEL_CONFIG")
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("чтение конфигурации %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор конфигурации %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv переопределяет параметры мира из переменных окружения
func (c *Config) applyEnv() error {
	overrides := []struct {
		env    string
		target *int
	}{
		{"VOXEL_CHUNK_SIZE", &c.World.ChunkSize},
		{"VOXEL_RENDER_DISTANCE", &c.World.RenderDistance},
		{"VOXEL_RETENTION_SLACK", &c.World.RetentionSlack},
		{"VOXEL_MAX_SLOTS", &c.Inventory.MaxSlots},
	}
	for _, o := range overrides {
		raw := os.Getenv(o.env)
		if raw == "" {
			continue
		}
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, o.env, raw, err)
		}
		*o.target = v
	}

	if raw := os.Getenv("VOXEL_SEED"); raw != "" {
		seed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("%w: VOXEL_SEED=%q: %v", ErrInvalidConfig, raw, err)
		}
		c.Terrain.Seed = seed
	}
	return nil
}

// Validate проверяет границы значений
func (c *Config) Validate() error {
	switch {
	case c.World.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size должен быть > 0, получено %d", ErrInvalidConfig, c.World.ChunkSize)
	case c.World.RenderDistance < 0:
		return fmt.Errorf("%w: render_distance должен быть >= 0, получено %d", ErrInvalidConfig, c.World.RenderDistance)
	case c.World.RetentionSlack < 0:
		return fmt.Errorf("%w: retention_slack должен быть >= 0, получено %d", ErrInvalidConfig, c.World.RetentionSlack)
	case c.Terrain.MinHeight < 2:
		return fmt.Errorf("%w: min_height должен быть >= 2, получено %d", ErrInvalidConfig, c.Terrain.MinHeight)
	case c.Inventory.MaxSlots <= 0:
		return fmt.Errorf("%w: max_slots должен быть > 0, получено %d", ErrInvalidConfig, c.Inventory.MaxSlots)
	case c.Movement.Speed < 0:
		return fmt.Errorf("%w: speed должен быть >= 0", ErrInvalidConfig)
	case c.Server.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate должен быть > 0, получено %d", ErrInvalidConfig, c.Server.TickRate)
	}
	return nil
}

// UnloadRadius возвращает расстояние, после которого чанк выгружается
func (w WorldConfig) UnloadRadius() int {
	return w.RenderDistance + w.RetentionSlack
}
