// Package game владеет всем состоянием симуляции и выполняет один кадр
// в фиксированном порядке: режим, инвентарь, движение, стриминг, клик, часы.
package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/annel0/voxelworld/internal/config"
	"github.com/annel0/voxelworld/internal/entity"
	"github.com/annel0/voxelworld/internal/gamemode"
	"github.com/annel0/voxelworld/internal/interaction"
	"github.com/annel0/voxelworld/internal/inventory"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/physics"
	"github.com/annel0/voxelworld/internal/vec"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/annel0/voxelworld/internal/world/terrain"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/prometheus/client_golang/prometheus"
)

// Frame ввод за один кадр
type Frame struct {
	Input    physics.Input
	ModeKey  int         // 1..4, 0 = без смены режима
	QuickAdd []string    // Предметы для быстрого добавления
	Click    bool        // Запрос взаимодействия, не больше одного за кадр
	Facing   *mgl64.Vec3 // Новое направление камеры, nil = без изменений
}

// StepReport что изменилось за кадр
type StepReport struct {
	Frame       uint64
	Mode        gamemode.Mode
	Rejected    []string // Быстрые добавления, не поместившиеся или неизвестные
	Reconcile   world.ReconcileResult
	Interaction *interaction.Result
}

// Simulation состояние одной сессии. Не потокобезопасна: Step вызывается
// из одного потока, остальные читают только Snapshot.
type Simulation struct {
	observer   *entity.Observer
	modes      *gamemode.Machine
	inventory  *inventory.Inventory
	registry   *block.Registry
	world      *world.StreamingManager
	resolver   *interaction.Resolver
	controller *physics.Controller

	clock  float64
	frames uint64

	logger *logging.Logger
}

// Option настраивает Simulation
type Option func(*options)

type options struct {
	listener   world.Listener
	registerer prometheus.Registerer
	logger     *logging.Logger
	spawn      mgl64.Vec3
}

// WithListener получатель событий мира и поставленных блоков
func WithListener(l world.Listener) Option {
	return func(o *options) { o.listener = l }
}

// WithRegisterer регистрирует метрики мира и взаимодействий
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) { o.registerer = reg }
}

// WithLogger заменяет логгер симуляции и резолвера; стриминг пишет в логгер world
func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSpawn задает начальную позицию наблюдателя
func WithSpawn(pos mgl64.Vec3) Option {
	return func(o *options) { o.spawn = pos }
}

// New собирает симуляцию из конфигурации
func New(cfg *config.Config, opts ...Option) (*Simulation, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.GetGameLogger()
	}

	gen, err := terrain.New(cfg.Terrain)
	if err != nil {
		return nil, fmt.Errorf("terrain: %w", err)
	}

	var (
		worldMetrics    *world.Metrics
		resolverMetrics *interaction.Metrics
	)
	if o.registerer != nil {
		worldMetrics = world.NewMetrics(o.registerer)
		resolverMetrics = interaction.NewMetrics(o.registerer)
	}

	registry := block.DefaultRegistry()
	s := &Simulation{
		observer:  entity.NewObserver(o.spawn),
		modes:     gamemode.NewMachine(),
		inventory: inventory.New(cfg.Inventory.MaxSlots),
		registry:  registry,
		world: world.NewStreamingManager(cfg.World, gen,
			world.WithListener(o.listener),
			world.WithMetrics(worldMetrics),
		),
		resolver: interaction.NewResolver(registry,
			interaction.WithListener(o.listener),
			interaction.WithMetrics(resolverMetrics),
			interaction.WithLogger(o.logger),
		),
		controller: physics.NewController(cfg.Movement),
		logger:     o.logger,
	}

	start, err := gamemode.Parse(cfg.Game.StartMode)
	if err != nil {
		return nil, fmt.Errorf("start mode: %w", err)
	}
	if start != s.modes.Current() {
		if err := s.modes.Switch(start); err != nil {
			return nil, err
		}
	}

	s.modes.OnEnter(func(from, to gamemode.Mode) {
		s.logger.Info("🎮 Режим: %s -> %s", from, to)
	})

	return s, nil
}

// Step выполняет один кадр. Ошибка возвращается только для клика с
// неизвестным предметом; остальной кадр к этому моменту уже применен.
func (s *Simulation) Step(frame Frame, dt float64) (StepReport, error) {
	s.frames++
	report := StepReport{Frame: s.frames}

	if frame.ModeKey != 0 {
		if mode, ok := gamemode.FromKey(frame.ModeKey); ok {
			// Валидный режим из FromKey переключается всегда
			_ = s.modes.Switch(mode)
		}
	}
	report.Mode = s.modes.Current()

	for _, itemID := range frame.QuickAdd {
		if err := s.inventory.AddKnown(s.registry, itemID); err != nil {
			if errors.Is(err, inventory.ErrInventoryFull) {
				s.logger.Info("🎒 Инвентарь заполнен, %s не добавлен", itemID)
			} else {
				s.logger.Warn("Быстрое добавление отклонено: %v", err)
			}
			report.Rejected = append(report.Rejected, itemID)
		}
	}

	if frame.Facing != nil {
		s.observer.SetFacing(*frame.Facing)
	}
	s.controller.Step(s.observer, report.Mode, frame.Input, dt)

	report.Reconcile = s.world.Reconcile(s.observer.Position)

	var clickErr error
	if frame.Click {
		if ray, err := interaction.FromObserver(s.observer); err == nil {
			res, err := s.resolver.ResolveClick(ray, s.world, s.inventory, report.Mode)
			if err != nil {
				clickErr = fmt.Errorf("click: %w", err)
			} else {
				report.Interaction = &res
			}
		}
	}

	if dt > 0 {
		s.clock += dt
	}
	return report, clickErr
}

// Sun позиция направленного источника света по часам симуляции
func (s *Simulation) Sun() mgl64.Vec3 {
	return SunAt(s.clock)
}

// SunAt позиция солнца в момент t: окружность радиуса 10 на высоте 10
func SunAt(t float64) mgl64.Vec3 {
	return mgl64.Vec3{math.Sin(t) * 10, 10, math.Cos(t) * 10}
}

// Observer наблюдатель (только для чтения между кадрами)
func (s *Simulation) Observer() *entity.Observer {
	return s.observer
}

// Modes машина режимов
func (s *Simulation) Modes() *gamemode.Machine {
	return s.modes
}

// Inventory инвентарь наблюдателя
func (s *Simulation) Inventory() *inventory.Inventory {
	return s.inventory
}

// World менеджер стриминга
func (s *Simulation) World() *world.StreamingManager {
	return s.world
}

// Resolver резолвер кликов
func (s *Simulation) Resolver() *interaction.Resolver {
	return s.resolver
}

// Clock накопленное время симуляции в секундах
func (s *Simulation) Clock() float64 {
	return s.clock
}

// Snapshot неизменяемая копия состояния
type Snapshot struct {
	Frame     uint64     `json:"frame"`
	Clock     float64    `json:"clock"`
	Mode      string     `json:"mode"`
	Switches  uint64     `json:"mode_switches"`
	Position  [3]float64 `json:"position"`
	Velocity  [3]float64 `json:"velocity"`
	Facing    [3]float64 `json:"facing"`
	Sun       [3]float64 `json:"sun"`
	Center    vec.Vec2   `json:"center"`
	Chunks    []vec.Vec2 `json:"chunks"`
	ChunkSize int        `json:"chunk_size"`
	Render    int        `json:"render_distance"`
	Inventory []string   `json:"inventory"`
	Capacity  int        `json:"capacity"`
	Full      bool       `json:"inventory_full"`
	Selected  int        `json:"selected"`
	Placed    int        `json:"placed"`
}

// Snapshot снимает копию состояния для отдачи вне потока симуляции
func (s *Simulation) Snapshot() Snapshot {
	center, _ := s.world.Center()
	return Snapshot{
		Frame:     s.frames,
		Clock:     s.clock,
		Mode:      s.modes.Current().String(),
		Switches:  s.modes.Switches(),
		Position:  s.observer.Position,
		Velocity:  s.observer.Velocity,
		Facing:    s.observer.Facing,
		Sun:       s.Sun(),
		Center:    center,
		Chunks:    s.world.Loaded(),
		ChunkSize: s.world.ChunkSize(),
		Render:    s.world.RenderDistance(),
		Inventory: s.inventory.Items(),
		Capacity:  s.inventory.Cap(),
		Full:      s.inventory.Full(),
		Selected:  s.inventory.SelectedIndex(),
		Placed:    len(s.resolver.Placed()),
	}
}
