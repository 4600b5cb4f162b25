package interaction

import (
	"fmt"

	"github.com/annel0/voxelworld/internal/gamemode"
	"github.com/annel0/voxelworld/internal/inventory"
	"github.com/annel0/voxelworld/internal/logging"
	"github.com/annel0/voxelworld/internal/world"
	"github.com/annel0/voxelworld/internal/world/block"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Outcome исход обработки клика
type Outcome uint8

const (
	OutcomeNoHit       Outcome = iota // Луч ни во что не попал
	OutcomeNoSelection                // Попадание есть, но предмет не выбран
	OutcomePlaced                     // Блок поставлен
	OutcomeIgnored                    // Режим не меняет мир по клику
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoHit:
		return "no_hit"
	case OutcomeNoSelection:
		return "no_selection"
	case OutcomePlaced:
		return "placed"
	case OutcomeIgnored:
		return "ignored"
	default:
		return "unknown"
	}
}

// PlacedBlock свободный блок вне сетки чанков
type PlacedBlock struct {
	ID       uuid.UUID
	Position mgl64.Vec3
	Block    block.BlockType
	Item     string
}

// Result итог ResolveClick
type Result struct {
	Outcome Outcome
	Hit     Hit
	Placed  *PlacedBlock
}

// Resolver применяет клик к миру в зависимости от режима
type Resolver struct {
	registry    *block.Registry
	maxDistance float64
	placed      []PlacedBlock

	listener world.Listener
	metrics  *Metrics
	logger   *logging.Logger
}

// Option настраивает Resolver
type Option func(*Resolver)

// WithListener получатель BlockPlacedEvent
func WithListener(l world.Listener) Option {
	return func(r *Resolver) { r.listener = l }
}

// WithMetrics подключает метрики
func WithMetrics(m *Metrics) Option {
	return func(r *Resolver) { r.metrics = m }
}

// WithLogger заменяет логгер компонента
func WithLogger(l *logging.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// WithMaxDistance ограничивает дальность луча
func WithMaxDistance(d float64) Option {
	return func(r *Resolver) { r.maxDistance = d }
}

// NewResolver создаёт резолвер поверх реестра предметов
func NewResolver(registry *block.Registry, opts ...Option) *Resolver {
	r := &Resolver{registry: registry}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.GetGameLogger()
	}
	return r
}

// ResolveClick находит ближайший блок вдоль луча и применяет эффект режима.
// В творческом режиме на точке попадания появляется свободный блок из
// выбранного предмета; чанк при этом не меняется. Выживание зарезервировано
// под добычу и сейчас ничего не делает, как и приключение с наблюдателем.
func (r *Resolver) ResolveClick(ray Ray, view WorldView, inv *inventory.Inventory, mode gamemode.Mode) (Result, error) {
	hit, ok := Cast(ray, view, r.maxDistance)
	if !ok {
		return r.finish(Result{Outcome: OutcomeNoHit}), nil
	}

	itemID, selected := "", false
	if inv != nil {
		itemID, selected = inv.Selected()
	}
	if !selected {
		return r.finish(Result{Outcome: OutcomeNoSelection, Hit: hit}), nil
	}

	switch mode {
	case gamemode.Creative:
		def, known := r.registry.Lookup(itemID)
		if !known {
			return Result{Hit: hit}, fmt.Errorf("%w: %s", inventory.ErrUnknownItem, itemID)
		}
		pb := r.place(hit, def)
		return r.finish(Result{Outcome: OutcomePlaced, Hit: hit, Placed: &pb}), nil

	default:
		return r.finish(Result{Outcome: OutcomeIgnored, Hit: hit}), nil
	}
}

func (r *Resolver) place(hit Hit, def block.ItemDef) PlacedBlock {
	pb := PlacedBlock{
		ID:       uuid.New(),
		Position: hit.Point,
		Block:    def.Block,
		Item:     def.ID,
	}
	r.placed = append(r.placed, pb)

	r.logger.Debug("Поставлен %s в (%.2f, %.2f, %.2f), попадание в %v",
		def.ID, pb.Position.X(), pb.Position.Y(), pb.Position.Z(), hit.World)

	if r.listener != nil {
		r.listener.OnEvent(world.BlockPlacedEvent{
			ID:       pb.ID,
			Position: pb.Position,
			Block:    pb.Block,
			Texture:  def.Texture,
		})
	}
	return pb
}

func (r *Resolver) finish(res Result) Result {
	r.metrics.observe(res.Outcome, len(r.placed))
	return res
}

// Placed возвращает копию списка поставленных блоков
func (r *Resolver) Placed() []PlacedBlock {
	out := make([]PlacedBlock, len(r.placed))
	copy(out, r.placed)
	return out
}
