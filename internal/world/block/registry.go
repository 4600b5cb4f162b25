package block

import (
	"fmt"
	"sort"
)

// TextureHandle непрозрачная ссылка на текстуру. Загрузкой и владением
// занимается рендер, ядро только передает ссылку дальше.
type TextureHandle string

// ItemDef описывает предмет инвентаря, который можно поставить как блок
type ItemDef struct {
	ID      string        // Идентификатор предмета (например, "wood_block")
	Name    string        // Отображаемое имя
	Block   BlockType     // Материал ставимого блока
	Texture TextureHandle // Текстура для рендера
}

// Registry хранит описания предметов. Создается явно и передается владельцу
// состояния симуляции, глобального экземпляра нет.
type Registry struct {
	items map[string]ItemDef
}

// NewRegistry создает пустой реестр предметов
func NewRegistry() *Registry {
	return &Registry{items: make(map[string]ItemDef)}
}

// DefaultRegistry возвращает реестр со стандартным набором блоков
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, def := range []ItemDef{
		{ID: "grass_block", Name: "Grass Block", Block: Grass},
		{ID: "dirt_block", Name: "Dirt Block", Block: Dirt},
		{ID: "stone_block", Name: "Stone Block", Block: Stone},
		{ID: "wood_block", Name: "Wood Block", Block: Wood},
		{ID: "sand_block", Name: "Sand Block", Block: Sand},
	} {
		def.Texture = TextureFor(def.Block)
		// Стандартный набор заведомо корректен
		_ = r.Register(def)
	}
	return r
}

// Register добавляет описание предмета в реестр
func (r *Registry) Register(def ItemDef) error {
	if def.ID == "" {
		return fmt.Errorf("пустой идентификатор предмета")
	}
	if !def.Block.IsSolid() {
		return fmt.Errorf("предмет %s: недопустимый тип блока %d", def.ID, def.Block)
	}
	if _, exists := r.items[def.ID]; exists {
		return fmt.Errorf("предмет %s уже зарегистрирован", def.ID)
	}
	r.items[def.ID] = def
	return nil
}

// Lookup возвращает описание предмета по идентификатору
func (r *Registry) Lookup(id string) (ItemDef, bool) {
	def, exists := r.items[id]
	return def, exists
}

// IDs возвращает отсортированный список идентификаторов
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.items))
	for id := range r.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// TextureFor возвращает ссылку на текстуру для типа блока
func TextureFor(t BlockType) TextureHandle {
	if !t.IsSolid() {
		return ""
	}
	return TextureHandle("textures/" + t.String() + ".png")
}

// Contains проверяет наличие предмета; позволяет передавать реестр
// в инвентарь как каталог
func (r *Registry) Contains(id string) bool {
	_, exists := r.items[id]
	return exists
}
