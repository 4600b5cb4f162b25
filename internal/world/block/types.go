package block

// BlockType представляет материал одной ячейки вокселя
type BlockType uint8

// Константы типов блоков. Air должен оставаться нулевым значением:
// пустой чанк состоит из воздуха.
const (
	Air BlockType = iota
	Stone
	Dirt
	Grass
	Sand
	Wood
	Water

	blockTypeCount // всегда последний
)

// String возвращает строковое представление типа блока
func (t BlockType) String() string {
	switch t {
	case Air:
		return "air"
	case Stone:
		return "stone"
	case Dirt:
		return "dirt"
	case Grass:
		return "grass"
	case Sand:
		return "sand"
	case Wood:
		return "wood"
	case Water:
		return "water"
	default:
		return "unknown"
	}
}

// Valid проверяет, что значение входит в перечисление
func (t BlockType) Valid() bool {
	return t < blockTypeCount
}

// IsSolid возвращает true для всех блоков, кроме воздуха.
// Воздух не участвует в пересечении луча и не передается рендеру.
func (t BlockType) IsSolid() bool {
	return t != Air && t.Valid()
}
