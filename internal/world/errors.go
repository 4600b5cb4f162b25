package world

import "errors"

var (
	// ErrOutOfBounds обращение к локальной координате вне [0, size).
	// Это ошибка вызывающего кода, значение никогда не подрезается.
	ErrOutOfBounds = errors.New("chunk-local coordinate out of bounds")

	// ErrChunkNotLoaded чанк с указанной координатой сейчас не загружен
	ErrChunkNotLoaded = errors.New("chunk not loaded")

	// ErrInvalidBlock значение вне перечисления BlockType
	ErrInvalidBlock = errors.New("invalid block type")
)
