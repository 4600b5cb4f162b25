package world

import (
	"github.com/annel0/voxelworld/internal/logging"
)

// LogListener пишет все уведомления мира в лог на уровне Debug
type LogListener struct {
	logger *logging.Logger
}

// NewLogListener создаёт слушатель; nil означает логгер компонента world
func NewLogListener(logger *logging.Logger) *LogListener {
	if logger == nil {
		logger = logging.GetWorldLogger()
	}
	return &LogListener{logger: logger}
}

// OnEvent реализует Listener
func (l *LogListener) OnEvent(ev Event) {
	switch e := ev.(type) {
	case ChunkLoadedEvent:
		l.logger.Debug("[Events] %s %s digest=%016x", e.GetType(), e.Coords, e.Digest)
	case ChunkUnloadedEvent:
		l.logger.Debug("[Events] %s %s", e.GetType(), e.Coords)
	case BlockPlacedEvent:
		l.logger.Debug("[Events] %s %s %s texture=%s", e.GetType(), e.ID, e.Block, e.Texture)
	default:
		l.logger.Debug("[Events] %s", ev.GetType())
	}
}
