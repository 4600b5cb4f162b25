package logging

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel определяет уровни логирования
type LogLevel int

const (
	TRACE LogLevel = iota
	DEBUG
	INFO
	WARN
	ERROR
)

// String возвращает строковое представление уровня логирования
func (l LogLevel) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel разбирает уровень из строки конфигурации (регистр не важен)
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return TRACE, nil
	case "DEBUG":
		return DEBUG, nil
	case "", "INFO":
		return INFO, nil
	case "WARN", "WARNING":
		return WARN, nil
	case "ERROR":
		return ERROR, nil
	default:
		return INFO, fmt.Errorf("неизвестный уровень логирования %q", s)
	}
}

// Options параметры создания логгера
type Options struct {
	Level       LogLevel
	OutputPaths []string // По умолчанию stdout
}

// Logger представляет логгер компонента поверх zap
type Logger struct {
	sugar *zap.SugaredLogger

	mu       sync.RWMutex
	minLevel LogLevel
}

// NewLogger создает логгер для компонента
func NewLogger(component string, opts Options) (*Logger, error) {
	outputs := opts.OutputPaths
	if len(outputs) == 0 {
		outputs = []string{"stdout"}
	}

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")

	cfg := zap.Config{
		// Фильтрация по уровню выполняется в Logger, zap пропускает все от DEBUG
		Level:             zap.NewAtomicLevelAt(zap.DebugLevel),
		Development:       false,
		Encoding:          "console",
		EncoderConfig:     encoderCfg,
		OutputPaths:       outputs,
		ErrorOutputPaths:  []string{"stderr"},
		DisableCaller:     true,
		DisableStacktrace: true,
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("ошибка создания логгера %s: %w", component, err)
	}

	return &Logger{
		sugar:    zl.Named(component).Sugar(),
		minLevel: opts.Level,
	}, nil
}

// NewNop возвращает логгер, который ничего не пишет
func NewNop() *Logger {
	return &Logger{sugar: zap.NewNop().Sugar(), minLevel: ERROR + 1}
}

// SetLevel меняет минимальный уровень логгера
func (l *Logger) SetLevel(level LogLevel) {
	l.mu.Lock()
	l.minLevel = level
	l.mu.Unlock()
}

// Level возвращает текущий минимальный уровень
func (l *Logger) Level() LogLevel {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minLevel
}

// Enabled проверяет, будет ли записано сообщение указанного уровня
func (l *Logger) Enabled(level LogLevel) bool {
	return l != nil && level >= l.Level()
}

func (l *Logger) Trace(format string, args ...interface{}) {
	if l.Enabled(TRACE) {
		l.sugar.Debugf("[TRACE] "+format, args...)
	}
}

func (l *Logger) Debug(format string, args ...interface{}) {
	if l.Enabled(DEBUG) {
		l.sugar.Debugf(format, args...)
	}
}

func (l *Logger) Info(format string, args ...interface{}) {
	if l.Enabled(INFO) {
		l.sugar.Infof(format, args...)
	}
}

func (l *Logger) Warn(format string, args ...interface{}) {
	if l.Enabled(WARN) {
		l.sugar.Warnf(format, args...)
	}
}

func (l *Logger) Error(format string, args ...interface{}) {
	if l.Enabled(ERROR) {
		l.sugar.Errorf(format, args...)
	}
}

// Close сбрасывает буферы zap
func (l *Logger) Close() error {
	if l == nil {
		return nil
	}
	// Sync на stdout/stderr возвращает EINVAL на части платформ, это не ошибка
	_ = l.sugar.Sync()
	return nil
}

// === Логгер по умолчанию ===

var (
	defaultMu     sync.RWMutex
	defaultLogger *Logger
)

// InitDefaultLogger инициализирует логгер по умолчанию для пакетных функций
func InitDefaultLogger(component string) error {
	return InitDefaultLoggerWithOptions(component, Options{Level: INFO})
}

// InitDefaultLoggerWithOptions то же, что InitDefaultLogger, с явными параметрами
func InitDefaultLoggerWithOptions(component string, opts Options) error {
	logger, err := NewLogger(component, opts)
	if err != nil {
		return err
	}

	defaultMu.Lock()
	defaultLogger = logger
	defaultMu.Unlock()
	return nil
}

// CloseDefaultLogger закрывает логгер по умолчанию
func CloseDefaultLogger() {
	defaultMu.Lock()
	logger := defaultLogger
	defaultLogger = nil
	defaultMu.Unlock()

	if logger != nil {
		_ = logger.Close()
	}
}

func getDefault() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// До инициализации пакетные функции ничего не делают

func Trace(format string, args ...interface{}) { getDefault().Trace(format, args...) }
func Debug(format string, args ...interface{}) { getDefault().Debug(format, args...) }
func Info(format string, args ...interface{})  { getDefault().Info(format, args...) }
func Warn(format string, args ...interface{})  { getDefault().Warn(format, args...) }
func Error(format string, args ...interface{}) { getDefault().Error(format, args...) }
