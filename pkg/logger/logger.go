// Package logger 基于zerolog的结构化日志
//
// 设计说明：
// 1. 全局Logger在init中以默认配置初始化，main里再按配置文件调用Init覆盖
// 2. 生产环境输出JSON（便于ELK/Loki检索），开发环境输出console格式
// 3. 字段化输出：logger.Info().Str("book_id", id).Msg("图书已创建")
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Config 日志配置（与config.LogConfig字段一一对应）
type Config struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

var (
	log zerolog.Logger
	mu  sync.RWMutex
)

func init() {
	log = build(Config{Level: "info", Format: "json"}, os.Stdout)
}

// Init 按配置初始化全局Logger
// Output为文件路径时以追加模式打开，返回的io.Closer由调用方在退出时关闭
func Init(cfg Config) (io.Closer, error) {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)

	switch strings.ToLower(cfg.Output) {
	case "", "stdout":
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("打开日志文件失败: %w", err)
		}
		out, closer = f, f
	}

	SetOutput(cfg, out)
	return closer, nil
}

// SetOutput 指定输出目标初始化Logger（测试中用bytes.Buffer捕获日志）
func SetOutput(cfg Config, w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	log = build(cfg, w)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func build(cfg Config, w io.Writer) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339

	if strings.ToLower(cfg.Format) == "console" {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	}

	ctx := zerolog.New(w).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.EnableCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// parseLevel 字符串 → zerolog.Level，未知值按info处理
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// L 返回全局Logger（值拷贝，可继续With()派生子Logger）
func L() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return log
}

// Debug 开始一条debug级别日志
func Debug() *zerolog.Event {
	l := L()
	return l.Debug()
}

// Info 开始一条info级别日志
func Info() *zerolog.Event {
	l := L()
	return l.Info()
}

// Warn 开始一条warn级别日志
func Warn() *zerolog.Event {
	l := L()
	return l.Warn()
}

// Error 开始一条error级别日志
func Error() *zerolog.Event {
	l := L()
	return l.Error()
}

// Fatal 记录日志后调用os.Exit(1)
func Fatal() *zerolog.Event {
	l := L()
	return l.Fatal()
}
