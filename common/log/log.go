package log

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogCfg struct {
	FilePath    string `mapstructure:"filePath"`    //日志文件路径
	Level       string `mapstructure:"logLevel"`    // 日志级别 debug info warn error
	MaxSize     int    `mapstructure:"maxSize"`     // 每个日志文件最大空间(单位：MB)
	MaxAge      int    `mapstructure:"maxAge"`      // 文件最多保留多少天
	MaxBackups  int    `mapstructure:"maxBackups"`  // 文件最多保留多少备份
	Compress    bool   `mapstructure:"compress"`    //是否压缩
	Development bool   `mapstructure:"development"` //开发模式同时输出到标准输出
}

// 未初始化前丢弃所有日志
var logger = zap.NewNop().Sugar()

func InitLogger(cfg LogCfg, options ...Option) {
	opts := Options{
		Name:        "ship-fault-report",
		FilePath:    cfg.FilePath,
		Level:       cfg.Level,
		MaxSize:     cfg.MaxSize,
		MaxBackups:  cfg.MaxBackups,
		MaxAge:      cfg.MaxAge,
		Compress:    cfg.Compress,
		Development: cfg.Development,
	}
	for _, o := range options {
		o(&opts)
	}
	logger = NewLogger(opts)
}

// NewLogger 控制台编码；配置了文件时写入 lumberjack，未配置文件或开发模式时写标准输出
func NewLogger(opts Options) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "linenum",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}

	atomicLevel, err := zap.ParseAtomicLevel(opts.Level)
	if err != nil {
		atomicLevel = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	var syncers []zapcore.WriteSyncer
	if opts.FilePath != "" {
		syncers = append(syncers, zapcore.AddSync(&lumberjack.Logger{
			Filename:   opts.FilePath,
			LocalTime:  true,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}))
	}
	if opts.Development || opts.FilePath == "" {
		syncers = append(syncers, zapcore.AddSync(os.Stdout))
	}

	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.NewMultiWriteSyncer(syncers...), atomicLevel)
	zapOpts := []zap.Option{zap.Fields(zap.String("service", opts.Name))}
	if opts.AddCaller {
		// 跳过本包一层，显示实际调用位置
		zapOpts = append(zapOpts, zap.AddCaller(), zap.AddCallerSkip(1))
	}
	if opts.Development {
		zapOpts = append(zapOpts, zap.Development())
	}
	return zap.New(core, zapOpts...).Sugar()
}

func Debugf(template string, args ...interface{}) {
	logger.Debugf(template, args...)
}

func Infof(template string, args ...interface{}) {
	logger.Infof(template, args...)
}

// Infow 结构化字段，keysAndValues 为交替的键和值
func Infow(msg string, keysAndValues ...interface{}) {
	logger.Infow(msg, keysAndValues...)
}

func Warnf(template string, args ...interface{}) {
	logger.Warnf(template, args...)
}

func Errorf(template string, args ...interface{}) {
	logger.Errorf(template, args...)
}

func Errorw(msg string, keysAndValues ...interface{}) {
	logger.Errorw(msg, keysAndValues...)
}

// Sync 退出前刷新缓冲
func Sync() error {
	return logger.Sync()
}
