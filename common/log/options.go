package log

type Option func(options *Options)

type Options struct {
	Name        string
	FilePath    string
	Level       string
	MaxSize     int
	MaxBackups  int
	MaxAge      int
	Compress    bool
	AddCaller   bool
	Development bool
}

func WithName(name string) Option {
	return func(o *Options) {
		o.Name = name
	}
}

// WithCaller 输出调用位置
func WithCaller() Option {
	return func(o *Options) {
		o.AddCaller = true
	}
}

// WithLevel 覆盖配置文件中的日志级别
func WithLevel(level string) Option {
	return func(o *Options) {
		o.Level = level
	}
}
