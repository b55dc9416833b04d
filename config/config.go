package config

import (
	"os"
	"strings"
	"sync"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

var (
	//配置文件信息
	cfgPath string = "./config/"
	cfgName string = "config"
	cfgType string = "yaml"
	//服务版本路径
	versionPath string = "./VERSION"

	envPrefix = "SFR"

	mu   sync.RWMutex
	gCfg *GlobalCfg
	vp   *viper.Viper
)

const (
	ReleaseMode string = "release"
	DebugMode   string = "debug"

	StoreCSV    = "csv"
	StoreXLSX   = "xlsx"
	StoreMysql  = "mysql"
	StoreSqlite = "sqlite"
)

type GlobalCfg struct {
	App        AppCfg        `mapstructure:"app"`
	Log        log.LogCfg    `mapstructure:"log"`
	HttpServer HttpServerCfg `mapstructure:"server"`
	Store      StoreCfg      `mapstructure:"store"`
	Mysql      MysqlCfg      `mapstructure:"mysql"`
	Sqlite     SqliteCfg     `mapstructure:"sqlite"`
	Redis      RedisCfg      `mapstructure:"redis"`
	Kafka      KafkaCfg      `mapstructure:"kafka"`
	Auth       AuthCfg       `mapstructure:"auth"`
	Report     ReportCfg     `mapstructure:"report"`
}

// application config
type AppCfg struct {
	Mode    string `mapstructure:"mode"`    // 启动模式 : release，debug
	Version string `mapstructure:"version"` // 应用版本
}

// http server config
type HttpServerCfg struct {
	RunMode      string `mapstructure:"runMode"`
	Addr         int    `mapstructure:"httpPort"`
	ReadTimeout  int    `mapstructure:"readTimeout"`  // 秒
	WriteTimeout int    `mapstructure:"writeTimeout"` // 秒
}

// StoreCfg 报告存储，type 为 csv / xlsx / mysql / sqlite
type StoreCfg struct {
	Type  string `mapstructure:"type"`
	Path  string `mapstructure:"path"`  // csv / xlsx 文件路径
	Sheet string `mapstructure:"sheet"` // xlsx 工作表名
}

// db config
type MysqlCfg struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
}

type SqliteCfg struct {
	Path string `mapstructure:"path"` // ":memory:" 仅用于测试
}

// RedisCfg 未启用时使用进程内 LRU 缓存
type RedisCfg struct {
	Enabled       bool     `mapstructure:"enabled"`
	Host          string   `mapstructure:"host"`
	Username      string   `mapstructure:"username"`
	Password      string   `mapstructure:"password"`
	DB            int      `mapstructure:"db"`
	MasterName    string   `mapstructure:"masterName"`
	SentinelAddrs []string `mapstructure:"sentinelAddrs"`
}

// KafkaCfg 未启用时变更事件只写日志
type KafkaCfg struct {
	Enabled       bool     `mapstructure:"enabled"`
	Brokers       []string `mapstructure:"brokers"`
	Topic         string   `mapstructure:"topic"`
	SASLEnabled   bool     `mapstructure:"saslEnabled"`
	SASLMechanism string   `mapstructure:"saslMechanism"`
	SASLUsername  string   `mapstructure:"saslUsername"`
	SASLPassword  string   `mapstructure:"saslPassword"`
}

// AuthCfg 单一账号，PasswordHash 为 bcrypt 哈希。Username 为空时不做认证
type AuthCfg struct {
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"passwordHash"`
}

type ReportCfg struct {
	ResolutionPolicy string `mapstructure:"resolutionPolicy"` // exclusive / inclusive
	CacheTTL         int    `mapstructure:"cacheTTL"`         // 秒，仅作兜底
	CacheSize        int    `mapstructure:"cacheSize"`
	OldestOpenLimit  int    `mapstructure:"oldestOpenLimit"`
}

func Get() *GlobalCfg {
	mu.RLock()
	defer mu.RUnlock()
	return gCfg
}

// Set 直接替换全局配置，命令行工具和测试使用
func Set(cfg *GlobalCfg) {
	mu.Lock()
	gCfg = cfg
	mu.Unlock()
}

// 初始化配置，file 为空时读取 ./config/config.yaml
func InitPremise(file string) {
	vp = newViper(file)
	if err := loadSetting(vp); err != nil {
		panic(err.Error())
	}
	vp.WatchConfig()
	vp.OnConfigChange(func(e fsnotify.Event) {
		if err := loadSetting(vp); err != nil {
			log.Errorf("reload config %s failed: %v", e.Name, err)
			return
		}
		log.Infof("config reloaded: %s", e.Name)
	})
}

// Load 读取配置但不启动监听，也不修改全局配置
func Load(file string) (*GlobalCfg, error) {
	return readSetting(newViper(file))
}

func newViper(file string) *viper.Viper {
	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.AddConfigPath(cfgPath)
		v.SetConfigName(cfgName)
		v.SetConfigType(cfgType)
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.mode", DebugMode)
	v.SetDefault("log.logLevel", "info")
	v.SetDefault("log.filePath", "./log/ship-fault-report.log")
	v.SetDefault("log.maxSize", 100)
	v.SetDefault("log.maxAge", 7)
	v.SetDefault("log.maxBackups", 5)
	v.SetDefault("server.httpPort", 13080)
	v.SetDefault("server.readTimeout", 30)
	v.SetDefault("server.writeTimeout", 60)
	v.SetDefault("store.type", StoreCSV)
	v.SetDefault("store.path", "./data/notulensi.csv")
	v.SetDefault("store.sheet", "Sheet1")
	v.SetDefault("mysql.port", 3306)
	v.SetDefault("mysql.database", "ship_fault_report")
	v.SetDefault("sqlite.path", "./data/notulensi.db")
	v.SetDefault("kafka.topic", "ship_fault_report_changed")
	v.SetDefault("report.resolutionPolicy", "exclusive")
	v.SetDefault("report.cacheTTL", 300)
	v.SetDefault("report.cacheSize", 256)
	v.SetDefault("report.oldestOpenLimit", 15)
}

func readSetting(v *viper.Viper) (*GlobalCfg, error) {
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	cfg := &GlobalCfg{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if version, err := parseVersion(versionPath); err == nil {
		cfg.App.Version = version
	}
	setRunMode(cfg)
	return cfg, nil
}

func loadSetting(v *viper.Viper) error {
	cfg, err := readSetting(v)
	if err != nil {
		return err
	}
	Set(cfg)
	log.InitLogger(cfg.Log, log.WithCaller())
	return nil
}

func parseVersion(versionPath string) (string, error) {
	b, err := os.ReadFile(versionPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func setRunMode(cfg *GlobalCfg) {
	switch cfg.App.Mode {
	case ReleaseMode:
		cfg.Log.Development = false
		cfg.HttpServer.RunMode = gin.ReleaseMode
	default:
		cfg.Log.Development = true
		cfg.HttpServer.RunMode = gin.DebugMode
	}
}
