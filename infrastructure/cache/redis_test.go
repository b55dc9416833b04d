package cache

import (
	"context"
	"testing"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"github.com/agiledragon/gomonkey/v2"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/pkg/errors"
	. "github.com/smartystreets/goconvey/convey"
)

func TestNewRedisCache(t *testing.T) {
	Convey("TestNewRedisCache", t, func() {
		Convey("Standalone 模式创建成功", func() {
			db, mock := redismock.NewClientMock()
			mock.ExpectPing().SetVal("PONG")

			patches := gomonkey.ApplyFunc(newStandaloneClient, func(cfg config.RedisCfg) *redis.Client {
				return db
			})
			defer patches.Reset()

			c, err := NewRedisCache(config.RedisCfg{Host: "localhost:6379"})
			So(err, ShouldBeNil)
			So(c, ShouldNotBeNil)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Sentinel 模式 Ping 失败", func() {
			db, mock := redismock.NewClientMock()
			mock.ExpectPing().SetErr(redis.ErrClosed)

			patches := gomonkey.ApplyFunc(newSentinelClient, func(cfg config.RedisCfg) redis.UniversalClient {
				return db
			})
			defer patches.Reset()

			c, err := NewRedisCache(config.RedisCfg{MasterName: "mymaster", SentinelAddrs: []string{"localhost:26379"}})
			So(err, ShouldNotBeNil)
			So(c, ShouldBeNil)
			So(err.Error(), ShouldContainSubstring, "连接 redis 失败")
		})
	})
}

func TestRedisCache(t *testing.T) {
	Convey("TestRedisCache", t, func() {
		db, mock := redismock.NewClientMock()
		c := &RedisCache{client: db}
		ctx := context.Background()

		Convey("Get 命中", func() {
			mock.ExpectGet("sfr:summary:3").SetVal(`{"total":1}`)

			v, err := c.Get(ctx, "sfr:summary:3")
			So(err, ShouldBeNil)
			So(v, ShouldEqual, `{"total":1}`)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Get 未命中", func() {
			mock.ExpectGet("missing").RedisNil()

			_, err := c.Get(ctx, "missing")
			So(errors.Is(err, ErrCacheMiss), ShouldBeTrue)
		})

		Convey("Get 出错", func() {
			mock.ExpectGet("k").SetErr(redis.ErrClosed)

			_, err := c.Get(ctx, "k")
			So(err.Error(), ShouldContainSubstring, "redis get")
			So(errors.Is(err, ErrCacheMiss), ShouldBeFalse)
		})

		Convey("Set 带过期时间", func() {
			mock.ExpectSet("k", "v", time.Minute).SetVal("OK")

			So(c.Set(ctx, "k", "v", time.Minute), ShouldBeNil)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Del 多个 key", func() {
			mock.ExpectDel("a", "b").SetVal(2)

			So(c.Del(ctx, "a", "b"), ShouldBeNil)
			So(mock.ExpectationsWereMet(), ShouldBeNil)
		})

		Convey("Del 空列表不访问 redis", func() {
			So(c.Del(ctx), ShouldBeNil)
		})

		Convey("Exists", func() {
			mock.ExpectExists("k").SetVal(1)

			ok, err := c.Exists(ctx, "k")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
		})

		Convey("Close", func() {
			So(c.Close(), ShouldBeNil)
		})
	})
}
