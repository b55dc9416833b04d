package core

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 60 * time.Second

type HttpRouter interface {
	SetRouter(*gin.Engine)
}

type RouterQuote struct {
	Routes []HttpRouter
}

// Loader 启动时预加载数据，失败时服务以降级状态继续运行
type Loader interface {
	Load(ctx context.Context) ServiceError
}

type HttpServer struct {
	srv *http.Server
}

func NewHttpServer(quote *RouterQuote) *HttpServer {
	gc := config.Get()
	gin.SetMode(gc.HttpServer.RunMode)
	ginEngine := gin.New()
	ginEngine.Use(gin.Logger(), gin.Recovery())
	for _, r := range quote.Routes {
		r.SetRouter(ginEngine)
	}
	return &HttpServer{srv: &http.Server{
		Handler:      ginEngine,
		Addr:         ":" + strconv.Itoa(gc.HttpServer.Addr),
		ReadTimeout:  time.Duration(gc.HttpServer.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(gc.HttpServer.WriteTimeout) * time.Second,
	}}
}

// Start 阻塞直到 ctx 取消或监听失败，ctx 取消后优雅关闭
func (s *HttpServer) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		log.Infof("http server listening on %s", s.srv.Addr)
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Infof("Server Exiting")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

func (s *HttpServer) Handler() http.Handler {
	return s.srv.Handler
}

type App struct {
	Server  *HttpServer
	Loader  Loader
	Closers []io.Closer
}

func (a *App) Run(ctx context.Context) error {
	if a.Loader != nil {
		if err := a.Loader.Load(ctx); err != nil {
			log.Errorf("initial load failed, serving in degraded mode: %s", err.Error())
		}
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err := a.Server.Start(egCtx); err != nil && !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "http server")
		}
		return nil
	})
	return eg.Wait()
}

// Close 关闭缓存、消息等外部连接，在 Run 返回后调用
func (a *App) Close() error {
	var first error
	for _, c := range a.Closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			log.Errorf("close resource: %v", err)
			if first == nil {
				first = err
			}
		}
	}
	_ = log.Sync()
	return first
}
