package cmd

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/common/log"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/config"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/migrations/0.1.0"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	// 初始化服务配置
	config.InitPremise(cfgFile)
	__1_0.InitDataBase()

	app, err := initApp()
	if err != nil {
		return errors.Wrap(err, "build app")
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Errorf("close app: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gc := config.Get()
	log.Infof("ship fault report service starting, version=%s store=%s port=%d", gc.App.Version, gc.Store.Type, gc.HttpServer.Addr)
	return app.Run(ctx)
}

func newApp(server *core.HttpServer, reportService service.ReportService, cache dependency.Cache,
	events dependency.EventPublisher) *core.App {
	return &core.App{
		Server:  server,
		Loader:  reportService,
		Closers: []io.Closer{cache, events},
	}
}
