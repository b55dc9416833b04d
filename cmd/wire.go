//go:build wireinject
// +build wireinject

package cmd

import (
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/adapter/controller"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/adapter/repository"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/core"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/dependency"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/domain/service"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/cache"
	"devops.aishu.cn/AISHUDevOps/AnyRobot/_git/ship-fault-report/server/infrastructure/kafka"
	"github.com/google/wire"
)

func initApp() (*core.App, error) {
	panic(wire.Build(repository.ProviderSet, cache.ProviderSet, kafka.ProviderSet, service.ProviderSet,
		controller.ProviderSet, core.NewHttpServer, newApp))
}

func initRecordStore() (dependency.RecordStore, error) {
	panic(wire.Build(repository.ProviderSet))
}
