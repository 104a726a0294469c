// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package order

import (
	"github.com/ecodeclub/emall/internal/order/internal/repository"
	"github.com/ecodeclub/emall/internal/order/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/order/internal/service"
	"github.com/ecodeclub/emall/internal/order/internal/web"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component) *Module {
	orderDAO := InitTablesOnce(db)
	orderRepository := repository.NewRepository(orderDAO)
	v := service.NewService(orderRepository)
	v2 := web.NewHandler(v)
	module := &Module{
		Svc: v,
		Hdl: v2,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewRepository, service.NewService, web.NewHandler, wire.Struct(new(Module), "*"),
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
