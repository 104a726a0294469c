// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package product

import (
	"github.com/ecodeclub/emall/internal/product/internal/event"
	"github.com/ecodeclub/emall/internal/product/internal/repository"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/product/internal/service"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, q mq.MQ) (*Module, error) {
	productDAO := InitTablesOnce(db)
	productRepository := repository.NewProductRepository(productDAO)
	v := service.NewService(productRepository)
	v2, err := event.NewStockDeductConsumer(v, q)
	if err != nil {
		return nil, err
	}
	module := &Module{
		Svc:      v,
		Consumer: v2,
	}
	return module, nil
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewProductRepository, service.NewService, event.NewStockDeductConsumer, wire.Struct(new(Module), "*"),
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.ProductDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewProductGORMDAO(db)
}
