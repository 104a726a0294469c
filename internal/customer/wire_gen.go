// Code generated by Wire. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package customer

import (
	"github.com/ecodeclub/emall/internal/customer/internal/repository"
	"github.com/ecodeclub/emall/internal/customer/internal/repository/dao"
	"github.com/ecodeclub/emall/internal/customer/internal/service"
	"github.com/ecodeclub/emall/internal/email"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
	"sync"
)

// Injectors from wire.go:

func InitModule(db *egorm.Component, emailSvc email.Service) *Module {
	customerDAO := InitTablesOnce(db)
	customerRepository := repository.NewCustomerRepository(customerDAO)
	v := service.NewCustomerService(customerRepository, emailSvc)
	module := &Module{
		Svc: v,
	}
	return module
}

// wire.go:

var ModuleSet = wire.NewSet(
	InitTablesOnce, repository.NewCustomerRepository, service.NewCustomerService, wire.Struct(new(Module), "*"),
)

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.CustomerDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewGORMCustomerDAO(db)
}
