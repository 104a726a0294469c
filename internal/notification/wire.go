// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

//go:build wireinject

package notification

import (
	"github.com/ecodeclub/emall/internal/email"
	"github.com/ecodeclub/emall/internal/notification/internal/service"
	"github.com/ecodeclub/emall/internal/pkg/snowflake"
	"github.com/ecodeclub/emall/internal/sms/client"
	"github.com/google/wire"
	"github.com/gotomicro/ego/core/econf"
)

var ModuleSet = wire.NewSet(
	InitConfig,
	service.NewService,
	wire.Struct(new(Module), "*"),
)

func InitModule(emailSvc email.Service, smsClient client.Client, idGen *snowflake.MallIDGenerator) *Module {
	wire.Build(ModuleSet)
	return new(Module)
}

func InitConfig() service.Config {
	var cfg service.Config
	err := econf.UnmarshalKey("notification", &cfg)
	if err != nil {
		panic(err)
	}
	return cfg
}
