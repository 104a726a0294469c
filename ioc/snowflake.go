package ioc

import (
	"github.com/ecodeclub/emall/internal/pkg/snowflake"
	"github.com/gotomicro/ego/core/econf"
)

func initIDGenerator() *snowflake.MallIDGenerator {
	nodeID := econf.GetInt("snowflake.nodeID")
	// appid 0 预留, 1 是通知流水
	gen, err := snowflake.NewMallIDGenerator(uint(nodeID), 4)
	if err != nil {
		panic(err)
	}
	return gen
}
