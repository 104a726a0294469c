package ioc

import (
	"github.com/ecodeclub/emall/internal/checkout"
	"github.com/ecodeclub/emall/internal/customer"
	"github.com/ecodeclub/emall/internal/notification"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/payment"
)

// 模块对外只暴露Module结构体, wire需要具体的服务类型做装配

func customerService(m *customer.Module) customer.Service { return m.Svc }

func orderService(m *order.Module) order.Service { return m.Svc }

func orderHandler(m *order.Module) *order.Handler { return m.Hdl }

func paymentService(m *payment.Module) payment.Service { return m.Svc }

func paymentHandler(m *payment.Module) *payment.Handler { return m.Hdl }

func paymentSyncJob(m *payment.Module) *payment.SyncWechatOrderJob { return m.SyncWechatOrderJob }

func notificationService(m *notification.Module) notification.Service { return m.Svc }

func checkoutHandler(m *checkout.Module) *checkout.Handler { return m.Hdl }
