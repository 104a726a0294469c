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

package web

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/ecodeclub/emall/internal/checkout/internal/service"
	"github.com/ecodeclub/emall/internal/payment"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

// Handler 结算流程对外接口
// 游客也要能走完整个流程, 所以全部挂在公开路由上,
// 已登录用户的身份从会话里捎带
type Handler struct {
	svc        service.Service
	paymentSvc payment.Service
	cfg        service.Config
}

func NewHandler(svc service.Service, paymentSvc payment.Service, cfg service.Config) *Handler {
	return &Handler{svc: svc, paymentSvc: paymentSvc, cfg: cfg}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	// 认证门里登录成功后恢复推进
	server.POST("/checkout/resume", ginx.BS[DraftKeyReq](h.Resume))
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/checkout")
	g.POST("/settings", ginx.W(h.Settings))
	g.POST("/start", ginx.B[StartCheckoutReq](h.StartCheckout))
	g.POST("/contact", ginx.B[SubmitContactReq](h.SubmitContact))
	g.POST("/delivery", ginx.B[SubmitDeliveryReq](h.SubmitDelivery))
	g.POST("/guest", ginx.B[DraftKeyReq](h.ContinueAsGuest))
	g.POST("/preview", ginx.B[DraftKeyReq](h.Preview))
	g.POST("/pay", ginx.B[SubmitPaymentReq](h.SubmitPayment))
	g.POST("/widget/confirm", ginx.B[ConfirmWidgetReq](h.ConfirmWidget))
}

func (h *Handler) Settings(ctx *ginx.Context) (ginx.Result, error) {
	methods := make([]ShippingMethod, 0, len(h.cfg.ShippingMethods))
	for _, m := range h.cfg.ShippingMethods {
		if !m.Enabled {
			continue
		}
		methods = append(methods, ShippingMethod{ID: m.ID, Name: m.Name, Cost: m.Cost})
	}
	return ginx.Result{
		Data: SettingsResp{
			ShippingMethods: methods,
			PaymentChannels: slice.Map(h.paymentSvc.GetPaymentChannels(ctx.Request.Context()),
				func(idx int, src payment.Channel) PaymentChannel {
					return PaymentChannel{Type: src.Type, Desc: src.Desc}
				}),
			Currency: h.cfg.Currency,
		},
	}, nil
}

func (h *Handler) StartCheckout(ctx *ginx.Context, req StartCheckoutReq) (ginx.Result, error) {
	draft, err := h.svc.StartCheckout(ctx.Request.Context(), h.currentUID(ctx), slice.Map(req.Lines,
		func(idx int, src CartLine) domain.CartLine {
			return domain.CartLine{
				ProductID: src.ProductID,
				VariantID: src.VariantID,
				Quantity:  src.Quantity,
				UnitPrice: src.UnitPrice,
				SalePrice: src.SalePrice,
				OnSale:    src.OnSale,
				Name:      src.Name,
				Image:     src.Image,
			}
		}))
	if err != nil {
		return h.toErrorResult(err), err
	}
	return h.toDraftResult(draft, false), nil
}

func (h *Handler) SubmitContact(ctx *ginx.Context, req SubmitContactReq) (ginx.Result, error) {
	draft, err := h.svc.SubmitContact(ctx.Request.Context(), req.Key, domain.Contact{
		Email:  req.Email,
		Phone:  req.Phone,
		Name:   req.Name,
		Line:   req.Line,
		City:   req.City,
		Region: req.Region,
	})
	if err != nil {
		return h.toErrorResult(err), err
	}
	return h.toDraftResult(draft, false), nil
}

func (h *Handler) SubmitDelivery(ctx *ginx.Context, req SubmitDeliveryReq) (ginx.Result, error) {
	draft, authGate, err := h.svc.SubmitDelivery(ctx.Request.Context(), req.Key, req.ShippingMethod)
	if err != nil {
		return h.toErrorResult(err), err
	}
	return h.toDraftResult(draft, authGate), nil
}

func (h *Handler) ContinueAsGuest(ctx *ginx.Context, req DraftKeyReq) (ginx.Result, error) {
	draft, err := h.svc.ContinueAsGuest(ctx.Request.Context(), req.Key)
	if err != nil {
		return h.toErrorResult(err), err
	}
	return h.toDraftResult(draft, false), nil
}

func (h *Handler) Resume(ctx *ginx.Context, req DraftKeyReq, sess session.Session) (ginx.Result, error) {
	draft, err := h.svc.Authenticated(ctx.Request.Context(), req.Key, sess.Claims().Uid)
	if err != nil {
		return h.toErrorResult(err), err
	}
	return h.toDraftResult(draft, false), nil
}

func (h *Handler) Preview(ctx *ginx.Context, req DraftKeyReq) (ginx.Result, error) {
	pricing, err := h.svc.Preview(ctx.Request.Context(), req.Key)
	if err != nil {
		return h.toErrorResult(err), err
	}
	return ginx.Result{Data: h.toPricingVO(pricing)}, nil
}

func (h *Handler) SubmitPayment(ctx *ginx.Context, req SubmitPaymentReq) (ginx.Result, error) {
	attempt, err := h.svc.SubmitPayment(ctx.Request.Context(), req.Key, req.Channel)
	if err != nil {
		return h.toErrorResult(err), fmt.Errorf("发起支付失败: %w", err)
	}
	return ginx.Result{
		Data: SubmitPaymentResp{
			OrderSN: attempt.Order.SN,
			Status:  attempt.Order.Status.ToUint8(),
			CodeURL: attempt.CodeURL,
		},
	}, nil
}

func (h *Handler) ConfirmWidget(ctx *ginx.Context, req ConfirmWidgetReq) (ginx.Result, error) {
	result := domain.WidgetResult{Status: domain.WidgetStatusSuccess, Token: req.Token}
	if req.Cancelled {
		result = domain.WidgetResult{Status: domain.WidgetStatusCancelled}
	}
	o, err := h.svc.ConfirmWidgetResult(ctx.Request.Context(), req.Key, result)
	if err != nil {
		return h.toErrorResult(err), err
	}
	if req.Cancelled {
		return ginx.Result{Data: ConfirmWidgetResp{Cancelled: true}}, nil
	}
	return ginx.Result{
		Data: ConfirmWidgetResp{
			OrderSN:       o.SN,
			Status:        o.Status.ToUint8(),
			PaymentStatus: o.PaymentStatus.ToUint8(),
		},
	}, nil
}

// currentUID 结算对游客开放, 会话存在时捎带用户ID
func (h *Handler) currentUID(ctx *ginx.Context) int64 {
	sess, err := session.Get(ctx)
	if err != nil {
		return 0
	}
	return sess.Claims().Uid
}

func (h *Handler) toDraftResult(draft domain.Draft, authGate bool) ginx.Result {
	pricing := domain.ComputePricing(draft.Lines, h.cfg.ShippingMethods, draft.ShippingMethod, h.cfg.Tax)
	return ginx.Result{
		Data: DraftResp{
			Key:      draft.Key,
			Step:     uint8(draft.Step),
			AuthGate: authGate,
			Guest:    draft.Guest,
			Pricing:  h.toPricingVO(pricing),
		},
	}
}

func (h *Handler) toPricingVO(p domain.Pricing) Pricing {
	return Pricing{
		Subtotal: p.Subtotal,
		Shipping: p.Shipping,
		Tax:      p.Tax,
		Total:    p.Total,
		Currency: h.cfg.Currency,
	}
}

func (h *Handler) toErrorResult(err error) ginx.Result {
	switch {
	case errors.Is(err, service.ErrValidation):
		return validationErrorResult
	case errors.Is(err, service.ErrChannelNotAvailable):
		return channelNotAvailableResult
	case errors.Is(err, service.ErrDraftNotFound):
		return draftNotFoundResult
	default:
		return systemErrorResult
	}
}
