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

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/ecodeclub/emall/internal/email"
	"github.com/ecodeclub/emall/internal/order"
	"github.com/ecodeclub/emall/internal/pkg/snowflake"
	"github.com/ecodeclub/emall/internal/sms/client"
	"github.com/gotomicro/ego/core/elog"
)

// AppIDNotification 通知流水在雪花ID里的业务位
const AppIDNotification uint = 1

type Config struct {
	From string
	// StaffEmails 新订单通知收件人
	StaffEmails []string
	// StaffPhones 可选的短信通知, 为空表示不启用
	StaffPhones    []string
	SMSTemplateID  string
	StorefrontName string
}

//go:generate mockgen -source=./service.go -package=notificationmocks -destination=./mocks/notification.mock.go -typed Service
type Service interface {
	// SendCustomerConfirmation 给买家发订单确认邮件
	SendCustomerConfirmation(ctx context.Context, o order.Order) error
	// SendStaffNotification 给店员发新订单通知
	// 每个收件人独立发送, 单个失败只记日志不中断其他人
	SendStaffNotification(ctx context.Context, o order.Order) error
}

func NewService(emailSvc email.Service, smsClient client.Client, idGen *snowflake.MallIDGenerator, cfg Config) Service {
	return &notificationService{
		emailSvc:  emailSvc,
		smsClient: smsClient,
		idGen:     idGen,
		cfg:       cfg,
		logger:    elog.DefaultLogger,
	}
}

type notificationService struct {
	emailSvc  email.Service
	smsClient client.Client
	idGen     *snowflake.MallIDGenerator
	cfg       Config
	logger    *elog.Component
}

func (n *notificationService) SendCustomerConfirmation(ctx context.Context, o order.Order) error {
	if o.Address.Email == "" {
		return fmt.Errorf("订单没有买家邮箱: %s", o.SN)
	}
	nid := n.notificationID()
	err := n.emailSvc.SendMail(ctx, email.Mail{
		From:    n.cfg.From,
		To:      o.Address.Email,
		Subject: fmt.Sprintf("%s - 订单确认 %s", n.cfg.StorefrontName, o.SN),
		Body:    n.customerBody(o),
	})
	if err != nil {
		n.logger.Error("发送订单确认邮件失败",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN),
			elog.Int64("notification_id", nid),
		)
		return fmt.Errorf("发送订单确认邮件失败: %w", err)
	}
	return nil
}

func (n *notificationService) SendStaffNotification(ctx context.Context, o order.Order) error {
	subject := fmt.Sprintf("%s - 新订单 %s", n.cfg.StorefrontName, o.SN)
	body := n.staffBody(o)
	for _, to := range n.cfg.StaffEmails {
		nid := n.notificationID()
		err := n.emailSvc.SendMail(ctx, email.Mail{
			From:    n.cfg.From,
			To:      to,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			n.logger.Error("发送店员通知邮件失败",
				elog.FieldErr(err),
				elog.String("order_sn", o.SN),
				elog.String("to", to),
				elog.Int64("notification_id", nid),
			)
		}
	}
	n.sendStaffSMS(o)
	return nil
}

func (n *notificationService) sendStaffSMS(o order.Order) {
	if n.smsClient == nil || len(n.cfg.StaffPhones) == 0 {
		return
	}
	_, err := n.smsClient.Send(client.SendReq{
		PhoneNumbers: n.cfg.StaffPhones,
		TemplateID:   n.cfg.SMSTemplateID,
		TemplateParam: map[string]string{
			"order_sn": o.SN,
			"total":    fmt.Sprintf("%.2f", float64(o.Total)/100),
		},
	})
	if err != nil {
		n.logger.Error("发送店员通知短信失败",
			elog.FieldErr(err),
			elog.String("order_sn", o.SN),
		)
	}
}

func (n *notificationService) notificationID() int64 {
	id, err := n.idGen.Generate(AppIDNotification)
	if err != nil {
		return 0
	}
	return id.Int64()
}

func (n *notificationService) customerBody(o order.Order) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>%s, 您好!</p>", o.Address.Name))
	b.WriteString(fmt.Sprintf("<p>我们已收到您的订单 <strong>%s</strong>:</p><ul>", o.SN))
	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("<li>%s x%d - %s</li>", it.Name, it.Quantity, n.amount(it.UnitPrice*it.Quantity, o.Currency)))
	}
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p>商品小计: %s<br>运费: %s<br>税费: %s<br>合计: <strong>%s</strong></p>",
		n.amount(o.Subtotal, o.Currency),
		n.amount(o.Shipping, o.Currency),
		n.amount(o.Tax, o.Currency),
		n.amount(o.Total, o.Currency)))
	b.WriteString(fmt.Sprintf("<p>收货地址: %s, %s %s</p>", o.Address.Line, o.Address.City, o.Address.Region))
	return []byte(b.String())
}

func (n *notificationService) staffBody(o order.Order) []byte {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("<p>新订单 <strong>%s</strong>, 合计 %s</p><ul>", o.SN, n.amount(o.Total, o.Currency)))
	for _, it := range o.Items {
		b.WriteString(fmt.Sprintf("<li>%s x%d</li>", it.Name, it.Quantity))
	}
	b.WriteString("</ul>")
	b.WriteString(fmt.Sprintf("<p>买家: %s &lt;%s&gt;<br>配送: %s</p>", o.Address.Name, o.Address.Email, o.Address.Shipping))
	return []byte(b.String())
}

func (n *notificationService) amount(cents int64, currency string) string {
	return fmt.Sprintf("%.2f %s", float64(cents)/100, currency)
}
