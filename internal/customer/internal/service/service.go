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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/emall/internal/customer/internal/domain"
	"github.com/ecodeclub/emall/internal/customer/internal/repository"
	"github.com/ecodeclub/emall/internal/email"
	"github.com/gotomicro/ego/core/elog"
	"github.com/lithammer/shortuuid/v4"
)

// guestPassword 游客开户用的占位口令, 开户邮件里会提醒客户立即修改
// TODO(安全): 换成随机口令并走找回密码流程
const guestPassword = "changeme-guest"

//go:generate mockgen -source=./service.go -package=svcmocks -destination=mocks/customer.mock.go CustomerService
type CustomerService interface {
	Profile(ctx context.Context, id int64) (domain.Customer, error)
	// ResolveGuest 游客结算时解析买家身份
	// 同邮箱复用既有账号, 没有就自动开户
	// 开户失败不阻塞结算, 降级为匿名身份
	ResolveGuest(ctx context.Context, email, name string) domain.Identity
}

type customerService struct {
	repo     repository.CustomerRepository
	emailSvc email.Service
	logger   *elog.Component
}

func NewCustomerService(repo repository.CustomerRepository, emailSvc email.Service) CustomerService {
	return &customerService{
		repo:     repo,
		emailSvc: emailSvc,
		logger:   elog.DefaultLogger,
	}
}

func (svc *customerService) Profile(ctx context.Context, id int64) (domain.Customer, error) {
	return svc.repo.FindById(ctx, id)
}

func (svc *customerService) ResolveGuest(ctx context.Context, emailAddr, name string) domain.Identity {
	// 大部分回头客用同一个邮箱下单, 数据在我们这里是有的
	c, err := svc.repo.FindByEmail(ctx, emailAddr)
	if err == nil {
		return domain.Identity{ID: c.ID, Email: c.Email}
	}
	if !errors.Is(err, repository.ErrCustomerNotFound) {
		svc.logger.Error("查找客户失败, 降级为匿名订单",
			elog.FieldErr(err),
			elog.String("email", emailAddr),
		)
		return domain.Identity{Email: emailAddr}
	}

	id, err := svc.repo.Create(ctx, domain.Customer{
		SN:    shortuuid.New(),
		Email: emailAddr,
		Name:  name,
		Guest: true,
	}, guestPassword)
	if errors.Is(err, repository.ErrCustomerDuplicate) {
		// 并发开户撞了唯一索引, 直接复用已有账号
		c, err = svc.repo.FindByEmail(ctx, emailAddr)
		if err != nil {
			return domain.Identity{Email: emailAddr}
		}
		return domain.Identity{ID: c.ID, Email: c.Email}
	}
	if err != nil {
		// 开户失败属于可用性优先的降级路径, 订单照常创建
		svc.logger.Error("游客自动开户失败, 降级为匿名订单",
			elog.FieldErr(err),
			elog.String("email", emailAddr),
		)
		return domain.Identity{Email: emailAddr}
	}

	svc.sendCredentialsAsync(emailAddr, name)
	return domain.Identity{ID: id, Email: emailAddr}
}

// sendCredentialsAsync 异步发送开户凭证, 发送失败不影响结算
func (svc *customerService) sendCredentialsAsync(to, name string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		body := fmt.Sprintf(`<p>%s，你好：</p>
<p>我们已为你自动开通账号，登录邮箱为 %s，初始密码为 %s。</p>
<p>请登录后立即修改密码。</p>`, name, to, guestPassword)
		err := svc.emailSvc.SendMail(ctx, email.Mail{
			From:    "emall",
			To:      to,
			Subject: "账号开通通知",
			Body:    []byte(body),
		})
		if err != nil {
			svc.logger.Error("发送开户凭证邮件失败",
				elog.FieldErr(err),
				elog.String("email", to),
			)
		}
	}()
}
