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
	"testing"
	"time"

	"github.com/ecodeclub/emall/internal/customer/internal/domain"
	"github.com/ecodeclub/emall/internal/customer/internal/repository"
	"github.com/ecodeclub/emall/internal/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCustomerRepo struct {
	customers map[string]domain.Customer
	nextID    int64
	createErr error
	// 记录Create调用次数
	created int
	// 模拟并发场景: 第一次FindByEmail查不到, Create撞唯一索引后再查得到
	missFirstFind bool
	findCalls     int
}

func (f *fakeCustomerRepo) Create(_ context.Context, c domain.Customer, _ string) (int64, error) {
	f.created++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextID++
	c.ID = f.nextID
	f.customers[c.Email] = c
	return c.ID, nil
}

func (f *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (domain.Customer, error) {
	f.findCalls++
	if f.missFirstFind && f.findCalls == 1 {
		return domain.Customer{}, repository.ErrCustomerNotFound
	}
	c, ok := f.customers[email]
	if !ok {
		return domain.Customer{}, repository.ErrCustomerNotFound
	}
	return c, nil
}

func (f *fakeCustomerRepo) FindById(_ context.Context, id int64) (domain.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return domain.Customer{}, repository.ErrCustomerNotFound
}

type fakeEmailService struct {
	sent chan email.Mail
	err  error
}

func (f *fakeEmailService) SendMail(_ context.Context, mail email.Mail) error {
	if f.sent != nil {
		f.sent <- mail
	}
	return f.err
}

func TestCustomerService_ResolveGuest(t *testing.T) {
	t.Run("邮箱已注册_复用账号不再开户", func(t *testing.T) {
		repo := &fakeCustomerRepo{
			customers: map[string]domain.Customer{
				"old@example.com": {ID: 7, Email: "old@example.com"},
			},
		}
		svc := NewCustomerService(repo, &fakeEmailService{})

		identity := svc.ResolveGuest(context.Background(), "old@example.com", "老客户")

		assert.Equal(t, int64(7), identity.ID)
		assert.False(t, identity.Anonymous())
		assert.Equal(t, 0, repo.created)
	})

	t.Run("新邮箱_自动开户并异步发送凭证", func(t *testing.T) {
		repo := &fakeCustomerRepo{customers: map[string]domain.Customer{}}
		mails := &fakeEmailService{sent: make(chan email.Mail, 1)}
		svc := NewCustomerService(repo, mails)

		identity := svc.ResolveGuest(context.Background(), "new@example.com", "新客户")

		require.Equal(t, 1, repo.created)
		assert.Equal(t, int64(1), identity.ID)
		select {
		case mail := <-mails.sent:
			assert.Equal(t, "new@example.com", mail.To)
		case <-time.After(time.Second):
			t.Fatal("没有发送开户凭证邮件")
		}
	})

	t.Run("开户失败_降级为匿名订单", func(t *testing.T) {
		// 可用性优先: 身份存储异常不能阻塞结算
		repo := &fakeCustomerRepo{
			customers: map[string]domain.Customer{},
			createErr: errors.New("存储不可用"),
		}
		svc := NewCustomerService(repo, &fakeEmailService{})

		identity := svc.ResolveGuest(context.Background(), "broken@example.com", "倒霉客户")

		assert.True(t, identity.Anonymous())
		assert.Equal(t, "broken@example.com", identity.Email)
	})

	t.Run("并发开户撞唯一索引_复用已有账号", func(t *testing.T) {
		repo := &fakeCustomerRepo{
			customers: map[string]domain.Customer{
				// 另一个请求先插入成功
				"race@example.com": {ID: 3, Email: "race@example.com"},
			},
			createErr:     repository.ErrCustomerDuplicate,
			missFirstFind: true,
		}
		svc := NewCustomerService(repo, &fakeEmailService{})

		identity := svc.ResolveGuest(context.Background(), "race@example.com", "并发客户")

		assert.Equal(t, int64(3), identity.ID)
	})

	t.Run("凭证邮件发送失败_不影响身份解析", func(t *testing.T) {
		repo := &fakeCustomerRepo{customers: map[string]domain.Customer{}}
		mails := &fakeEmailService{sent: make(chan email.Mail, 1), err: errors.New("邮件服务不可用")}
		svc := NewCustomerService(repo, mails)

		identity := svc.ResolveGuest(context.Background(), "mailfail@example.com", "客户")

		assert.False(t, identity.Anonymous())
		select {
		case <-mails.sent:
		case <-time.After(time.Second):
			t.Fatal("没有尝试发送开户凭证邮件")
		}
	})
}
