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

package repository

import (
	"context"

	"github.com/ecodeclub/emall/internal/customer/internal/domain"
	"github.com/ecodeclub/emall/internal/customer/internal/repository/dao"
)

var (
	ErrCustomerNotFound  = dao.ErrDataNotFound
	ErrCustomerDuplicate = dao.ErrCustomerDuplicate
)

//go:generate mockgen -source=./repository.go -package=repomocks -destination=mocks/customer.mock.go CustomerRepository
type CustomerRepository interface {
	Create(ctx context.Context, c domain.Customer, password string) (int64, error)
	FindByEmail(ctx context.Context, email string) (domain.Customer, error)
	FindById(ctx context.Context, id int64) (domain.Customer, error)
}

type customerRepository struct {
	d dao.CustomerDAO
}

func NewCustomerRepository(d dao.CustomerDAO) CustomerRepository {
	return &customerRepository{d: d}
}

func (repo *customerRepository) Create(ctx context.Context, c domain.Customer, password string) (int64, error) {
	entity := repo.toEntity(c)
	entity.Password = password
	return repo.d.Insert(ctx, entity)
}

func (repo *customerRepository) FindByEmail(ctx context.Context, email string) (domain.Customer, error) {
	c, err := repo.d.FindByEmail(ctx, email)
	if err != nil {
		return domain.Customer{}, err
	}
	return repo.toDomain(c), nil
}

func (repo *customerRepository) FindById(ctx context.Context, id int64) (domain.Customer, error) {
	c, err := repo.d.FindById(ctx, id)
	if err != nil {
		return domain.Customer{}, err
	}
	return repo.toDomain(c), nil
}

func (repo *customerRepository) toEntity(c domain.Customer) dao.Customer {
	return dao.Customer{
		Id:    c.ID,
		SN:    c.SN,
		Email: c.Email,
		Name:  c.Name,
		Guest: c.Guest,
	}
}

func (repo *customerRepository) toDomain(c dao.Customer) domain.Customer {
	return domain.Customer{
		ID:    c.Id,
		SN:    c.SN,
		Email: c.Email,
		Name:  c.Name,
		Guest: c.Guest,
		Ctime: c.Ctime,
		Utime: c.Utime,
	}
}
