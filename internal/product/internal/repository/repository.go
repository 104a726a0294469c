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

	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/emall/internal/product/internal/domain"
	"github.com/ecodeclub/emall/internal/product/internal/repository/dao"
)

var ErrInsufficientStock = dao.ErrInsufficientStock

type ProductRepository interface {
	FindProductBySN(ctx context.Context, sn string) (domain.Product, error)
	FindVariantByID(ctx context.Context, id int64) (domain.Variant, error)
	DecrStock(ctx context.Context, variantId int64, quantity int64) error
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{d: d}
}

type productRepository struct {
	d dao.ProductDAO
}

func (p *productRepository) FindProductBySN(ctx context.Context, sn string) (domain.Product, error) {
	product, err := p.d.FindProductBySN(ctx, sn)
	if err != nil {
		return domain.Product{}, err
	}
	variants, err := p.d.FindVariantsByProductID(ctx, product.Id)
	if err != nil {
		return domain.Product{}, err
	}
	return p.toDomain(product, variants), nil
}

func (p *productRepository) FindVariantByID(ctx context.Context, id int64) (domain.Variant, error) {
	v, err := p.d.FindVariantByID(ctx, id)
	if err != nil {
		return domain.Variant{}, err
	}
	return p.toVariantDomain(v), nil
}

func (p *productRepository) DecrStock(ctx context.Context, variantId int64, quantity int64) error {
	return p.d.DecrStock(ctx, variantId, quantity)
}

func (p *productRepository) toDomain(product dao.Product, variants []dao.Variant) domain.Product {
	return domain.Product{
		ID:     product.Id,
		SN:     product.SN,
		Name:   product.Name,
		Desc:   product.Description,
		Status: domain.Status(product.Status),
		Variants: slice.Map(variants, func(idx int, src dao.Variant) domain.Variant {
			return p.toVariantDomain(src)
		}),
	}
}

func (p *productRepository) toVariantDomain(v dao.Variant) domain.Variant {
	return domain.Variant{
		ID:        v.Id,
		ProductID: v.ProductID,
		SN:        v.SN,
		Name:      v.Name,
		Price:     v.Price,
		SalePrice: v.SalePrice,
		OnSale:    v.OnSale,
		Stock:     v.Stock,
		Image:     v.Image,
		Status:    domain.Status(v.Status),
	}
}
