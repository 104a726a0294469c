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

package dao

import (
	"context"
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// ErrDataNotFound 通用的数据没找到
var ErrDataNotFound = gorm.ErrRecordNotFound

// ErrCustomerDuplicate 邮箱已注册
var ErrCustomerDuplicate = errors.New("客户已经注册")

//go:generate mockgen -source=./customer.go -package=daomocks -destination=mocks/customer.mock.go CustomerDAO
type CustomerDAO interface {
	Insert(ctx context.Context, c Customer) (int64, error)
	FindByEmail(ctx context.Context, email string) (Customer, error)
	FindById(ctx context.Context, id int64) (Customer, error)
}

type GORMCustomerDAO struct {
	db *egorm.Component
}

func NewGORMCustomerDAO(db *egorm.Component) CustomerDAO {
	return &GORMCustomerDAO{
		db: db,
	}
}

func (cd *GORMCustomerDAO) Insert(ctx context.Context, c Customer) (int64, error) {
	now := time.Now().UnixMilli()
	c.Ctime = now
	c.Utime = now
	err := cd.db.WithContext(ctx).Create(&c).Error
	if me, ok := err.(*mysql.MySQLError); ok {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return 0, ErrCustomerDuplicate
		}
	}
	return c.Id, err
}

func (cd *GORMCustomerDAO) FindByEmail(ctx context.Context, email string) (Customer, error) {
	var c Customer
	err := cd.db.WithContext(ctx).First(&c, "email = ?", email).Error
	return c, err
}

func (cd *GORMCustomerDAO) FindById(ctx context.Context, id int64) (Customer, error) {
	var c Customer
	err := cd.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return c, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Customer{})
}

type Customer struct {
	Id    int64  `gorm:"primaryKey,autoIncrement"`
	SN    string `gorm:"type:varchar(256);unique"`
	Email string `gorm:"type:varchar(256);unique;not null"`
	Name  string `gorm:"type:varchar(256)"`
	// 游客下单自动开户时写入的占位口令
	Password string `gorm:"type:varchar(256)"`
	Guest    bool   `gorm:"not null;default:false;comment:是否游客自动开户"`
	// 创建时间
	Ctime int64
	// 更新时间
	Utime int64
}
