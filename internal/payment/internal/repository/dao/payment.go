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

var (
	ErrDataNotFound = gorm.ErrRecordNotFound
	// ErrDuplicatePayment 同一订单重复发起支付
	ErrDuplicatePayment = errors.New("支付记录已存在")
)

type PaymentDAO interface {
	Insert(ctx context.Context, pmt Payment) (int64, error)
	// UpdateTxnIDAndStatus 幂等更新, 回调和主动同步都会调用
	UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status uint8) error
	FindByOrderSN(ctx context.Context, orderSN string) (Payment, error)
	FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]Payment, error)
	CountTimeoutPayments(ctx context.Context, ctime int64) (int64, error)
}

func NewPaymentGORMDAO(db *egorm.Component) PaymentDAO {
	return &paymentGORMDAO{db: db}
}

type paymentGORMDAO struct {
	db *egorm.Component
}

func (d *paymentGORMDAO) Insert(ctx context.Context, pmt Payment) (int64, error) {
	now := time.Now().UnixMilli()
	pmt.Ctime, pmt.Utime = now, now
	err := d.db.WithContext(ctx).Create(&pmt).Error
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return 0, ErrDuplicatePayment
		}
		return 0, err
	}
	return pmt.ID, nil
}

func (d *paymentGORMDAO) UpdateTxnIDAndStatus(ctx context.Context, orderSN string, txnID string, status uint8) error {
	updates := map[string]any{
		"status": status,
		"utime":  time.Now().UnixMilli(),
	}
	if txnID != "" {
		updates["gateway_txn_id"] = txnID
	}
	if status == 2 {
		updates["paid_at"] = time.Now().UnixMilli()
	}
	return d.db.WithContext(ctx).Model(&Payment{}).
		Where("order_sn = ?", orderSN).
		Updates(updates).Error
}

func (d *paymentGORMDAO) FindByOrderSN(ctx context.Context, orderSN string) (Payment, error) {
	var res Payment
	err := d.db.WithContext(ctx).Where("order_sn = ?", orderSN).First(&res).Error
	return res, err
}

func (d *paymentGORMDAO) FindTimeoutPayments(ctx context.Context, offset int, limit int, ctime int64) ([]Payment, error) {
	var res []Payment
	err := d.db.WithContext(ctx).
		Where("status = ? AND ctime < ?", StatusUnpaid, ctime).
		Offset(offset).Limit(limit).Order("id").Find(&res).Error
	return res, err
}

func (d *paymentGORMDAO) CountTimeoutPayments(ctx context.Context, ctime int64) (int64, error) {
	var res int64
	err := d.db.WithContext(ctx).Model(&Payment{}).
		Where("status = ? AND ctime < ?", StatusUnpaid, ctime).Count(&res).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.WithContext(context.Background()).AutoMigrate(&Payment{})
}

const (
	StatusUnpaid        uint8 = 1
	StatusPaidSuccess   uint8 = 2
	StatusPaidFailed    uint8 = 3
	StatusTimeoutClosed uint8 = 4
)

type Payment struct {
	ID           int64  `gorm:"primaryKey;autoIncrement;comment:支付自增ID"`
	OrderSN      string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_order_sn;comment:订单序列号, 即支付参考号"`
	BuyerID      int64  `gorm:"index:idx_buyer_id;comment:买家ID, 0表示游客"`
	Channel      int64  `gorm:"type:tinyint unsigned;not null;default:1;comment:支付渠道 1=托管支付页 2=货到付款"`
	Amount       int64  `gorm:"not null;comment:支付金额, 单位为分"`
	Currency     string `gorm:"type:varchar(3);not null;comment:币种"`
	Description  string `gorm:"type:varchar(255);not null;comment:订单简要描述"`
	GatewayTxnID string `gorm:"type:varchar(255);comment:网关侧交易凭证"`
	Status       uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:支付状态 1=未支付 2=支付成功 3=支付失败 4=超时关闭"`
	PaidAt       int64  `gorm:"comment:支付时间"`
	Ctime        int64
	Utime        int64
}
