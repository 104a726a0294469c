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

package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/emall/internal/checkout/internal/domain"
	"github.com/pkg/errors"
)

// 草稿不落库, 放弃的结算半小时后自然过期
const draftExpiration = 30 * time.Minute

var ErrDraftNotFound = errors.New("结算草稿没找到")

type DraftCache interface {
	SetDraft(ctx context.Context, draft domain.Draft) error
	GetDraft(ctx context.Context, key string) (domain.Draft, error)
	DelDraft(ctx context.Context, key string) error
}

func NewDraftCache(ec ecache.Cache) DraftCache {
	return &draftCache{ec: ec}
}

type draftCache struct {
	ec ecache.Cache
}

func (c *draftCache) SetDraft(ctx context.Context, draft domain.Draft) error {
	bytes, err := json.Marshal(draft)
	if err != nil {
		return errors.Wrap(err, "序列化结算草稿失败")
	}
	return c.ec.Set(ctx, c.draftKey(draft.Key), string(bytes), draftExpiration)
}

func (c *draftCache) GetDraft(ctx context.Context, key string) (domain.Draft, error) {
	val := c.ec.Get(ctx, c.draftKey(key))
	if val.KeyNotFound() {
		return domain.Draft{}, ErrDraftNotFound
	}
	if val.Err != nil {
		return domain.Draft{}, val.Err
	}
	var res domain.Draft
	err := json.Unmarshal([]byte(val.Val.(string)), &res)
	return res, errors.Wrap(err, "反序列化结算草稿失败")
}

func (c *draftCache) DelDraft(ctx context.Context, key string) error {
	_, err := c.ec.Delete(ctx, c.draftKey(key))
	return err
}

func (c *draftCache) draftKey(key string) string {
	return fmt.Sprintf("checkout:draft:%s", key)
}
