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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ordersCreatedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_orders_created_total",
			Help: "Total number of orders created by checkout",
		},
		[]string{"channel"},
	)
	ordersFinalizedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_orders_finalized_total",
			Help: "Total number of finalized orders",
		},
	)
	widgetCancelledCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_widget_cancelled_total",
			Help: "Total number of cancelled payment widget sessions",
		},
	)
)
