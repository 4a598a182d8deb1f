package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	deliveryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniform_notification_deliveries_total",
			Help: "支付结果推送次数",
		},
		[]string{"delivered"},
	)
	subscriberGauge = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "uniform_notification_subscribers",
			Help: "当前在线的支付页面连接数",
		},
	)
)
