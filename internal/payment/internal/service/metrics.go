package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	callbackCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniform_payment_callbacks_total",
			Help: "支付网关回调次数",
		},
		[]string{"result"},
	)
	transitionCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "uniform_payment_transitions_total",
			Help: "支付会话置为已支付的次数, 按触发来源区分",
		},
		[]string{"source"},
	)
)
