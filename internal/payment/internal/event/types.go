package event

const PaymentSucceededEventName = "payment_succeeded_events"

// PaymentSucceededEvent 支付会话完成状态迁移后发出, 每个会话只会发一次
type PaymentSucceededEvent struct {
	SessionID     string  `json:"sessionId"`
	StudentID     int64   `json:"studentId"`
	OrderIDs      []int64 `json:"orderIds"`
	TransactionID string  `json:"transactionId"`
	TotalAmount   int64   `json:"totalAmount"`
	PaidAt        int64   `json:"paidAt"`
	// callback, poll, job, mock
	Source string `json:"source"`
}
