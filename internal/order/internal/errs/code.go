package errs

var (
	SystemError  = ErrorCode{Code: 510001, Msg: "系统错误"}
	InvalidState = ErrorCode{Code: 510002, Msg: "订单状态不允许该操作"}
	NotFound     = ErrorCode{Code: 510003, Msg: "记录不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
