package errs

var (
	SystemError     = ErrorCode{Code: 511001, Msg: "系统错误"}
	InvalidState    = ErrorCode{Code: 511002, Msg: "当前状态不允许支付"}
	NotFound        = ErrorCode{Code: 511003, Msg: "记录不存在"}
	GatewayError    = ErrorCode{Code: 511004, Msg: "支付网关异常, 请稍后重试"}
	DuplicatePrepay = ErrorCode{Code: 511005, Msg: "正在创建支付, 请勿重复提交"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
