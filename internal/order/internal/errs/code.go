package errs

var (
	SystemError   = ErrorCode{Code: 503001, Msg: "系统错误"}
	OrderNotFound = ErrorCode{Code: 503002, Msg: "订单不存在"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
