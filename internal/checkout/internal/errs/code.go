package errs

var (
	SystemError         = ErrorCode{Code: 505001, Msg: "系统错误"}
	ValidationError     = ErrorCode{Code: 505002, Msg: "提交的信息不完整或非法"}
	ChannelNotAvailable = ErrorCode{Code: 505003, Msg: "支付渠道不可用"}
	DraftNotFound       = ErrorCode{Code: 505004, Msg: "结算会话不存在或已过期"}
)

type ErrorCode struct {
	Code int
	Msg  string
}
