package client

import (
	"errors"
)

var (
	ErrSendFailed       = errors.New("发送短信失败")
	ErrInvalidParameter = errors.New("参数无效")
)

//go:generate mockgen -source=./types.go -package=smsmocks -destination=./mocks/sms.mock.go -typed Client
type Client interface {
	Send(req SendReq) (SendResp, error)
}

type SendReq struct {
	PhoneNumbers []string
	TemplateID   string
	// 模版参数, JSON序列化后透传给服务商
	TemplateParam map[string]string
}

type SendResp struct {
	RequestID string
	// 键为手机号
	PhoneNumbers map[string]SendRespStatus
}

type SendRespStatus struct {
	Code    string
	Message string
}
