package client

import (
	"github.com/gotomicro/ego/core/elog"
)

var _ Client = (*ConsoleSMS)(nil)

// ConsoleSMS 把短信打到日志里, 本地开发环境用
type ConsoleSMS struct {
	l *elog.Component
}

func NewConsoleSMS() *ConsoleSMS {
	return &ConsoleSMS{l: elog.DefaultLogger}
}

func (c *ConsoleSMS) Send(req SendReq) (SendResp, error) {
	c.l.Info("发送短信",
		elog.Any("phoneNumbers", req.PhoneNumbers),
		elog.String("templateID", req.TemplateID),
		elog.Any("templateParam", req.TemplateParam),
	)
	resp := SendResp{PhoneNumbers: make(map[string]SendRespStatus, len(req.PhoneNumbers))}
	for _, phone := range req.PhoneNumbers {
		resp.PhoneNumbers[phone] = SendRespStatus{Code: "OK"}
	}
	return resp, nil
}
