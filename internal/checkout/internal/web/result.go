package web

import (
	"github.com/ecodeclub/emall/internal/checkout/internal/errs"
	"github.com/ecodeclub/ginx"
)

var (
	systemErrorResult = ginx.Result{
		Code: errs.SystemError.Code,
		Msg:  errs.SystemError.Msg,
	}
	validationErrorResult = ginx.Result{
		Code: errs.ValidationError.Code,
		Msg:  errs.ValidationError.Msg,
	}
	channelNotAvailableResult = ginx.Result{
		Code: errs.ChannelNotAvailable.Code,
		Msg:  errs.ChannelNotAvailable.Msg,
	}
	draftNotFoundResult = ginx.Result{
		Code: errs.DraftNotFound.Code,
		Msg:  errs.DraftNotFound.Msg,
	}
)
