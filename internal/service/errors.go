package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	Conflict            = 409
	InternalServerError = 500
)

var (
	ErrParamInvalid            = errors.New("参数错误")
	ErrUserNotFound            = errors.New("用户不存在")
	ErrUserUsernameExist       = errors.New("用户名已存在")
	ErrPasswordIncorrect       = errors.New("密码错误")
	ErrMissingLoginCredentials = errors.New("缺少登录凭据")
	ErrUserFollowSelf          = errors.New("用户不能关注自己")
	ErrPostNotFound            = errors.New("帖子不存在")
	ErrPostCommentNotFound     = errors.New("评论不存在")
	ErrCommentReplyDepth       = errors.New("只支持一层回复")
	ErrLikeTargetInvalid       = errors.New("点赞目标无效")
	ErrFileNotSupported        = errors.New("不支持的文件类型")
	ErrMediaNotFound           = errors.New("文件不存在")
	ErrTargetUserInvalid       = errors.New("目标用户无效")
	ErrMessageSelf             = errors.New("不能给自己发私信")
	ErrConversation            = errors.New("会话异常")
	UnauthorizedError          = errors.New("权限不足")
	UnExpectedError            = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:            BadRequest,
	ErrUserNotFound:            NotFound,
	ErrUserUsernameExist:       Conflict,
	ErrPasswordIncorrect:       Unauthorized,
	ErrMissingLoginCredentials: Unauthorized,
	ErrUserFollowSelf:          BadRequest,
	ErrPostNotFound:            NotFound,
	ErrPostCommentNotFound:     NotFound,
	ErrCommentReplyDepth:       BadRequest,
	ErrLikeTargetInvalid:       InternalServerError,
	ErrFileNotSupported:        BadRequest,
	ErrMediaNotFound:           NotFound,
	ErrTargetUserInvalid:       BadRequest,
	ErrMessageSelf:             BadRequest,
	ErrConversation:            BadRequest,
	UnauthorizedError:          Unauthorized,
	UnExpectedError:            InternalServerError,
}
