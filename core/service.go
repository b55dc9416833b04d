package core

type ServiceError interface {
	Error() string
	GetError() error
	Type() string
	// Detail 返回给调用方的可读说明，可能为空
	Detail() string
}
