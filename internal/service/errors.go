package service

import "errors"

var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("record not found")
	// ErrUnknownTable 表名不在注册白名单内
	ErrUnknownTable = errors.New("unknown table")
)
