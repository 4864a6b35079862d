package ecs

import "errors"

// ErrEntityNotFound 实体不存在或已被标记删除
var ErrEntityNotFound = errors.New("entity not found")
