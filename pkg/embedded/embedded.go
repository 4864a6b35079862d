// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以访问嵌入的数据。
//
// 使用前必须调用 Init() 初始化。测试中可传入 fstest.MapFS。
package embedded

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotInitialized 未调用 Init 时返回
var ErrNotInitialized = errors.New("embedded package not initialized, call Init() first")

var (
	mu          sync.RWMutex
	dataFS      fs.FS
	initialized bool
)

// Init 设置数据文件系统
// 必须在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	mu.Lock()
	defer mu.Unlock()
	dataFS = data
	initialized = data != nil
}

// Reset 清除初始化状态（测试用）
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	dataFS = nil
	initialized = false
}

// IsInitialized 返回 embedded 包是否已初始化
func IsInitialized() bool {
	mu.RLock()
	defer mu.RUnlock()
	return initialized
}

// resolve 标准化路径并返回数据文件系统
// 路径必须以 "data/" 开头
func resolve(path string) (fs.FS, string, error) {
	mu.RLock()
	defer mu.RUnlock()
	if !initialized {
		return nil, "", ErrNotInitialized
	}

	// embed.FS 使用正斜杠
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")

	if !strings.HasPrefix(path, "data/") && path != "data" {
		return nil, "", fmt.Errorf("unknown resource path prefix: %s (must start with 'data/')", path)
	}
	return dataFS, path, nil
}

// Open 打开嵌入文件
func Open(path string) (fs.File, error) {
	fsys, p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fsys.Open(p)
}

// ReadFile 读取嵌入文件内容
func ReadFile(path string) ([]byte, error) {
	fsys, p, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(fsys, p)
}

// Exists 检查文件是否存在
func Exists(path string) bool {
	file, err := Open(path)
	if err != nil {
		return false
	}
	file.Close()
	return true
}
