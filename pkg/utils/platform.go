//go:build !mobile

package utils

import "os"

// IsMobile 是否按移动端（触摸）方式运行
// 桌面端可设置 ALLEYCAT_MOBILE_EMULATE=1 模拟移动端
func IsMobile() bool {
	return os.Getenv("ALLEYCAT_MOBILE_EMULATE") == "1"
}
