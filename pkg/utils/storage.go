package utils

import "fmt"

// settingsDirName gdata 在移动端的设置子目录
const settingsDirName = "settings"

// appIDFromCmdline 从 /proc/self/cmdline 内容解析应用包名
// 内容以 NUL 结尾，可能带有换行
func appIDFromCmdline(data []byte) (string, error) {
	id := make([]byte, 0, len(data))
	for _, ch := range data {
		if ch == 0 {
			break
		}
		if ch == '\n' {
			continue
		}
		id = append(id, ch)
	}
	if len(id) == 0 {
		return "", fmt.Errorf("empty process command line")
	}
	return string(id), nil
}
