//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 初始化前创建设置目录并确认可写
// gdata 在 Android 上使用 /data/data/{package}/，但不会预先创建子目录
func EnsureStorageDir() error {
	dir := GetStoragePath()
	if dir == "" {
		return fmt.Errorf("cannot resolve Android app data directory")
	}
	settingsDir := filepath.Join(dir, settingsDirName)
	if err := os.MkdirAll(settingsDir, 0755); err != nil {
		return fmt.Errorf("create settings directory %s: %w", settingsDir, err)
	}

	probe := filepath.Join(settingsDir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("settings directory %s is not writable: %w", settingsDir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 应用数据目录
func GetStoragePath() string {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return ""
	}
	app, err := appIDFromCmdline(data)
	if err != nil {
		return ""
	}
	return filepath.Join("/data/data", app)
}
