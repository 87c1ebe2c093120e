//go:build profile && windows

package profiler

import "syscall"

func hideWindowAttr() any {
	return &syscall.SysProcAttr{HideWindow: true}
}
