// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build windows

package process

import (
	"os/exec"
	"syscall"
)

// createNoWindow keeps the interpreter from flashing a console window when
// the shell runs as a GUI application.
const createNoWindow = 0x08000000

func configureSysProcAttr(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
