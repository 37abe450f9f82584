// Copyright (c) 2025 Vulnscope
// Licensed under the MIT License. See LICENSE file in the project root for details.

//go:build !windows

package process

import "os/exec"

func configureSysProcAttr(*exec.Cmd) {}
