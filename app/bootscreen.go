//go:build !(tinygo && bootdebug)

package app

import "lpmview/hal"

func bootScreen(hal.HAL, string) {}
