//go:build !linux

package taskpool

// PinToCPU is a no-op outside Linux.
func PinToCPU(cpu int) error { return nil }
