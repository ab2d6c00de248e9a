package platform

import (
	"context"

	"github.com/shirou/gopsutil/v4/host"
)

// RealProbe reads the running system.
type RealProbe struct{}

// NewProbe returns a Probe backed by the running system.
func NewProbe() Probe {
	return RealProbe{}
}

// Machine returns the hardware identifier reported by the kernel.
func (RealProbe) Machine(_ context.Context) (string, error) {
	return host.KernelArch()
}

// Sysname returns the kernel's OS name.
func (RealProbe) Sysname(ctx context.Context) (string, error) {
	return sysname(ctx)
}
