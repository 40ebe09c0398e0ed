package util

import (
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ja7ad/loadshift/pkg/types"
)

// LogicalCores returns the number of logical CPUs, falling back to
// runtime.NumCPU when gopsutil cannot tell.
func LogicalCores() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// SystemSummary returns host name, kernel, CPU and memory descriptions for the
// start-up banner. Unknown values are rendered as "unknown".
func SystemSummary() (hostname, kernel, cpus, memory string) {
	hostname, kernel, cpus, memory = "unknown", "unknown", "unknown", "unknown"

	if hi, err := host.Info(); err == nil {
		hostname = hi.Hostname
		kernel = fmt.Sprintf("%s %s", hi.OS, hi.KernelVersion)
	}

	logical := LogicalCores()
	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		cpus = fmt.Sprintf("%d logical / %d physical", logical, physical)
	} else {
		cpus = fmt.Sprintf("%d logical", logical)
	}
	if infos, err := cpu.Info(); err == nil && len(infos) > 0 && infos[0].ModelName != "" {
		cpus += " (" + infos[0].ModelName + ")"
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		memory = fmt.Sprintf("%s total, %s available",
			types.ToBytes(vm.Total).Humanized(), types.ToBytes(vm.Available).Humanized())
	}
	return hostname, kernel, cpus, memory
}
