package metrics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
)

// SysHealth is a point-in-time snapshot of process and storage health.
type SysHealth struct {
	AllocMB    uint64
	SysMB      uint64
	NumGC      uint32
	Goroutines int
	DataSize   string
}

// CollectSysHealth reads runtime stats and the on-disk size of dataPath.
func CollectSysHealth(dataPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		AllocMB:    m.Alloc / (1 << 20),
		SysMB:      m.Sys / (1 << 20),
		NumGC:      m.NumGC,
		Goroutines: runtime.NumGoroutine(),
		DataSize:   humanDirSize(dataPath),
	}
}

func humanDirSize(path string) string {
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		total += info.Size()
		return nil
	})

	switch {
	case total >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(total)/float64(1<<30))
	case total >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(total)/float64(1<<20))
	case total >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(total)/float64(1<<10))
	default:
		return fmt.Sprintf("%d B", total)
	}
}
