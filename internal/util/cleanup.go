package util

import (
	"os"
	"path/filepath"
	"strings"
)

// TempSuffix marks page folders of chapters still being downloaded.
const TempSuffix = "_tmp"

type CleanupLogger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// CleanupUnfinishedTempFolders removes every "*_tmp" folder directly under
// outputDir and returns how many were removed.
func CleanupUnfinishedTempFolders(outputDir string, log CleanupLogger) int {
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return 0
	}

	removed := 0
	for _, e := range entries {
		if !e.IsDir() || !strings.HasSuffix(e.Name(), TempSuffix) {
			continue
		}

		full := filepath.Join(outputDir, e.Name())
		if err := os.RemoveAll(full); err != nil {
			log.Warnf("Cannot remove %s: %v", full, err)
			continue
		}

		log.Infof("Removed %s", full)
		removed++
	}

	return removed
}

func RemoveIfEmpty(dir string, log CleanupLogger) {
	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		log.Infof("Removed empty output folder %s", dir)
	}
}

func CleanupFolder(folder string) {
	_ = os.RemoveAll(folder)
}
