package cache

import (
	"crypto/md5"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/gtechsltn/csharp-to-js/core/logger"
)

// GenerationCache remembers what was last written to each output file so
// unchanged classes are not rewritten, e.g. across watch-mode runs.
type GenerationCache struct {
	entries map[string]*GenerationInfo
	mutex   sync.RWMutex
	hits    int64
	misses  int64
}

func NewGenerationCache() *GenerationCache {
	return &GenerationCache{
		entries: make(map[string]*GenerationInfo),
	}
}

// NeedsWrite reports whether content differs from what was recorded for
// outputPath, or from the file on disk when nothing was recorded.
func (gc *GenerationCache) NeedsWrite(outputPath, content string) (bool, string) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	hash := HashContent(content)

	if entry, exists := gc.entries[outputPath]; exists {
		if _, err := os.Stat(outputPath); os.IsNotExist(err) {
			gc.misses++
			return true, "output file missing"
		}
		if entry.ContentHash == hash {
			gc.hits++
			logger.Debug("GenerationCache: %s is up to date", outputPath)
			return false, ""
		}
		gc.misses++
		return true, fmt.Sprintf("content changed (hash: %s -> %s)", entry.ContentHash[:8], hash[:8])
	}

	existing, err := os.ReadFile(outputPath)
	if err != nil {
		gc.misses++
		return true, "no generation record found"
	}
	if HashContent(string(existing)) == hash {
		gc.hits++
		gc.entries[outputPath] = &GenerationInfo{OutputPath: outputPath, ContentHash: hash, GeneratedAt: time.Now()}
		return false, ""
	}
	gc.misses++
	return true, "file on disk differs"
}

// MarkGenerated records successful generation
func (gc *GenerationCache) MarkGenerated(outputPath, className, content string) error {
	if outputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	gc.entries[outputPath] = &GenerationInfo{
		OutputPath:  outputPath,
		ContentHash: HashContent(content),
		ClassName:   className,
		GeneratedAt: time.Now(),
	}
	logger.Debug("GenerationCache: Marked %s as generated", outputPath)
	return nil
}

// GetGenerationInfo retrieves generation metadata
func (gc *GenerationCache) GetGenerationInfo(outputPath string) (*GenerationInfo, bool) {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()

	entry, exists := gc.entries[outputPath]
	if !exists {
		return nil, false
	}
	entryCopy := *entry
	return &entryCopy, true
}

// Invalidate forgets the record for outputPath
func (gc *GenerationCache) Invalidate(outputPath string) {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	if _, exists := gc.entries[outputPath]; exists {
		delete(gc.entries, outputPath)
		logger.Debug("GenerationCache: Invalidated generation record for %s", outputPath)
	}
}

// Clear removes all entries
func (gc *GenerationCache) Clear() {
	gc.mutex.Lock()
	defer gc.mutex.Unlock()

	gc.entries = make(map[string]*GenerationInfo)
	logger.Debug("GenerationCache: Cleared all entries")
}

// GetGeneratedFiles returns all files that have generation records
func (gc *GenerationCache) GetGeneratedFiles() []string {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()

	files := make([]string, 0, len(gc.entries))
	for outputPath := range gc.entries {
		files = append(files, outputPath)
	}
	sort.Strings(files)
	return files
}

// GetStats returns cache statistics
func (gc *GenerationCache) GetStats() *CacheStats {
	gc.mutex.RLock()
	defer gc.mutex.RUnlock()

	stats := &CacheStats{
		TotalFiles: len(gc.entries),
		Hits:       gc.hits,
		Misses:     gc.misses,
		LastUpdate: time.Now(),
	}
	stats.CalculateHitRate()
	return stats
}

func (gc *GenerationCache) LogStats() {
	stats := gc.GetStats()
	logger.Debug("GenerationCache: %d files, %d hits, %d misses (%.1f%% hit rate)",
		stats.TotalFiles, stats.Hits, stats.Misses, stats.HitRate)
}

func HashContent(content string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}
