package watcher

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gtechsltn/csharp-to-js/core/config"
	"github.com/gtechsltn/csharp-to-js/core/logger"
)

const DefaultDebounce = 500 * time.Millisecond

var ErrClosed = errors.New("watcher closed")

// Change describes one debounced batch of file events.
type Change struct {
	Paths []string
	// ConfigChanged is set when a config file was among the changed paths.
	ConfigChanged bool
}

// FileWatcher regenerates classes when schema or config files under RootDir
// change. A schema outside RootDir has its directory watched as well.
// Events are debounced so an editor save produces one run, and OnChange
// never runs concurrently with itself.
type FileWatcher struct {
	Watcher  *fsnotify.Watcher
	RootDir  string
	Debounce time.Duration

	OnStart  func() error
	OnChange func(Change) error
	OnClose  func() error

	mutex         sync.Mutex
	runMutex      sync.Mutex
	debounceTimer *time.Timer
	pending       map[string]bool
	closed        bool

	baseExcludes []string
	excludePaths []string
	schemaPath   string
	// schemaDir is set while a directory outside RootDir is watched for the schema.
	schemaDir string
}

// NewFileWatcher watches cfg.Dir, excluding the output directory and .git.
func NewFileWatcher(cfg *config.Config, excludePaths ...string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	rootDir := cfg.Dir
	if rootDir == "" {
		rootDir = "."
	}
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}

	fw := &FileWatcher{
		Watcher:      watcher,
		RootDir:      rootDir,
		Debounce:     DefaultDebounce,
		OnStart:      func() error { return nil },
		OnChange:     func(Change) error { return fmt.Errorf("OnChange not set") },
		OnClose:      func() error { return nil },
		pending:      make(map[string]bool),
		baseExcludes: append(append([]string(nil), excludePaths...), ".git"),
	}
	fw.configure(cfg)

	return fw, nil
}

// Reconfigure applies a reloaded config: the output exclude and the watched
// schema location are recomputed.
func (fw *FileWatcher) Reconfigure(cfg *config.Config) error {
	fw.configure(cfg)
	return fw.watchSchemaDir()
}

func (fw *FileWatcher) configure(cfg *config.Config) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	excludes := append([]string(nil), fw.baseExcludes...)
	if rel, ok := fw.relToRoot(absPath(cfg.OutputDir())); ok {
		excludes = append(excludes, rel)
	}
	fw.excludePaths = excludes
	fw.schemaPath = absPath(cfg.SchemaPath())
	logger.Debug("Excluding paths: %v", fw.excludePaths)
}

// ExcludePaths returns the root-relative paths ignored by the watcher.
func (fw *FileWatcher) ExcludePaths() []string {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	return append([]string(nil), fw.excludePaths...)
}

// SchemaDir returns the directory watched for a schema outside RootDir, or
// the empty string when the schema lives under RootDir.
func (fw *FileWatcher) SchemaDir() string {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	return fw.schemaDir
}

// Watch blocks until the watcher is closed or fails.
func (fw *FileWatcher) Watch() error {
	if err := fw.addWatchersRecursively(fw.RootDir); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}
	if err := fw.watchSchemaDir(); err != nil {
		return fmt.Errorf("failed to add watchers: %w", err)
	}

	if err := fw.OnStart(); err != nil {
		logger.Error("Watcher.OnStart failed: %v", err)
	}

	for {
		select {
		case event, ok := <-fw.Watcher.Events:
			if !ok {
				return fw.closedErr("events")
			}
			fw.handleEvent(event)

		case err, ok := <-fw.Watcher.Errors:
			if !ok {
				return fw.closedErr("errors")
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}

func (fw *FileWatcher) watchSchemaDir() error {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	dir := filepath.Dir(fw.schemaPath)
	if _, inside := fw.relToRoot(dir); inside {
		dir = ""
	}
	if dir == fw.schemaDir {
		return nil
	}

	if fw.schemaDir != "" {
		logger.Debug("Removing watcher for: %s", fw.schemaDir)
		if err := fw.Watcher.Remove(fw.schemaDir); err != nil {
			logger.Debug("Watcher: %v", err)
		}
	}
	fw.schemaDir = ""
	if dir == "" {
		return nil
	}

	logger.Debug("Adding watcher for schema directory: %s", dir)
	if err := fw.Watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to add watcher for %s: %w", dir, err)
	}
	fw.schemaDir = dir
	return nil
}

func (fw *FileWatcher) handleEvent(event fsnotify.Event) {
	if fw.shouldExcludePath(event.Name) {
		return
	}
	if !fw.isRelevant(event.Name) {
		return
	}

	if event.Has(fsnotify.Create) {
		if stat, err := os.Stat(event.Name); err == nil && stat.IsDir() {
			logger.Debug("Adding watcher for new directory: %s", event.Name)
			if err := fw.addWatchersRecursively(event.Name); err != nil {
				logger.Error("Watcher: %v", err)
			}
			return
		}
	}

	if !isWatchedFile(event.Name) || (event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write)) {
		return
	}

	logger.Debug("File event: %s %s", event.Op, event.Name)
	fw.debounceChange(event.Name)
}

func (fw *FileWatcher) debounceChange(path string) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	if fw.closed {
		return
	}
	fw.pending[path] = true

	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}

	fw.debounceTimer = time.AfterFunc(fw.Debounce, fw.run)
}

// run delivers the pending batch. A timer firing while a previous run is in
// progress waits for it and then picks up everything queued meanwhile.
func (fw *FileWatcher) run() {
	fw.runMutex.Lock()
	defer fw.runMutex.Unlock()

	change, ok := fw.flush()
	if !ok || len(change.Paths) == 0 {
		return
	}
	logger.Debug("File changes detected, regenerating...")
	if err := fw.OnChange(change); err != nil {
		logger.Error("Watcher.OnChange failed: %v", err)
	}
}

func (fw *FileWatcher) flush() (Change, bool) {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()

	var change Change
	if fw.closed {
		return change, false
	}
	for path := range fw.pending {
		change.Paths = append(change.Paths, path)
		if isConfigFile(path) {
			change.ConfigChanged = true
		}
	}
	sort.Strings(change.Paths)
	fw.pending = make(map[string]bool)
	return change, true
}

func (fw *FileWatcher) Close() error {
	fw.mutex.Lock()
	if fw.closed {
		fw.mutex.Unlock()
		return nil
	}
	fw.closed = true
	if fw.debounceTimer != nil {
		fw.debounceTimer.Stop()
	}
	fw.mutex.Unlock()

	if err := fw.OnClose(); err != nil {
		logger.Error("Watcher.OnClose failed: %v", err)
	}

	return fw.Watcher.Close()
}

func (fw *FileWatcher) closedErr(channel string) error {
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	if fw.closed {
		return ErrClosed
	}
	return fmt.Errorf("watcher %s channel closed", channel)
}

func (fw *FileWatcher) shouldExcludePath(path string) bool {
	relPath, ok := fw.relToRoot(path)
	if !ok {
		return false
	}

	fw.mutex.Lock()
	excludePaths := fw.excludePaths
	fw.mutex.Unlock()

	for _, excludePath := range excludePaths {
		excludePath = filepath.Clean(excludePath)

		if relPath == excludePath {
			return true
		}
		if strings.HasPrefix(relPath, excludePath+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (fw *FileWatcher) addWatchersRecursively(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !info.IsDir() {
			return nil
		}

		if fw.shouldExcludePath(path) {
			logger.Debug("Excluding directory: %s", path)
			return filepath.SkipDir
		}

		logger.Debug("Adding watcher for: %s", path)
		if err := fw.Watcher.Add(path); err != nil {
			return fmt.Errorf("failed to add watcher for %s: %w", path, err)
		}

		return nil
	})
}

// isRelevant accepts paths under RootDir, and the schema file itself when it
// lives elsewhere.
func (fw *FileWatcher) isRelevant(path string) bool {
	if _, inside := fw.relToRoot(path); inside {
		return true
	}
	fw.mutex.Lock()
	defer fw.mutex.Unlock()
	return absPath(path) == fw.schemaPath
}

// relToRoot returns path relative to RootDir and whether it lies inside it.
func (fw *FileWatcher) relToRoot(path string) (string, bool) {
	rel, err := filepath.Rel(fw.RootDir, absPath(path))
	if err != nil {
		return "", false
	}
	rel = filepath.Clean(rel)
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return rel, false
	}
	return rel, true
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return filepath.Clean(path)
}

// isWatchedFile reports whether path is a schema or config document.
func isWatchedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func isConfigFile(path string) bool {
	base := filepath.Base(path)
	for _, name := range config.FileNames {
		if base == name {
			return true
		}
	}
	return false
}
