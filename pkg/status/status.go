// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"sort"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus represents what a run did to an output file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File did not exist before the run
	StatusModified             // File existed with different content
	StatusUnchanged            // File existed with the same content
	StatusFailed               // The run for this file failed
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📸 Snapshot records an output file's content before a run
type Snapshot struct {
	Path     string
	Exists   bool
	Checksum string
}

// 📄 FileInfo is the outcome for one output file
type FileInfo struct {
	Input    string     // Source file
	Path     string     // Output file
	Status   FileStatus // What happened to the output
	Size     int64      // Output size in bytes
	Checksum string     // Content hash after the run
	Error    error      // Failure, if any
}

// 🔍 checksumFile generates a SHA-256 hash of a file's content
func checksumFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	hash := sha256.New()
	n, err := io.Copy(hash, f)
	if err != nil {
		return "", 0, errors.Errorf("hashing %s: %w", path, err)
	}
	return hex.EncodeToString(hash.Sum(nil)), n, nil
}

// Exists reports whether a file exists at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

// 📸 Take snapshots path. A missing file is a valid snapshot.
func Take(path string) (Snapshot, error) {
	sum, _, err := checksumFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Snapshot{Path: path}, nil
		}
		return Snapshot{}, errors.Errorf("taking snapshot: %w", err)
	}
	return Snapshot{Path: path, Exists: true, Checksum: sum}, nil
}

// Compare hashes the file again and classifies the change since s.
func (s Snapshot) Compare() (FileInfo, error) {
	sum, size, err := checksumFile(s.Path)
	if err != nil {
		return FileInfo{Path: s.Path, Status: StatusFailed, Error: err}, errors.Errorf("comparing snapshot: %w", err)
	}

	info := FileInfo{Path: s.Path, Size: size, Checksum: sum}
	switch {
	case !s.Exists:
		info.Status = StatusNew
	case s.Checksum == sum:
		info.Status = StatusUnchanged
	default:
		info.Status = StatusModified
	}
	return info, nil
}

// 🔧 Tracker collects FileInfo from concurrent runs
type Tracker struct {
	logger    *zerolog.Logger
	formatter FileFormatter

	mu    sync.RWMutex
	files map[string]FileInfo
	total int
}

// 🏭 NewTracker creates a tracker that logs each tracked file
func NewTracker(logger *zerolog.Logger, formatter FileFormatter) *Tracker {
	if formatter == nil {
		formatter = NewDefaultFileFormatter()
	}
	return &Tracker{
		logger:    logger,
		formatter: formatter,
		files:     make(map[string]FileInfo),
	}
}

// Expect sets how many files the current run will track, for progress.
func (t *Tracker) Expect(total int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.total = total
}

// Track records the outcome for an input file.
func (t *Tracker) Track(ctx context.Context, info FileInfo) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.files[info.Input] = info

	if t.logger == nil {
		return
	}
	if t.total > 0 {
		t.logger.Debug().Msg(t.formatter.FormatProgress(len(t.files), t.total))
	}
	if info.Error != nil {
		t.logger.Error().Err(info.Error).Str("input", info.Input).Msg(t.formatter.FormatError(info.Error))
		return
	}
	t.logger.Info().
		Str("input", info.Input).
		Str("output", info.Path).
		Str("status", info.Status.String()).
		Int64("size", info.Size).
		Msg(t.formatter.FormatFileOperation(info.Path, info.Status))
}

// List returns every tracked outcome ordered by input path.
func (t *Tracker) List() []FileInfo {
	t.mu.RLock()
	defer t.mu.RUnlock()

	files := make([]FileInfo, 0, len(t.files))
	for _, info := range t.files {
		files = append(files, info)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Input < files[j].Input })
	return files
}

// Counts returns how many tracked files ended in each status.
func (t *Tracker) Counts() map[FileStatus]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[FileStatus]int)
	for _, info := range t.files {
		counts[info.Status]++
	}
	return counts
}
