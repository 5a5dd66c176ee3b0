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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"
)

func TestSnapshotCompare(t *testing.T) {
	tests := []struct {
		name     string
		before   *string
		after    string
		expected FileStatus
	}{
		{name: "new_file", before: nil, after: "hello", expected: StatusNew},
		{name: "modified_file", before: ptr("old"), after: "new", expected: StatusModified},
		{name: "unchanged_file", before: ptr("same"), after: "same", expected: StatusUnchanged},
		{name: "emptied_file", before: ptr("data"), after: "", expected: StatusModified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out.txt")
			if tt.before != nil {
				require.NoError(t, os.WriteFile(path, []byte(*tt.before), 0o644))
			}

			snap, err := Take(path)
			require.NoError(t, err)
			assert.Equal(t, tt.before != nil, snap.Exists)

			require.NoError(t, os.WriteFile(path, []byte(tt.after), 0o644))

			info, err := snap.Compare()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, info.Status)
			assert.Equal(t, int64(len(tt.after)), info.Size)
			assert.NotEmpty(t, info.Checksum)
		})
	}
}

func TestCompareMissingFile(t *testing.T) {
	snap, err := Take(filepath.Join(t.TempDir(), "never.txt"))
	require.NoError(t, err)

	info, err := snap.Compare()
	require.Error(t, err)
	assert.Equal(t, StatusFailed, info.Status)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "here.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Exists(filepath.Join(dir, "gone.txt"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestTracker(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	tracker := NewTracker(&logger, nil)
	tracker.Expect(4)
	ctx := context.Background()

	var wg sync.WaitGroup
	for _, in := range []string{"c.txt", "a.txt", "b.txt"} {
		wg.Add(1)
		go func(in string) {
			defer wg.Done()
			tracker.Track(ctx, FileInfo{Input: in, Path: in + ".out", Status: StatusNew})
		}(in)
	}
	wg.Wait()
	tracker.Track(ctx, FileInfo{Input: "d.txt", Status: StatusFailed, Error: errors.New("denied")})

	list := tracker.List()
	require.Len(t, list, 4)
	assert.Equal(t, "a.txt", list[0].Input)
	assert.Equal(t, "d.txt", list[3].Input)

	counts := tracker.Counts()
	assert.Equal(t, 3, counts[StatusNew])
	assert.Equal(t, 1, counts[StatusFailed])

	assert.Contains(t, buf.String(), "✨ Created a.txt.out")
	assert.Contains(t, buf.String(), "❌ Error: denied")
	assert.Contains(t, buf.String(), "✅ Progress: 4/4 (100%)")
}

func ptr(s string) *string { return &s }
