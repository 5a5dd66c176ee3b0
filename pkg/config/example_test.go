package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/walteh/blockreplace/pkg/config"
)

func ExampleLoad() {
	dir, err := os.MkdirTemp("", "config-example")
	if err != nil {
		fmt.Printf("Error creating dir: %v\n", err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.cfg")
	content := "input = notes.txt\nfind: ,\nreplace = \"|\"\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		fmt.Printf("Error writing config: %v\n", err)
		return
	}

	values, err := config.Load(context.Background(), path)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		return
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%q\n", k, values[k])
	}

	// Output:
	// find=","
	// input="notes.txt"
	// replace="|"
}
