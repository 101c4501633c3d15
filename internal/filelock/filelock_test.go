package filelock

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
)

func TestLockUnlock(t *testing.T) {
	lock := NewFileLock(filepath.Join(t.TempDir(), "test.lock"))

	if err := lock.Lock(); err != nil {
		t.Fatalf("Failed to acquire lock: %v", err)
	}
	if err := lock.Unlock(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}
}

func TestTryLock(t *testing.T) {
	lockPath := filepath.Join(t.TempDir(), "test.lock")
	lock1 := NewFileLock(lockPath)
	lock2 := NewFileLock(lockPath)

	acquired, err := lock1.TryLock()
	if err != nil || !acquired {
		t.Fatalf("first TryLock = %v, %v; want true, nil", acquired, err)
	}

	acquired, err = lock2.TryLock()
	if err != nil {
		t.Fatalf("TryLock failed: %v", err)
	}
	if acquired {
		t.Error("Second TryLock should fail when lock is held")
	}

	if err := lock1.Unlock(); err != nil {
		t.Fatalf("Unlock failed: %v", err)
	}

	acquired, err = lock2.TryLock()
	if err != nil || !acquired {
		t.Errorf("TryLock after unlock = %v, %v; want true, nil", acquired, err)
	}
	lock2.Unlock()
}

func TestLockPathFor(t *testing.T) {
	a := LockPathFor("/styles/main.scss")
	b := LockPathFor("/styles/main.scss")
	c := LockPathFor("/styles/other.scss")

	if a != b {
		t.Errorf("lock path not stable: %q vs %q", a, b)
	}
	if a == c {
		t.Error("different targets must not share a lock path")
	}
	if filepath.Dir(a) != filepath.Clean(os.TempDir()) {
		t.Errorf("lock path %q not in temp dir", a)
	}
	if !strings.HasSuffix(a, ".lock") {
		t.Errorf("lock path %q should end in .lock", a)
	}
}

func TestAtomicWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "main.scss")
	content := []byte("@import \"a\";\n")

	if err := AtomicWrite(target, content); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content = %q, want %q", got, content)
	}
}

func TestAtomicWritePreservesPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions only")
	}
	target := filepath.Join(t.TempDir(), "main.scss")
	if err := os.WriteFile(target, []byte("old"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if err := AtomicWrite(target, []byte("new")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("perm = %v, want 0600", info.Mode().Perm())
	}
}

func TestAtomicWriteNoTempFileLeftBehind(t *testing.T) {
	dir := t.TempDir()
	if err := AtomicWrite(filepath.Join(dir, "main.scss"), []byte("x")); err != nil {
		t.Fatalf("AtomicWrite failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only main.scss, found %v", names)
	}
}

func TestConcurrentLockAndWrite(t *testing.T) {
	target := filepath.Join(t.TempDir(), "main.scss")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := LockAndWrite(target, []byte(fmt.Sprintf("@import \"part-%d\";\n", n))); err != nil {
				t.Errorf("LockAndWrite failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("failed to read target: %v", err)
	}
	if !strings.HasPrefix(string(got), "@import \"part-") || strings.Count(string(got), "\n") != 1 {
		t.Errorf("file holds interleaved content: %q", got)
	}
}
