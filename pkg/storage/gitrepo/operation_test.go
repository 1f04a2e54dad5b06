package gitrepo

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGitRepo_SendContent(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{
		RepoPath: filepath.Join(tempDir, "repo"),
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	content := []byte(`{"nodes":[],"edges":[]}`)
	modTime := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	savedKey, err := client.SendContent("exports/graph.json", content, modTime)
	if err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}
	if savedKey != "exports/graph.json" {
		t.Errorf("Unexpected saved key: %s", savedKey)
	}

	// Verify worktree file
	fullPath := filepath.Join(tempDir, "repo", "exports", "graph.json")
	saved, err := os.ReadFile(fullPath)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}
	if !bytes.Equal(saved, content) {
		t.Errorf("Content mismatch: expected %s, got %s", content, saved)
	}

	// Verify a commit was created
	head, err := client.Repo.Head()
	if err != nil {
		t.Fatalf("Failed to resolve HEAD: %v", err)
	}
	commit, err := client.Repo.CommitObject(head.Hash())
	if err != nil {
		t.Fatalf("Failed to load HEAD commit: %v", err)
	}
	if commit.Message != "backup: exports/graph.json" {
		t.Errorf("Unexpected commit message: %s", commit.Message)
	}
}

func TestGitRepo_SendContent_NoChange(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{
		RepoPath: filepath.Join(tempDir, "repo"),
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	content := []byte("# Oceans\n\nSee [[Whales]].\n")
	if _, err := client.SendContent("notes/oceans.md", content, time.Time{}); err != nil {
		t.Fatalf("First SendContent failed: %v", err)
	}
	first, err := client.Repo.Head()
	if err != nil {
		t.Fatalf("Failed to resolve HEAD: %v", err)
	}

	// Same bytes again, the worktree is clean so no commit is added.
	if _, err := client.SendContent("notes/oceans.md", content, time.Time{}); err != nil {
		t.Fatalf("Second SendContent failed: %v", err)
	}
	second, err := client.Repo.Head()
	if err != nil {
		t.Fatalf("Failed to resolve HEAD: %v", err)
	}
	if first.Hash() != second.Hash() {
		t.Errorf("Expected HEAD to stay at %s, moved to %s", first.Hash(), second.Hash())
	}
}

func TestGitRepo_Delete(t *testing.T) {
	tempDir := t.TempDir()

	client, err := NewClient(&Config{
		RepoPath: filepath.Join(tempDir, "repo"),
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	if _, err := client.SendContent("exports/graph.json", []byte("{}"), time.Time{}); err != nil {
		t.Fatalf("SendContent failed: %v", err)
	}

	if err := client.Delete("exports/graph.json"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	fullPath := filepath.Join(tempDir, "repo", "exports", "graph.json")
	if _, err := os.Stat(fullPath); !os.IsNotExist(err) {
		t.Errorf("File still present after delete: %v", err)
	}

	// Deleting a missing key is a no-op
	if err := client.Delete("exports/graph.json"); err != nil {
		t.Errorf("Second delete returned error: %v", err)
	}
}
