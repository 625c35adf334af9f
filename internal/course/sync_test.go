package course

import (
	"os"
	"path/filepath"
	"testing"

	"eamcp/internal/logging"
)

func TestParseGitURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    GitURLInfo
		wantErr bool
	}{
		{
			name: "https with .git",
			url:  "https://github.com/example/course-content.git",
			want: GitURLInfo{Host: "github.com", Owner: "example", Repo: "course-content"},
		},
		{
			name: "https without .git",
			url:  "https://github.com/example/course-content",
			want: GitURLInfo{Host: "github.com", Owner: "example", Repo: "course-content"},
		},
		{
			name: "ssh",
			url:  "git@github.com:example/course-content.git",
			want: GitURLInfo{Host: "github.com", Owner: "example", Repo: "course-content"},
		},
		{
			name: "enterprise host",
			url:  "https://git.company.com/team/content",
			want: GitURLInfo{Host: "git.company.com", Owner: "team", Repo: "content"},
		},
		{name: "empty", url: "", wantErr: true},
		{name: "no host", url: "/just/a/path", wantErr: true},
		{name: "missing repo", url: "https://github.com/onlyowner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGitURL(tt.url)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseGitURL(%q) succeeded, want error", tt.url)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseGitURL(%q) error = %v", tt.url, err)
			}
			if got != tt.want {
				t.Errorf("ParseGitURL(%q) = %+v, want %+v", tt.url, got, tt.want)
			}
		})
	}
}

func TestNormalizeGitURL(t *testing.T) {
	https := normalizeGitURL("https://github.com/example/repo.git")
	ssh := normalizeGitURL("git@github.com:example/repo")
	if https != ssh {
		t.Errorf("SSH and HTTPS forms should normalize equal: %q vs %q", https, ssh)
	}
	if normalizeGitURL("https://github.com/a/b") == normalizeGitURL("https://github.com/a/c") {
		t.Error("different repos should not normalize equal")
	}
}

func TestNormalizeRemoteURL(t *testing.T) {
	cs := ContentSource{RemoteURL: "git@github.com:example/content.git"}
	got, err := cs.normalizeRemoteURL()
	if err != nil {
		t.Fatalf("normalizeRemoteURL() error = %v", err)
	}
	if got != "https://github.com/example/content.git" {
		t.Errorf("normalizeRemoteURL() = %q", got)
	}
}

func TestNewContentSourceRequiresRepo(t *testing.T) {
	if _, err := NewContentSource(&Config{}); err == nil {
		t.Error("NewContentSource() accepted empty content repo")
	}
	if _, err := NewContentSource(nil); err == nil {
		t.Error("NewContentSource() accepted nil config")
	}

	cs, err := NewContentSource(&Config{
		ContentRepo: "https://github.com/example/content.git",
		Branch:      "main",
		ContentDir:  "/tmp/content",
	})
	if err != nil {
		t.Fatalf("NewContentSource() error = %v", err)
	}
	if cs.Branch != "main" || cs.Path != "/tmp/content" {
		t.Errorf("ContentSource = %+v", cs)
	}
}

func TestClassifyDirectory(t *testing.T) {
	cs := ContentSource{RemoteURL: "https://github.com/example/content.git"}
	expected := "https://github.com/example/content.git"

	t.Run("missing directory", func(t *testing.T) {
		status, err := cs.classifyDirectory(filepath.Join(t.TempDir(), "missing"), expected)
		if err != nil {
			t.Fatalf("classifyDirectory() error = %v", err)
		}
		if status != dirEmpty {
			t.Errorf("status = %v, want dirEmpty", status)
		}
	})

	t.Run("empty directory", func(t *testing.T) {
		status, err := cs.classifyDirectory(t.TempDir(), expected)
		if err != nil {
			t.Fatalf("classifyDirectory() error = %v", err)
		}
		if status != dirEmpty {
			t.Errorf("status = %v, want dirEmpty", status)
		}
	})

	t.Run("non-git content", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		status, _ := cs.classifyDirectory(dir, expected)
		if status != dirConflict {
			t.Errorf("status = %v, want dirConflict", status)
		}
	})

	t.Run("path is a file", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "file.txt")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := cs.classifyDirectory(file, expected); err == nil {
			t.Error("classifyDirectory() accepted a file path")
		}
	})
}

func TestSyncRejectsConflictingDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	cs := ContentSource{
		RemoteURL: "https://github.com/example/content.git",
		Path:      dir,
	}

	logger, _ := logging.NewTestLogger()
	if _, err := cs.Sync(logger); err == nil {
		t.Error("Sync() should refuse a directory with non-git content")
	}
}
