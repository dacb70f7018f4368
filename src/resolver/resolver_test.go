package resolver

import (
	"errors"
	"strings"
	"testing"

	"jenkins-distill/src/config"
)

func testRegistry() config.Registry {
	return config.NewRegistry(config.Instance{
		BaseURL:  "https://ci.example.com",
		User:     "bot",
		APIToken: "tok",
	})
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		jobURL    string
		wantPath  string
		wantBuild string
	}{
		{
			name:      "nested folder with numeric build",
			jobURL:    "https://ci.example.com/job/Team/job/App/123",
			wantPath:  "Team/job/App",
			wantBuild: "123",
		},
		{
			name:      "build alias with consoleText suffix",
			jobURL:    "https://ci.example.com/job/App/lastSuccessfulBuild/consoleText",
			wantPath:  "App",
			wantBuild: "lastSuccessfulBuild",
		},
		{
			name:      "no build token defaults to lastBuild",
			jobURL:    "https://ci.example.com/job/Team/job/App/",
			wantPath:  "Team/job/App",
			wantBuild: "lastBuild",
		},
		{
			name:      "api json suffix is skipped",
			jobURL:    "https://ci.example.com/job/App/42/api/json",
			wantPath:  "App",
			wantBuild: "42",
		},
		{
			name:      "deeply nested folders",
			jobURL:    "https://ci.example.com/job/Org/job/Team/job/App/lastFailedBuild",
			wantPath:  "Org/job/Team/job/App",
			wantBuild: "lastFailedBuild",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolved, err := Resolve(tt.jobURL, testRegistry())
			if err != nil {
				t.Fatalf("Resolve(%q) unexpected error: %v", tt.jobURL, err)
			}
			if resolved.JobPath != tt.wantPath {
				t.Errorf("JobPath = %q, want %q", resolved.JobPath, tt.wantPath)
			}
			if resolved.BuildID != tt.wantBuild {
				t.Errorf("BuildID = %q, want %q", resolved.BuildID, tt.wantBuild)
			}
			if resolved.Instance.BaseURL != "https://ci.example.com" {
				t.Errorf("Instance.BaseURL = %q, want https://ci.example.com", resolved.Instance.BaseURL)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	t.Run("empty registry", func(t *testing.T) {
		_, err := Resolve("https://ci.example.com/job/App/1", config.NewRegistry())
		if !errors.Is(err, ErrNoInstancesConfigured) {
			t.Errorf("err = %v, want ErrNoInstancesConfigured", err)
		}
	})

	t.Run("non-http scheme", func(t *testing.T) {
		_, err := Resolve("ftp://x/job/A/1", testRegistry())
		if !errors.Is(err, ErrInvalidURLFormat) {
			t.Errorf("err = %v, want ErrInvalidURLFormat", err)
		}
	})

	t.Run("no matching instance enumerates base URLs", func(t *testing.T) {
		_, err := Resolve("https://other.example.com/job/App/1", testRegistry())
		if !errors.Is(err, ErrNoMatchingInstance) {
			t.Fatalf("err = %v, want ErrNoMatchingInstance", err)
		}
		if !strings.Contains(err.Error(), "https://ci.example.com") {
			t.Errorf("error message should list configured base URLs, got: %v", err)
		}
	})

	t.Run("no job segments", func(t *testing.T) {
		_, err := Resolve("https://ci.example.com/view/all", testRegistry())
		if !errors.Is(err, ErrJobPathNotFound) {
			t.Errorf("err = %v, want ErrJobPathNotFound", err)
		}
	})
}

func TestResolveLongestPrefixWins(t *testing.T) {
	registry := config.NewRegistry(
		config.Instance{BaseURL: "https://ci.example.com", User: "a", APIToken: "x"},
		config.Instance{BaseURL: "https://ci.example.com/team-a", User: "b", APIToken: "y"},
	)

	resolved, err := Resolve("https://ci.example.com/team-a/job/App/7", registry)
	if err != nil {
		t.Fatalf("Resolve() unexpected error: %v", err)
	}
	if resolved.Instance.BaseURL != "https://ci.example.com/team-a" {
		t.Errorf("Instance.BaseURL = %q, want longest prefix https://ci.example.com/team-a", resolved.Instance.BaseURL)
	}
	if resolved.JobPath != "App" || resolved.BuildID != "7" {
		t.Errorf("decomposition = (%q, %q), want (App, 7)", resolved.JobPath, resolved.BuildID)
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	registry := config.NewRegistry(
		config.Instance{BaseURL: "https://ci.example.com", User: "a", APIToken: "x"},
		config.Instance{BaseURL: "https://legacy.example.com", User: "b", APIToken: "y"},
	)

	first, err := Resolve("https://ci.example.com/job/Team/job/App/9", registry)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		again, err := Resolve("https://ci.example.com/job/Team/job/App/9", registry)
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("Resolve() not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestNormalizeJobPath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my-job", "my-job"},
		{"Folder/my-job", "Folder/job/my-job"},
		{"Folder/job/my-job", "Folder/job/my-job"},
		{"A/B/C", "A/job/B/job/C"},
	}

	for _, tt := range tests {
		if got := NormalizeJobPath(tt.in); got != tt.want {
			t.Errorf("NormalizeJobPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
