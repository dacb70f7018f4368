package report

import (
	"strings"
	"testing"

	"jenkins-distill/src/gitrefs"
	"jenkins-distill/src/jenkins"
	"jenkins-distill/src/snippets"
)

func TestConsoleLog(t *testing.T) {
	out := ConsoleLog("Team/job/App", "123", "line one\nline two")

	if !strings.Contains(out, "Console log for Team/job/App build 123") {
		t.Errorf("missing header: %q", out)
	}
	if !strings.Contains(out, "(17 characters)") {
		t.Errorf("missing size: %q", out)
	}
	if !strings.HasSuffix(out, "line one\nline two") {
		t.Errorf("missing body: %q", out)
	}

	if got := ConsoleLog("App", "1", ""); got != "Console log is empty." {
		t.Errorf("empty log = %q", got)
	}
}

func TestSnippetsJoinsWithDelimiter(t *testing.T) {
	out := Snippets("App", "7", 500000, []snippets.Snippet{
		{Start: 0, End: 2, Text: "first snippet"},
		{Start: 10, End: 12, Text: "second snippet"},
	})

	if !strings.Contains(out, "Found 2 error snippets") {
		t.Errorf("missing snippet count: %q", out)
	}
	if !strings.Contains(out, SnippetDelimiter) {
		t.Errorf("missing delimiter: %q", out)
	}
	if strings.Index(out, "first snippet") > strings.Index(out, "second snippet") {
		t.Error("snippets out of order")
	}
}

func TestNoSnippetsMentionsManualReview(t *testing.T) {
	out := NoSnippets("App", "7", 500000)
	if !strings.Contains(out, "Manual review may be needed") {
		t.Errorf("unexpected message: %q", out)
	}
}

func TestBuildInfo(t *testing.T) {
	build := &jenkins.Build{
		Number:    42,
		Result:    "FAILURE",
		Building:  false,
		Duration:  93500,
		Timestamp: 1714557600000,
		URL:       "https://ci.example.com/job/App/42/",
		Actions: []jenkins.Action{
			{Causes: []jenkins.Cause{{ShortDescription: "Started by timer"}}},
		},
	}

	out := BuildInfo("App", build)

	for _, want := range []string{
		"Build Information for App #42:",
		"Status: FAILURE",
		"Duration: 93.50 seconds",
		"Triggered by:",
		"  - Started by timer",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildInfoInProgress(t *testing.T) {
	out := BuildInfo("App", &jenkins.Build{Number: 43, Building: true})
	if !strings.Contains(out, "Status: IN_PROGRESS") {
		t.Errorf("empty result should render IN_PROGRESS:\n%s", out)
	}
	if strings.Contains(out, "Triggered by:") {
		t.Error("no causes, no trigger section")
	}
}

func TestGitReferences(t *testing.T) {
	out := GitReferences("App", "9", []gitrefs.Reference{
		{URL: "https://github.com/acme/widget.git", Branch: "develop", Commit: "abc1234"},
		{URL: "https://gitlab.com/acme/gadget.git"},
	})

	for _, want := range []string{
		"2 found",
		"- https://github.com/acme/widget.git",
		"  branch: develop",
		"  commit: abc1234",
		"- https://gitlab.com/acme/gadget.git",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	empty := GitReferences("App", "9", nil)
	if !strings.Contains(empty, "No git repository references found") {
		t.Errorf("empty case = %q", empty)
	}
}
