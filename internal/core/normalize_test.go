package core

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func normalize(t *testing.T, opts NormalizeOptions, in []string) ([]string, bool) {
	t.Helper()
	return NewNormalizer(opts, nil).Normalize(in)
}

func TestNormalize_Canonical(t *testing.T) {
	in := doc(TaskListHeader, "", "- [ ] 🔴 a", "- [x] 🟢 b", "")
	got, modified := normalize(t, NormalizeOptions{}, in)
	if modified {
		t.Error("expected canonical document to be unmodified")
	}
	assertLines(t, got, in)
}

func TestNormalize_EmptyDocument(t *testing.T) {
	got, modified := normalize(t, NormalizeOptions{}, nil)
	if !modified {
		t.Error("expected header to be added")
	}
	assertLines(t, got, doc(TaskListHeader, ""))
}

func TestNormalize_AddsHeader(t *testing.T) {
	got, modified := normalize(t, NormalizeOptions{}, doc("# Title", "- [ ] a"))
	if !modified {
		t.Error("expected modification")
	}
	assertLines(t, got, doc(TaskListHeader, "", "# Title", "- [ ] 🟡 a", ""))
}

func TestNormalize_CollapsesBlankRuns(t *testing.T) {
	in := doc(TaskListHeader, "", "", "- [ ] 🔴 a", "   ", "", "- [ ] 🟢 b", "", "")
	got, _ := normalize(t, NormalizeOptions{}, in)
	assertLines(t, got, doc(TaskListHeader, "", "- [ ] 🔴 a", "   ", "- [ ] 🟢 b", ""))
}

func TestNormalize_BackfillsPriority(t *testing.T) {
	in := doc(TaskListHeader, "", "- [ ] plain", "- [x] finished", "- [ ] 🟢 marked", "")
	got, modified := normalize(t, NormalizeOptions{}, in)
	if !modified {
		t.Error("expected modification")
	}
	assertLines(t, got, doc(TaskListHeader, "", "- [ ] 🟡 plain", "- [x] 🟡 finished", "- [ ] 🟢 marked", ""))
}

func TestNormalize_RestoresPendingFromArchive(t *testing.T) {
	in := doc(TaskListHeader, "", "- [ ] 🔴 a", "", ArchiveHeader, "", "- [ ] 🟡 z", "- [x] 🟢 o", "")
	got, modified := normalize(t, NormalizeOptions{}, in)
	if !modified {
		t.Error("expected modification")
	}
	assertLines(t, got, doc(TaskListHeader, "", "- [ ] 🔴 a", "- [ ] 🟡 z", "", ArchiveHeader, "", "- [x] 🟢 o", ""))
}

func TestNormalize_RestoredTaskKeepsArchiveSeparator(t *testing.T) {
	in := doc(TaskListHeader, "", "- [ ] 🟡 a", "", ArchiveHeader, "", "- [ ] 🟡 x", "")
	got, _ := normalize(t, NormalizeOptions{}, in)
	assertLines(t, got, doc(TaskListHeader, "", "- [ ] 🟡 a", "- [ ] 🟡 x", "", ArchiveHeader, ""))
}

func TestNormalize_RestoreCollapsesLeftoverBlanks(t *testing.T) {
	in := doc(TaskListHeader, "", ArchiveHeader, "", "- [ ] 🟡 z", "", "- [x] 🟢 o")
	got, _ := normalize(t, NormalizeOptions{}, in)
	assertLines(t, got, doc(TaskListHeader, "", "- [ ] 🟡 z", ArchiveHeader, "", "- [x] 🟢 o", ""))

	again, modified := normalize(t, NormalizeOptions{}, got)
	if modified {
		t.Errorf("second pass modified document: %q", again)
	}
}

func TestNormalize_AllowIncompleteInArchive(t *testing.T) {
	in := doc(TaskListHeader, "", "- [ ] 🔴 a", "", ArchiveHeader, "", "- [ ] 🟡 z", "")
	got, modified := normalize(t, NormalizeOptions{AllowIncompleteInArchive: true}, in)
	if modified {
		t.Error("expected document to stay untouched")
	}
	assertLines(t, got, in)
}

func TestNormalize_AddsTrailingNewline(t *testing.T) {
	got, modified := normalize(t, NormalizeOptions{}, doc(TaskListHeader, "", "- [ ] 🔴 a"))
	if !modified {
		t.Error("expected modification")
	}
	if JoinLines(got) != "## タスク一覧\n\n- [ ] 🔴 a\n" {
		t.Errorf("unexpected text %q", JoinLines(got))
	}
}

func TestNormalize_EmptiesTrailingWhitespaceLine(t *testing.T) {
	in := SplitLines("## タスク一覧\n\n- [ ] 🔴 a\n   \n")
	got, modified := normalize(t, NormalizeOptions{}, in)
	if !modified {
		t.Error("expected modification")
	}
	if JoinLines(got) != "## タスク一覧\n\n- [ ] 🔴 a\n" {
		t.Errorf("unexpected text %q", JoinLines(got))
	}
}

func TestNormalize_DoesNotModifyInput(t *testing.T) {
	in := doc("- [ ] plain")
	_, _ = normalize(t, NormalizeOptions{}, in)
	if in[0] != "- [ ] plain" {
		t.Errorf("input modified: %q", in)
	}
}

func TestNormalize_LogsChangedSteps(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	n := NewNormalizer(NormalizeOptions{}, logger)

	_, _ = n.Normalize(doc("- [ ] plain"))

	out := buf.String()
	for _, step := range []string{"header", "priorities", "trailing-newline"} {
		if !strings.Contains(out, step) {
			t.Errorf("expected log to mention step %q, got:\n%s", step, out)
		}
	}
	if strings.Contains(out, "blank-lines") {
		t.Errorf("unchanged step should not be logged, got:\n%s", out)
	}
}
