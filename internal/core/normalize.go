package core

import (
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/valter-silva-au/md-task/pkg/models"
)

// NormalizeOptions selects the optional normalization steps.
type NormalizeOptions struct {
	// AllowIncompleteInArchive disables moving pending tasks out of the
	// archive section.
	AllowIncompleteInArchive bool
}

// Normalizer rewrites a task document into its canonical layout.
type Normalizer struct {
	opts   NormalizeOptions
	logger *log.Logger
}

// NewNormalizer creates a Normalizer. A nil logger discards output.
func NewNormalizer(opts NormalizeOptions, logger *log.Logger) *Normalizer {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Normalizer{opts: opts, logger: logger}
}

// Normalize applies, in order: header guarantee, blank-run collapse,
// priority backfill, archive consistency and the trailing newline. It
// returns the canonical lines and whether any step changed them. The pass is
// idempotent.
func (n *Normalizer) Normalize(lines []string) ([]string, bool) {
	out := slices.Clone(lines)
	modified := false
	record := func(step string, changed bool) {
		if changed {
			modified = true
			n.logger.Debug("normalized document", "step", step)
		}
	}

	var changed bool
	out, changed = ensureHeader(out)
	record("header", changed)

	out, changed = collapseBlankRuns(out)
	record("blank-lines", changed)

	out, changed = backfillPriorities(out)
	record("priorities", changed)

	if !n.opts.AllowIncompleteInArchive {
		out, changed = restoreArchivedPending(out)
		record("archive", changed)
	}

	out, changed = ensureTrailingNewline(out)
	record("trailing-newline", changed)

	return out, modified
}

func ensureHeader(lines []string) ([]string, bool) {
	if len(lines) > 0 && ClassifyLine(lines[0]).Kind == LineTaskListHeader {
		return lines, false
	}
	return append([]string{TaskListHeader, ""}, lines...), true
}

// collapseBlankRuns keeps only the first line of every run of blank lines.
func collapseBlankRuns(lines []string) ([]string, bool) {
	out := make([]string, 0, len(lines))
	prevBlank := false
	for _, l := range lines {
		blank := isBlank(l)
		if blank && prevBlank {
			continue
		}
		out = append(out, l)
		prevBlank = blank
	}
	return out, len(out) != len(lines)
}

// backfillPriorities gives every unmarked checklist line the medium symbol.
func backfillPriorities(lines []string) ([]string, bool) {
	changed := false
	for i, raw := range lines {
		l := ClassifyLine(raw)
		if !l.IsTask() || l.Priority != "" {
			continue
		}
		lines[i] = formatTask(l.Marker(), models.PriorityMedium, l.Body)
		changed = true
	}
	return lines, changed
}

// restoreArchivedPending moves pending tasks found at or after the archive
// header back to the end of the active region, keeping their order.
func restoreArchivedPending(lines []string) ([]string, bool) {
	header := archiveIndex(lines)
	if header < 0 {
		return lines, false
	}

	var pending []string
	kept := make([]string, 0, len(lines))
	for i, raw := range lines {
		if i > header && ClassifyLine(raw).Kind == LinePending {
			pending = append(pending, raw)
			continue
		}
		kept = append(kept, raw)
	}
	if len(pending) == 0 {
		return lines, false
	}

	out := slices.Insert(kept, activeInsertIndex(kept), pending...)
	out, _ = collapseBlankRuns(out)
	return out, true
}

// ensureTrailingNewline makes the last line empty so the joined text ends
// with a newline. A trailing whitespace-only line is emptied.
func ensureTrailingNewline(lines []string) ([]string, bool) {
	if len(lines) == 0 {
		return append(lines, ""), true
	}
	last := len(lines) - 1
	switch {
	case lines[last] == "":
		return lines, false
	case isBlank(lines[last]):
		lines[last] = ""
		return lines, true
	}
	return append(lines, ""), true
}
