package fix

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines kept around each change.
const contextLines = 3

// LineKind classifies one line of a hunk.
type LineKind int

const (
	// LineContext is unchanged.
	LineContext LineKind = iota
	// LineAdded exists only in the modified buffer.
	LineAdded
	// LineRemoved exists only in the original buffer.
	LineRemoved
)

func (k LineKind) prefix() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one prefixed line of a hunk.
type DiffLine struct {
	Kind    LineKind
	Content string
}

// Hunk is a contiguous group of changes with surrounding context.
// Start lines are 1-based.
type Hunk struct {
	OrigStart int
	OrigCount int
	ModStart  int
	ModCount  int
	Lines     []DiffLine
}

// Diff is a line-level unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// GenerateDiff compares two buffers line by line. It returns nil when the
// buffers have identical lines.
func GenerateDiff(path string, original, modified []byte) *Diff {
	orig := splitLines(original)
	mod := splitLines(modified)

	ops := diffOps(orig, mod)

	d := &Diff{Path: path}
	for _, op := range ops {
		switch op.Kind {
		case LineAdded:
			d.Additions++
		case LineRemoved:
			d.Deletions++
		case LineContext:
		}
	}
	if d.Additions == 0 && d.Deletions == 0 {
		return nil
	}

	d.Hunks = groupHunks(ops)
	return d
}

// HasChanges reports whether the diff adds or removes anything.
func (d *Diff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n+++ b/%s\n", d.Path, d.Path)
	for _, h := range d.Hunks {
		b.WriteString(h.Header())
		b.WriteByte('\n')
		for _, l := range h.Lines {
			b.WriteString(l.String())
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Header renders the "@@ -a,b +c,d @@" line of the hunk.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%s +%s @@", hunkRange(h.OrigStart, h.OrigCount), hunkRange(h.ModStart, h.ModCount))
}

// String renders the line with its unified-diff prefix.
func (l DiffLine) String() string {
	return string(l.Kind.prefix()) + l.Content
}

func hunkRange(start, count int) string {
	if count == 1 {
		return fmt.Sprintf("%d", start)
	}
	return fmt.Sprintf("%d,%d", start, count)
}

// splitLines splits content into lines without their terminators. A
// trailing newline does not produce an extra empty line.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	text := strings.TrimSuffix(string(content), "\n")
	return strings.Split(text, "\n")
}

type diffOp struct {
	Kind    LineKind
	Content string
	Orig    int // 0-based index in the original, -1 for additions
	Mod     int // 0-based index in the modified, -1 for removals
}

// diffOps walks an LCS table to produce the edit script.
func diffOps(orig, mod []string) []diffOp {
	n, m := len(orig), len(mod)

	// lcs[i][j] is the LCS length of orig[i:] and mod[j:].
	lcs := make([][]int, n+1)
	for i := range lcs {
		lcs[i] = make([]int, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if orig[i] == mod[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	ops := make([]diffOp, 0, max(n, m))
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && orig[i] == mod[j]:
			ops = append(ops, diffOp{Kind: LineContext, Content: orig[i], Orig: i, Mod: j})
			i++
			j++
		case j < m && (i == n || lcs[i][j+1] >= lcs[i+1][j]):
			ops = append(ops, diffOp{Kind: LineAdded, Content: mod[j], Orig: -1, Mod: j})
			j++
		default:
			ops = append(ops, diffOp{Kind: LineRemoved, Content: orig[i], Orig: i, Mod: -1})
			i++
		}
	}
	return ops
}

// groupHunks merges changes closer than 2*contextLines into one hunk.
func groupHunks(ops []diffOp) []Hunk {
	var hunks []Hunk

	idx := 0
	for idx < len(ops) {
		for idx < len(ops) && ops[idx].Kind == LineContext {
			idx++
		}
		if idx == len(ops) {
			break
		}

		first := idx
		last := idx
		for k := idx; k < len(ops); k++ {
			if ops[k].Kind == LineContext {
				continue
			}
			if k-last > 2*contextLines {
				break
			}
			last = k
		}

		from := max(first-contextLines, 0)
		to := min(last+contextLines+1, len(ops))
		hunks = append(hunks, buildHunk(ops, from, to))
		idx = to
	}

	return hunks
}

func buildHunk(ops []diffOp, from, to int) Hunk {
	var h Hunk
	origNext, modNext := 0, 0
	for k := 0; k < from; k++ {
		if ops[k].Orig >= 0 {
			origNext = ops[k].Orig + 1
		}
		if ops[k].Mod >= 0 {
			modNext = ops[k].Mod + 1
		}
	}

	h.OrigStart = origNext + 1
	h.ModStart = modNext + 1
	for _, op := range ops[from:to] {
		h.Lines = append(h.Lines, DiffLine{Kind: op.Kind, Content: op.Content})
		if op.Kind != LineAdded {
			h.OrigCount++
		}
		if op.Kind != LineRemoved {
			h.ModCount++
		}
	}

	// Unified format points an empty side at the line before it.
	if h.OrigCount == 0 {
		h.OrigStart--
	}
	if h.ModCount == 0 {
		h.ModStart--
	}
	return h
}
