package format

import (
	"strings"
)

// tryCompact renders compact into a forked writer and commits it when it
// stays on one line, within maxWidth columns of the start, and within the
// global line limit. Otherwise the fork is discarded, trivia accounting
// included, and expanded renders into the real writer. Candidate functions
// must be effect-free outside the writer; they may run once or twice.
func (p *printer) tryCompact(maxWidth int, compact, expanded func()) {
	parent := p.w
	start := parent.Col()

	trial := parent.Fork()
	p.w = trial
	compact()
	p.w = parent

	end := trial.Col()
	oneLine := trial.Lines() == 0
	if !oneLine && trial.Lines() == 1 && trial.EndsWithNewline() {
		// A sticky-right line comment may close the construct's line. The
		// construct itself still sits on one line; its width is measured up
		// to the comment, matching how a later pass sees the same text.
		if c, ok := trial.TrailingCommentCol(); ok {
			oneLine = true
			end = c
		}
	}
	if oneLine && end-start <= maxWidth && end <= p.opt.MaxLineWidth {
		parent.Adopt(trial)
		return
	}
	expanded()
}

// multiline reports whether a string contains a line break.
func multiline(s string) bool {
	return strings.IndexByte(s, '\n') >= 0
}
