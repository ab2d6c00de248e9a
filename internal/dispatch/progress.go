package dispatch

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/conn-castle/sdkdl/internal/messages"
)

var progressNow = time.Now

const progressInterval = time.Second

// progressWriter counts bytes written through it and reports at most once per
// progressInterval. It never fails a write.
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
	last    time.Time
	bar     *progress.Model
}

func newProgressWriter(out io.Writer, total int64, bar bool) *progressWriter {
	pw := &progressWriter{out: out, total: total, last: progressNow()}
	if bar && total > 0 {
		m := progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))
		pw.bar = &m
	}
	return pw
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if now := progressNow(); now.Sub(p.last) >= progressInterval {
		p.last = now
		p.report()
	}
	return len(b), nil
}

// finish emits a final report so the last line shows the full count.
func (p *progressWriter) finish() {
	p.report()
	if p.bar != nil {
		_, _ = fmt.Fprintln(p.out)
	}
}

func (p *progressWriter) report() {
	switch {
	case p.bar != nil:
		_, _ = fmt.Fprintf(p.out, "\r%s %d / %d bytes", p.bar.ViewAs(p.fraction()), p.written, p.total)
	case p.total > 0:
		width := len(strconv.FormatInt(p.total, 10))
		_, _ = fmt.Fprintf(p.out, messages.DispatchProgressFmt, 100*p.fraction(), width, p.written, p.total)
	default:
		_, _ = fmt.Fprintf(p.out, messages.DispatchProgressUnknownFmt, p.written)
	}
}

func (p *progressWriter) fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	f := float64(p.written) / float64(p.total)
	if f > 1 {
		return 1
	}
	return f
}
