// Package console implements [stt.Provider] over a line-oriented reader,
// normally standard input. Each typed line stands in for one spoken
// utterance, which makes interviews runnable without audio hardware and
// drivable from scripts.
package console

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/oae-tools/vozform/pkg/provider/stt"
)

// Provider reads utterances as text lines.
type Provider struct {
	lines <-chan string
	done  <-chan struct{}
}

var _ stt.Provider = (*Provider)(nil)

// New starts reading lines from r. The reader goroutine lives until r is
// exhausted or fails; for stdin that is the process lifetime, so no explicit
// close is needed.
func New(r io.Reader) *Provider {
	lines := make(chan string)
	done := make(chan struct{})
	go func() {
		defer close(done)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return &Provider{lines: lines, done: done}
}

// Listen waits for the next line. A blank line or an elapsed silence window
// yields [stt.ErrNoSpeech]; end of input reports io.EOF.
func (p *Provider) Listen(ctx context.Context, opts stt.Options) (stt.Result, error) {
	timeout := opts.SilenceTimeout
	if timeout <= 0 {
		timeout = stt.DefaultSilenceTimeout
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return stt.Result{}, ctx.Err()
	case <-timer.C:
		return stt.Result{}, stt.ErrNoSpeech
	case <-p.done:
		return stt.Result{}, io.EOF
	case line := <-p.lines:
		line = strings.TrimSpace(line)
		if line == "" {
			return stt.Result{}, stt.ErrNoSpeech
		}
		if opts.OnInterim != nil {
			opts.OnInterim(line)
		}
		return stt.Result{Text: line, Confidence: 1}, nil
	}
}
