package console

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/Rin0913/telemetry-dashboard/internal/view"
)

// Lines feeds r into a channel, one trimmed line at a time. The channel is
// closed at end of input.
func Lines(r io.Reader) <-chan string {
	ch := make(chan string)
	go func() {
		defer close(ch)
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			ch <- strings.TrimSpace(sc.Text())
		}
	}()
	return ch
}

// Terminal asks questions on the printer and reads answers from the same
// input the command loop reads. It must only be used from the command loop's
// goroutine or from action goroutines that do not confirm.
type Terminal struct {
	ctx   context.Context
	lines <-chan string
	out   *Printer
	pub   view.Publisher
}

func NewTerminal(ctx context.Context, lines <-chan string, out *Printer, pub view.Publisher) *Terminal {
	return &Terminal{ctx: ctx, lines: lines, out: out, pub: pub}
}

// Confirm blocks for a yes/no answer. Anything but y or yes declines.
func (t *Terminal) Confirm(question string) bool {
	t.out.Println(question + " [y/N]")
	select {
	case <-t.ctx.Done():
		return false
	case line, ok := <-t.lines:
		if !ok {
			return false
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true
		default:
			return false
		}
	}
}

// Alert publishes the message as an acknowledgment. The printer frames it and
// the view server pushes it to connected viewers.
func (t *Terminal) Alert(message string) {
	t.pub.Publish(view.RegionAck, message)
}
