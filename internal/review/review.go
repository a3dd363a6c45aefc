package review

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

// Requester asks the platform to show its native "rate this app" prompt.
// The platform may decide not to show anything.
type Requester interface {
	RequestReview(ctx context.Context) error
}

// RequesterFunc adapts a function to Requester.
type RequesterFunc func(ctx context.Context) error

func (f RequesterFunc) RequestReview(ctx context.Context) error { return f(ctx) }

// Scheduler runs f once after d.
type Scheduler interface {
	After(d time.Duration, f func())
}

// WriterRequester prints a short review invitation, used outside the viewer.
type WriterRequester struct {
	W   io.Writer
	URL string
}

func (r WriterRequester) RequestReview(ctx context.Context) error {
	if r.W == nil {
		return nil
	}
	return WriteInvitation(r.W, r.URL)
}

// WriteInvitation renders the invitation text shared by the CLI and the viewer.
func WriteInvitation(w io.Writer, url string) error {
	msg := Invitation(url)
	_, err := io.WriteString(w, msg+"\n")
	return err
}

// Invitation returns the review prompt text.
func Invitation(url string) string {
	var b strings.Builder
	b.WriteString("Enjoying ScaleMate? A quick review helps other musicians find it.")
	if u := strings.TrimSpace(url); u != "" {
		fmt.Fprintf(&b, "\nLeave one at %s", u)
	}
	return b.String()
}

// TimerScheduler defers work with time.AfterFunc and tracks pending calls so
// a short-lived process can wait for them before exiting.
type TimerScheduler struct {
	wg sync.WaitGroup
}

func NewTimerScheduler() *TimerScheduler { return &TimerScheduler{} }

func (s *TimerScheduler) After(d time.Duration, f func()) {
	s.wg.Add(1)
	time.AfterFunc(d, func() {
		defer s.wg.Done()
		f()
	})
}

// Wait blocks until every scheduled call ran or ctx is done.
func (s *TimerScheduler) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
