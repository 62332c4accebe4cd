package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestWorker(t *testing.T) {
	Convey("Given a worker limited to two tasks", t, func() {
		w := New(2)
		defer w.Close()

		Convey("Results are delivered through futures", func() {
			f := Submit(w, func(ctx context.Context) (int, error) {
				return 42, nil
			})

			v, err := f.Await(context.Background())
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 42)

			v, err, ok := f.Poll()
			So(ok, ShouldBeTrue)
			So(err, ShouldBeNil)
			So(v, ShouldEqual, 42)
		})

		Convey("Submit returns before slow tasks run and concurrency stays bounded", func() {
			var running, peak atomic.Int32
			release := make(chan struct{})

			task := func(ctx context.Context) (struct{}, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-release
				running.Add(-1)
				return struct{}{}, nil
			}

			started := time.Now()
			futures := make([]*Future[struct{}], 6)
			for i := range futures {
				futures[i] = Submit(w, task)
			}
			So(time.Since(started), ShouldBeLessThan, 100*time.Millisecond)

			_, _, ok := futures[0].Poll()
			So(ok, ShouldBeFalse)

			time.Sleep(30 * time.Millisecond)
			close(release)
			for _, f := range futures {
				_, err := f.Await(context.Background())
				So(err, ShouldBeNil)
			}
			So(peak.Load(), ShouldEqual, 2)
		})

		Convey("A panicking task resolves with an error", func() {
			f := Submit(w, func(ctx context.Context) (string, error) {
				panic("boom")
			})

			_, err := f.Await(context.Background())
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "boom")
		})

		Convey("Task errors are passed through", func() {
			sentinel := errors.New("upstream down")
			_, err := Submit(w, func(ctx context.Context) (int, error) {
				return 0, sentinel
			}).Await(context.Background())
			So(errors.Is(err, sentinel), ShouldBeTrue)
		})

		Convey("Await gives up when its context ends", func() {
			block := make(chan struct{})
			defer close(block)

			f := Submit(w, func(ctx context.Context) (int, error) {
				<-block
				return 1, nil
			})

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
			defer cancel()
			_, err := f.Await(ctx)
			So(errors.Is(err, context.DeadlineExceeded), ShouldBeTrue)
		})
	})

	Convey("Given a closed worker", t, func() {
		w := New(1)
		w.Close()

		Convey("New tasks fail with ErrClosed", func() {
			_, err := Submit(w, func(ctx context.Context) (int, error) {
				return 1, nil
			}).Await(context.Background())
			So(errors.Is(err, ErrClosed), ShouldBeTrue)
		})

		Convey("Closing twice is harmless", func() {
			So(w.Close, ShouldNotPanic)
		})
	})

	Convey("Close cancels the task context", t, func() {
		w := New(1)
		started := make(chan struct{})

		f := Submit(w, func(ctx context.Context) (int, error) {
			close(started)
			<-ctx.Done()
			return 0, ctx.Err()
		})

		<-started
		w.Close()

		_, err := f.Await(context.Background())
		So(errors.Is(err, context.Canceled), ShouldBeTrue)
	})

	Convey("Resolved futures are complete", t, func() {
		v, err := Resolved(7, nil).Await(context.Background())
		So(err, ShouldBeNil)
		So(v, ShouldEqual, 7)
	})
}
