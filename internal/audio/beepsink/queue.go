package beepsink

import (
	"io"

	"github.com/gopxl/beep"
)

type queuedTrack struct {
	path     string
	streamer beep.Streamer
	closers  []io.Closer
}

func (t queuedTrack) close() {
	for _, c := range t.closers {
		_ = c.Close()
	}
}

// trackQueue plays streamers one after another and emits silence when it
// runs dry, so the speaker never stops pulling from it. It is not
// goroutine-safe; callers hold the speaker lock.
type trackQueue struct {
	tracks []queuedTrack
}

func (q *trackQueue) add(t queuedTrack) {
	q.tracks = append(q.tracks, t)
}

func (q *trackQueue) len() int {
	return len(q.tracks)
}

func (q *trackQueue) clear() {
	for _, t := range q.tracks {
		t.close()
	}
	q.tracks = nil
}

func (q *trackQueue) Stream(samples [][2]float64) (n int, ok bool) {
	filled := 0
	for filled < len(samples) {
		if len(q.tracks) == 0 {
			for i := range samples[filled:] {
				samples[filled+i] = [2]float64{}
			}
			break
		}

		got, more := q.tracks[0].streamer.Stream(samples[filled:])
		if !more {
			q.tracks[0].close()
			q.tracks = q.tracks[1:]
		}
		filled += got
	}
	return len(samples), true
}

func (q *trackQueue) Err() error {
	return nil
}
