package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirplay/internal/audio"
)

func TestNewRequiresCollaborators(t *testing.T) {
	_, err := New(Options{Root: "/music"})
	assert.Error(t, err)
}

func TestNewFailsOnUnreadableStart(t *testing.T) {
	_, err := New(Options{
		Lister: newFakeLister(),
		Loader: newFakeLoader(),
		Sink:   audio.NewMemorySink(),
		Root:   "/missing",
	})
	assert.Error(t, err)
}

func TestInitialSnapshot(t *testing.T) {
	f := newFixture(t)
	s := f.engine.Snapshot()

	assert.Equal(t, "/music", s.Dir)
	assert.Equal(t, []string{"album", "a.mp3", "b.mp3", "c.mp3"}, names(s.Listing))
	assert.True(t, s.HasSelection())
	assert.Equal(t, Page{From: 0, To: 3, Current: 1, Total: 2}, s.Page)
	assert.Equal(t, Browse, s.Mode)
	assert.Nil(t, s.Playing)
	assert.Equal(t, 1.0, s.Volume)
	assert.Equal(t, Sequential, s.Style)
	assert.Empty(t, s.Error)
}

func TestOpenAndParent(t *testing.T) {
	f := newFixture(t)

	f.engine.Handle(Key(EvOpen))
	assert.Equal(t, "/music/album", f.engine.Dir())

	f.engine.Handle(Key(EvBack))
	assert.Equal(t, "/music", f.engine.Dir())
	s := f.engine.Snapshot()
	assert.Equal(t, "/music/album", s.Listing[s.Selected].Path)

	f.engine.Handle(Key(EvBack))
	assert.Equal(t, "/music", f.engine.Dir())
}

func TestOpenOnFileDoesNothing(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Key(EvMoveDown))

	f.engine.Handle(Key(EvOpen))
	assert.Equal(t, "/music", f.engine.Dir())
	assert.Empty(t, f.engine.Snapshot().Pending)
}

func TestEnterFailureSetsErrorAndKeepsState(t *testing.T) {
	f := newFixture(t)
	f.lister.add("/music", "locked/", "a.mp3")
	f.engine.Refresh()
	before := f.engine.Snapshot()

	f.engine.Handle(Key(EvSubmit))

	after := f.engine.Snapshot()
	assert.Equal(t, before.Dir, after.Dir)
	assert.Equal(t, before.Listing, after.Listing)
	assert.Equal(t, before.Selected, after.Selected)
	assert.Contains(t, after.Error, "/music/locked")

	f.engine.Handle(Key(EvMoveDown))
	assert.Empty(t, f.engine.Err(), "error slot clears on the next input")
}

func TestSubmitOnFileStartsPlayback(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Key(EvMoveDown))
	f.engine.Handle(Key(EvSubmit))

	s := f.engine.Snapshot()
	require.NotNil(t, s.Playing)
	assert.Equal(t, "a.mp3", s.Playing.Name)
	assert.Equal(t, []string{"/music/a.mp3"}, f.sink.Queued())

	f.engine.Handle(Key(EvMoveDown))
	f.engine.Handle(Key(EvSubmit))
	assert.Equal(t, []string{"b.mp3"}, f.pendingNames())
}

func TestSubmitOnBrokenFileReportsError(t *testing.T) {
	f := newFixture(t)
	f.loader.broken["/music/a.mp3"] = true
	f.engine.Handle(Key(EvMoveDown))
	f.engine.Handle(Key(EvSubmit))

	s := f.engine.Snapshot()
	assert.Nil(t, s.Playing)
	assert.Contains(t, s.Error, "corrupt header")
}

func TestLiveSearch(t *testing.T) {
	f := newFixture(t)

	f.engine.Handle(Key(EvEnterSearch))
	f.engine.Handle(Char('b'))
	s := f.engine.Snapshot()
	assert.Equal(t, Search, s.Mode)
	assert.Equal(t, "|b", s.SearchBuffer)
	assert.Equal(t, []string{"album", "b.mp3"}, names(s.Listing))

	f.engine.Handle(Char('.'))
	assert.Equal(t, []string{"b.mp3"}, names(f.engine.Snapshot().Listing))

	f.engine.Handle(Key(EvSubmit))
	s = f.engine.Snapshot()
	assert.Equal(t, Browse, s.Mode)
	assert.Equal(t, "b.", s.Filter)
	assert.Equal(t, []string{"b.mp3"}, names(s.Listing))
}

func TestSearchCancelRelistsUnfiltered(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Key(EvEnterSearch))
	f.engine.Handle(Char('c'))
	f.engine.Handle(Key(EvCancel))

	s := f.engine.Snapshot()
	assert.Equal(t, Browse, s.Mode)
	assert.Len(t, s.Listing, 4)
	assert.Empty(t, s.Filter)
}

func TestCommandAll(t *testing.T) {
	f := newFixture(t)
	f.command("all")

	s := f.engine.Snapshot()
	require.NotNil(t, s.Playing)
	assert.Equal(t, "a.mp3", s.Playing.Name)
	assert.Equal(t, []string{"b.mp3", "c.mp3"}, f.pendingNames())
	assert.Equal(t, 3, s.Count)
	assert.Empty(t, s.Error)
}

func TestCommandAllOnFilteredListing(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Key(EvEnterSearch))
	f.engine.Handle(Char('c'))
	f.engine.Handle(Key(EvSubmit))

	f.command("all")

	s := f.engine.Snapshot()
	require.NotNil(t, s.Playing)
	assert.Equal(t, "c.mp3", s.Playing.Name)
	assert.Empty(t, s.Pending)
	assert.Len(t, s.Listing, 4, "submitting a command relists unfiltered")
}

func TestCommandRemove(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"remove 2", []string{"A", "C"}},
		{"remove 1 3", []string{"B"}},
		{"RM 3 1", []string{"B"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			f := newFixture(t)
			f.sink.Append("/music/busy.mp3")
			for _, n := range []string{"A", "B", "C"} {
				require.NoError(t, f.engine.playlist.EnqueuePath("/music/"+n))
			}

			f.command(tt.line)
			assert.Equal(t, tt.want, f.pendingNames())
			assert.Empty(t, f.engine.Err())
		})
	}
}

func TestCommandRemoveBadTokenKeepsGoing(t *testing.T) {
	f := newFixture(t)
	f.sink.Append("/music/busy.mp3")
	for _, n := range []string{"A", "B", "C"} {
		require.NoError(t, f.engine.playlist.EnqueuePath("/music/"+n))
	}

	f.command("rm x 2")

	assert.Equal(t, []string{"A", "C"}, f.pendingNames())
	assert.Contains(t, f.engine.Err(), `"x"`)
}

func TestUnknownCommand(t *testing.T) {
	f := newFixture(t)
	f.sink.Append("/music/busy.mp3")
	require.NoError(t, f.engine.playlist.EnqueuePath("/music/a.mp3"))
	f.command("sc")
	before := f.pendingNames()

	f.command("bogus")

	s := f.engine.Snapshot()
	assert.Equal(t, before, f.pendingNames())
	assert.Equal(t, SingleRepeat, s.Style)
	assert.NotEmpty(t, s.Error)
}

func TestCommandStyleClearShuffleNext(t *testing.T) {
	f := newFixture(t)
	f.command("all")

	f.command("sc")
	assert.Equal(t, SingleRepeat, f.engine.Snapshot().Style)
	f.command("od")
	assert.Equal(t, Sequential, f.engine.Snapshot().Style)

	f.command("next")
	s := f.engine.Snapshot()
	assert.Equal(t, "b.mp3", s.Playing.Name)
	assert.Equal(t, []string{"/music/b.mp3"}, f.sink.Queued())

	f.command("sh")
	assert.Equal(t, []string{"c.mp3"}, f.pendingNames())

	f.command("cls")
	s = f.engine.Snapshot()
	assert.Empty(t, s.Pending)
	require.NotNil(t, s.Playing, "clear keeps the current track")
	assert.Equal(t, "b.mp3", s.Playing.Name)
}

func TestCommandResetsSelection(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Move(EvMoveDown, 2))

	f.command("od")

	s := f.engine.Snapshot()
	assert.Equal(t, 0, s.Selected)
}

func TestTickFollowsSink(t *testing.T) {
	f := newFixture(t)
	f.command("all")

	f.clock.Advance(10 * time.Second)
	f.engine.Tick()
	assert.Equal(t, 10*time.Second, f.engine.Snapshot().Playing.Position)

	f.sink.Finish()
	f.engine.Tick()
	s := f.engine.Snapshot()
	assert.Equal(t, "b.mp3", s.Playing.Name)
	assert.Equal(t, time.Duration(0), s.Playing.Position)
}

func TestTogglePauseAndVolume(t *testing.T) {
	f := newFixture(t)

	f.engine.Handle(Key(EvTogglePause))
	assert.True(t, f.engine.Snapshot().Paused)
	f.engine.Handle(Key(EvTogglePause))
	assert.False(t, f.engine.Snapshot().Paused)

	f.engine.Handle(Key(EvVolumeDown))
	assert.Equal(t, 0.95, f.engine.Snapshot().Volume)
	f.engine.Handle(Key(EvVolumeUp))
	f.engine.Handle(Key(EvVolumeUp))
	assert.Equal(t, 1.05, f.engine.Snapshot().Volume)
}

func TestPagingThroughEngine(t *testing.T) {
	f := newFixture(t)

	f.engine.Handle(Key(EvPageNext))
	s := f.engine.Snapshot()
	assert.Equal(t, 3, s.Selected)
	assert.Equal(t, 2, s.Page.Current)

	f.engine.Resize(10)
	s = f.engine.Snapshot()
	assert.Equal(t, 1, s.Page.Total)

	f.engine.Handle(Key(EvMoveTop))
	f.engine.Handle(Key(EvMoveBottom))
	assert.Equal(t, 3, f.engine.Snapshot().Selected)
}

func TestQuit(t *testing.T) {
	f := newFixture(t)
	assert.True(t, f.engine.Handle(Key(EvQuit)))
	assert.False(t, f.engine.Handle(Key(EvMoveDown)))
}

func TestRefreshAfterDiskChange(t *testing.T) {
	f := newFixture(t)
	f.engine.Handle(Key(EvMoveBottom))

	f.lister.add("/music", "album/", "a.mp3", "b.mp3", "c.mp3", "d.mp3")
	f.engine.Refresh()

	s := f.engine.Snapshot()
	assert.Len(t, s.Listing, 5)
	assert.Equal(t, "/music/c.mp3", s.Listing[s.Selected].Path)
}
