package library

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/sirupsen/logrus"

	"dirplay/internal/pathutil"
)

// DirLister lists directories from the local filesystem. Files are kept
// only when their content sniffs as audio or video.
type DirLister struct {
	ShowHidden bool
	log        logrus.FieldLogger
}

// NewDirLister creates a lister. A nil logger discards output.
func NewDirLister(showHidden bool, log logrus.FieldLogger) *DirLister {
	if log == nil {
		log = discardLogger()
	}
	return &DirLister{
		ShowHidden: showHidden,
		log:        log.WithField("component", "lister"),
	}
}

// List returns the entries of dir whose display name contains filter.
// An empty filter keeps every entry. The result is not sorted.
func (l *DirLister) List(dir, filter string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &IOError{Path: dir, Err: err}
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		name := de.Name()
		if !l.ShowHidden && pathutil.IsHidden(name) {
			continue
		}
		if filter != "" && !strings.Contains(name, filter) {
			continue
		}

		path := filepath.Join(dir, name)
		isDir := de.IsDir()
		if de.Type()&os.ModeSymlink != 0 {
			// Follow links so linked album folders are browsable
			info, err := os.Stat(path)
			if err != nil {
				l.log.WithError(err).Debugf("skipping broken link %s", path)
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			entries = append(entries, NewDirectory(path))
			continue
		}

		audio, err := IsAudio(path)
		if err != nil {
			l.log.WithError(err).Debugf("skipping unreadable file %s", path)
			continue
		}
		if audio {
			entries = append(entries, NewFile(path))
		}
	}

	return entries, nil
}

// IsAudio sniffs the head of a file and reports whether it looks like
// audio or video content.
func IsAudio(path string) (bool, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return false, err
	}
	for m := mtype; m != nil; m = m.Parent() {
		s := m.String()
		if strings.HasPrefix(s, "audio/") || strings.HasPrefix(s, "video/") {
			return true, nil
		}
	}
	return false, nil
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
