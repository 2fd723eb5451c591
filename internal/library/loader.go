package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abema/go-mp4"
	"github.com/dhowden/tag"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-audio/wav"
	"github.com/jfreymuth/oggvorbis"
	"github.com/mewkiz/flac"
	"github.com/tcolgate/mp3"
)

// Metadata is what the loader knows about one audio file.
type Metadata struct {
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// TagLoader reads tags with dhowden/tag and probes the container for the
// total duration.
type TagLoader struct{}

// Load reads the metadata of the file at path. Files without any tag block
// load with empty fields; a duration that cannot be determined is zero.
func (TagLoader) Load(path string) (Metadata, error) {
	file, err := os.Open(path)
	if err != nil {
		return Metadata{}, &MetadataError{Path: path, Err: err}
	}
	defer file.Close()

	var md Metadata
	tags, err := tag.ReadFrom(file)
	switch {
	case err == nil:
		md.Artist = strings.TrimSpace(tags.Artist())
		md.Title = strings.TrimSpace(tags.Title())
		md.Album = strings.TrimSpace(tags.Album())
	case errors.Is(err, tag.ErrNoTagsFound):
	default:
		return Metadata{}, &MetadataError{Path: path, Err: err}
	}

	if d, err := Duration(path); err == nil {
		md.Duration = d
	}
	return md, nil
}

// Format names a supported container.
type Format string

const (
	FormatUnknown Format = ""
	FormatMP3     Format = "mp3"
	FormatFLAC    Format = "flac"
	FormatWAV     Format = "wav"
	FormatOGG     Format = "ogg"
	FormatMP4     Format = "mp4"
)

// DetectFormat identifies the container by extension, falling back to
// content sniffing for files with unusual extensions.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		return FormatMP3
	case ".flac":
		return FormatFLAC
	case ".wav", ".wave":
		return FormatWAV
	case ".ogg", ".oga":
		return FormatOGG
	case ".m4a", ".mp4", ".aac":
		return FormatMP4
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return FormatUnknown
	}
	switch {
	case mtype.Is("audio/mpeg"):
		return FormatMP3
	case mtype.Is("audio/flac"):
		return FormatFLAC
	case mtype.Is("audio/wav"):
		return FormatWAV
	case mtype.Is("audio/ogg"):
		return FormatOGG
	case mtype.Is("audio/mp4"), mtype.Is("video/mp4"), mtype.Is("audio/x-m4a"):
		return FormatMP4
	}
	return FormatUnknown
}

// Duration computes the playing time of an audio file.
func Duration(path string) (time.Duration, error) {
	switch DetectFormat(path) {
	case FormatMP3:
		return mp3Duration(path)
	case FormatFLAC:
		return flacDuration(path)
	case FormatWAV:
		return wavDuration(path)
	case FormatOGG:
		return oggDuration(path)
	case FormatMP4:
		return mp4Duration(path)
	default:
		return 0, fmt.Errorf("unsupported format: %s", filepath.Ext(path))
	}
}

func mp3Duration(path string) (time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	decoder := mp3.NewDecoder(file)
	var (
		frame   mp3.Frame
		skipped int
		total   time.Duration
	)
	for {
		if err := decoder.Decode(&frame, &skipped); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return 0, err
		}
		total += frame.Duration()
	}
	return total, nil
}

func flacDuration(path string) (time.Duration, error) {
	stream, err := flac.ParseFile(path)
	if err != nil {
		return 0, err
	}
	defer stream.Close()

	info := stream.Info
	if info == nil || info.SampleRate == 0 {
		return 0, errors.New("flac stream info missing sample rate")
	}
	return samplesToDuration(int64(info.NSamples), int64(info.SampleRate)), nil
}

func wavDuration(path string) (time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	decoder := wav.NewDecoder(file)
	if !decoder.IsValidFile() {
		return 0, errors.New("invalid wav file")
	}
	return decoder.Duration()
}

func oggDuration(path string) (time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	reader, err := oggvorbis.NewReader(file)
	if err != nil {
		return 0, err
	}
	if reader.SampleRate() == 0 {
		return 0, errors.New("ogg stream has no sample rate")
	}
	return samplesToDuration(reader.Length(), int64(reader.SampleRate())), nil
}

func mp4Duration(path string) (time.Duration, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	info, err := mp4.Probe(file)
	if err != nil {
		return 0, err
	}
	if info.Timescale == 0 {
		return 0, errors.New("mp4 movie header has no timescale")
	}
	return samplesToDuration(int64(info.Duration), int64(info.Timescale)), nil
}

func samplesToDuration(samples, rate int64) time.Duration {
	return time.Duration(float64(samples) / float64(rate) * float64(time.Second))
}

// FormatDuration renders d as m:ss.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
