package player

import (
	"bytes"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog"
)

const (
	extMP3  = ".mp3"
	extFLAC = ".flac"
	extOGG  = ".ogg"
	extOGA  = ".oga"
	extWAV  = ".wav"
)

const (
	tickInterval    = 250 * time.Millisecond
	resampleQuality = 4
	eventBuffer     = 64
	noSeek          = time.Duration(-1)
)

// Speaker is a Device backed by the system audio output through beep.
//
// Sources are local paths, file:// URLs or http(s) URLs. Load returns at
// once; the source is fetched and decoded in the background and reported
// with EventMetadataLoaded or EventError. Play and Seek issued while loading
// are applied once the source is ready. Remote audio is fully buffered so
// that seeking works.
type Speaker struct {
	mu sync.Mutex

	sampleRate  beep.SampleRate
	initialized bool

	source      string
	gen         uint64
	loading     bool
	wantPlay    bool
	pendingSeek time.Duration

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	level    float64
	playing  bool
	drained  bool // the stream reached its end and left the mixer

	client *http.Client
	log    zerolog.Logger

	events chan Event
	done   chan struct{}
	once   sync.Once
}

// NewSpeaker creates a speaker device. The audio output itself is opened
// on the first successful load.
func NewSpeaker(log zerolog.Logger) *Speaker {
	s := &Speaker{
		level:       1,
		pendingSeek: noSeek,
		client:      &http.Client{Timeout: 60 * time.Second},
		log:         log.With().Str("component", "speaker").Logger(),
		events:      make(chan Event, eventBuffer),
		done:        make(chan struct{}),
	}
	go s.tickLoop()
	return s
}

func (s *Speaker) Events() <-chan Event { return s.events }

// Load replaces the current source and starts loading it.
func (s *Speaker) Load(source string) error {
	if source == "" {
		return ErrNoSource
	}
	s.Release()

	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.source = source
	s.loading = true
	s.wantPlay = false
	s.pendingSeek = noSeek
	s.mu.Unlock()

	go s.load(gen, source)
	return nil
}

func (s *Speaker) load(gen uint64, source string) {
	streamer, format, err := s.openAndDecode(source)

	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		if streamer != nil {
			_ = streamer.Close()
		}
		return
	}
	s.loading = false
	if err == nil {
		err = s.installLocked(gen, streamer, format)
	}
	if err != nil {
		s.source = ""
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("source", source).Msg("load failed")
		s.emit(Event{Kind: EventError, Source: source, Err: err})
		return
	}

	if s.pendingSeek != noSeek {
		_ = s.seekLocked(s.pendingSeek)
		s.pendingSeek = noSeek
	}
	loaded := Event{Kind: EventMetadataLoaded, Source: source, Position: s.positionLocked(), Duration: s.durationLocked()}
	var started *Event
	if s.wantPlay {
		ev := s.startLocked()
		started = &ev
	}
	s.mu.Unlock()

	s.log.Debug().Str("source", source).Dur("duration", loaded.Duration).Msg("source loaded")
	s.emit(loaded)
	if started != nil {
		s.emit(*started)
	}
}

func (s *Speaker) openAndDecode(source string) (beep.StreamSeekCloser, beep.Format, error) {
	rc, ext, err := s.open(source)
	if err != nil {
		return nil, beep.Format{}, errors.Wrapf(err, "open %s", source)
	}
	streamer, format, err := decode(rc, ext)
	if err != nil {
		_ = rc.Close()
		return nil, beep.Format{}, errors.Wrapf(err, "decode %s", source)
	}
	return streamer, format, nil
}

func (s *Speaker) installLocked(gen uint64, streamer beep.StreamSeekCloser, format beep.Format) error {
	if !s.initialized {
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			_ = streamer.Close()
			return errors.Wrap(err, "init speaker")
		}
		s.sampleRate = format.SampleRate
		s.initialized = true
	}

	var out beep.Streamer = streamer
	if format.SampleRate != s.sampleRate {
		out = beep.Resample(resampleQuality, format.SampleRate, s.sampleRate, streamer)
	}

	s.streamer = streamer
	s.format = format
	s.ctrl = &beep.Ctrl{Streamer: out, Paused: true}
	vol, silent := levelToVolume(s.level)
	s.volume = &effects.Volume{Streamer: s.ctrl, Base: 2, Volume: vol, Silent: silent}
	s.enqueueLocked(gen)
	return nil
}

// enqueueLocked hands the effect chain to the mixer.
func (s *Speaker) enqueueLocked(gen uint64) {
	s.drained = false
	speaker.Play(beep.Seq(s.volume, beep.Callback(func() {
		// Runs on the audio goroutine with the speaker lock held.
		go s.finished(gen)
	})))
}

func (s *Speaker) Play() error {
	s.mu.Lock()
	switch {
	case s.source == "":
		s.mu.Unlock()
		return ErrNoSource
	case s.loading:
		s.wantPlay = true
		s.mu.Unlock()
		return nil
	}
	ev := s.startLocked()
	s.mu.Unlock()

	s.emit(ev)
	return nil
}

func (s *Speaker) startLocked() Event {
	if s.drained {
		if s.streamer.Position() >= s.streamer.Len() {
			_ = s.streamer.Seek(0)
		}
		s.enqueueLocked(s.gen)
	}
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
	s.playing = true
	return Event{Kind: EventPlay, Source: s.source, Position: s.positionLocked(), Duration: s.durationLocked()}
}

func (s *Speaker) Pause() {
	s.mu.Lock()
	if s.loading {
		s.wantPlay = false
		s.mu.Unlock()
		return
	}
	if s.ctrl == nil || !s.playing {
		s.mu.Unlock()
		return
	}
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
	s.playing = false
	ev := Event{Kind: EventPause, Source: s.source, Position: s.positionLocked(), Duration: s.durationLocked()}
	s.mu.Unlock()

	s.emit(ev)
}

func (s *Speaker) Seek(pos time.Duration) {
	s.mu.Lock()
	if s.loading {
		s.pendingSeek = pos
		s.mu.Unlock()
		return
	}
	if s.streamer == nil {
		s.mu.Unlock()
		return
	}
	err := s.seekLocked(pos)
	ev := Event{Kind: EventTimeUpdate, Source: s.source, Position: s.positionLocked(), Duration: s.durationLocked()}
	s.mu.Unlock()

	if err != nil {
		s.log.Warn().Err(err).Dur("position", pos).Msg("seek failed")
		return
	}
	s.emit(ev)
}

func (s *Speaker) seekLocked(pos time.Duration) error {
	n := min(max(s.format.SampleRate.N(pos), 0), max(s.streamer.Len()-1, 0))
	speaker.Lock()
	defer speaker.Unlock()
	return s.streamer.Seek(n)
}

func (s *Speaker) SetVolume(level float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.level = ClampVolume(level)
	if s.volume == nil {
		return
	}
	vol, silent := levelToVolume(s.level)
	speaker.Lock()
	s.volume.Volume = vol
	s.volume.Silent = silent
	speaker.Unlock()
}

func (s *Speaker) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.source = ""
	s.loading = false
	s.wantPlay = false
	s.playing = false
	if s.streamer == nil {
		return
	}
	speaker.Clear()
	if err := s.streamer.Close(); err != nil {
		s.log.Debug().Err(err).Msg("close streamer")
	}
	s.streamer = nil
	s.ctrl = nil
	s.volume = nil
}

func (s *Speaker) Close() error {
	s.Release()
	s.once.Do(func() { close(s.done) })
	return nil
}

// finished handles the end of the stream for load generation gen.
func (s *Speaker) finished(gen uint64) {
	s.mu.Lock()
	if gen != s.gen || s.streamer == nil {
		s.mu.Unlock()
		return
	}
	s.playing = false
	s.drained = true
	ev := Event{Kind: EventEnded, Source: s.source, Position: s.durationLocked(), Duration: s.durationLocked()}
	s.mu.Unlock()

	s.emit(ev)
}

func (s *Speaker) tickLoop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			if !s.playing {
				s.mu.Unlock()
				continue
			}
			ev := Event{Kind: EventTimeUpdate, Source: s.source, Position: s.positionLocked(), Duration: s.durationLocked()}
			s.mu.Unlock()

			// Time updates are dropped rather than queued behind a slow reader.
			select {
			case s.events <- ev:
			default:
			}
		}
	}
}

func (s *Speaker) emit(ev Event) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Speaker) positionLocked() time.Duration {
	if s.streamer == nil {
		return 0
	}
	speaker.Lock()
	p := s.streamer.Position()
	speaker.Unlock()
	return s.format.SampleRate.D(p)
}

func (s *Speaker) durationLocked() time.Duration {
	if s.streamer == nil {
		return 0
	}
	return s.format.SampleRate.D(s.streamer.Len())
}

// memFile is a fully buffered remote source. Decoders need Seek for seeking.
type memFile struct {
	*bytes.Reader
}

func (memFile) Close() error { return nil }

func (s *Speaker) open(source string) (io.ReadCloser, string, error) {
	u, err := url.Parse(source)
	if err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return s.fetch(source, strings.ToLower(filepath.Ext(u.Path)))
	}

	path := source
	if err == nil && u.Scheme == "file" {
		path = u.Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	return f, strings.ToLower(filepath.Ext(path)), nil
}

func (s *Speaker) fetch(source, ext string) (io.ReadCloser, string, error) {
	resp, err := s.client.Get(source) //nolint:noctx // bounded by the client timeout
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", errors.Newf("unexpected status %s", resp.Status)
	}
	if ext == "" {
		ext = extFromContentType(resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}
	return memFile{bytes.NewReader(data)}, ext, nil
}

func extFromContentType(ct string) string {
	switch {
	case strings.Contains(ct, "mpeg"):
		return extMP3
	case strings.Contains(ct, "flac"):
		return extFLAC
	case strings.Contains(ct, "ogg"):
		return extOGG
	case strings.Contains(ct, "wav"):
		return extWAV
	default:
		return ""
	}
}

func decode(rc io.ReadCloser, ext string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext {
	case extMP3:
		return mp3.Decode(rc)
	case extFLAC:
		return flac.Decode(rc)
	case extOGG, extOGA:
		return vorbis.Decode(rc)
	case extWAV:
		return wav.Decode(rc)
	default:
		return nil, beep.Format{}, errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}
}

var _ Device = (*Speaker)(nil)
