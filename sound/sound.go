// Package sound provides audio assets decoded from WAV files into
// memory buffers.
package sound

import (
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"

	"github.com/riftlab/asset-registry/asset"
	"github.com/riftlab/asset-registry/errors"
)

// DecodeFile reads the WAV file at path into a memory buffer.
func DecodeFile(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.IO(errors.OpDecode, path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return nil, errors.DecodeFailed("sound", path, err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)
	return buf, nil
}

// Sound is a fully buffered audio asset. Playback borrows streamers
// from the buffer; the asset itself never touches a speaker.
type Sound struct {
	asset.Base

	buf *beep.Buffer
}

// New builds a sound from a decoded buffer.
func New(name string, res asset.Resource, buf *beep.Buffer) *Sound {
	return &Sound{Base: asset.NewBase(name, res), buf: buf}
}

// Format returns the buffer's sample format, zero after release.
func (s *Sound) Format() beep.Format {
	if s.buf == nil {
		return beep.Format{}
	}
	return s.buf.Format()
}

// Len returns the sample count, zero after release.
func (s *Sound) Len() int {
	if s.buf == nil {
		return 0
	}
	return s.buf.Len()
}

// Duration returns the clip length at the buffer's sample rate.
func (s *Sound) Duration() time.Duration {
	if s.buf == nil {
		return 0
	}
	return s.buf.Format().SampleRate.D(s.buf.Len())
}

// Streamer returns a fresh streamer over the whole buffer, nil after
// release. Streamers are independent: each call starts at the
// beginning.
func (s *Sound) Streamer() beep.StreamSeeker {
	if s.buf == nil {
		return nil
	}
	return s.buf.Streamer(0, s.buf.Len())
}

// Refresh re-decodes the backing file, keeping the previous buffer on
// failure.
func (s *Sound) Refresh() error {
	res := s.Resource()
	if res.Builtin() {
		return nil
	}
	buf, err := DecodeFile(res.Path())
	if err != nil {
		return errors.Wrap(errors.OpRefresh, errors.KindDecodeFailed, err, "reloading sound")
	}
	s.buf = buf
	return nil
}

// Release drops the sample buffer.
func (s *Sound) Release() {
	s.buf = nil
}
