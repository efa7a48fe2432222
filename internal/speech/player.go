package speech

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/khalilmezni/chefsense/internal/logger"
)

// pollInterval is how often Play checks whether playback has finished.
const pollInterval = 10 * time.Millisecond

// Player plays the synthesized WAV replies through oto.
type Player struct {
	ctx    *oto.Context
	log    *logger.Logger
	mu     sync.Mutex
	active *oto.Player // currently playing, nil when idle
}

// NewPlayer opens the system audio device. There is one oto context per
// process, so construct the player once and share it.
func NewPlayer(log *logger.Logger) (*Player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	log.Debug("audio out ready (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log}, nil
}

// Play plays a WAV clip synchronously, returning when the clip ends or
// Stop cuts it short.
func (p *Player) Play(wavData []byte) error {
	pcm, err := extractPCM(wavData)
	if err != nil {
		return err
	}

	clip := p.ctx.NewPlayer(bytes.NewReader(pcm))

	p.mu.Lock()
	p.active = clip
	p.mu.Unlock()

	clip.Play()
	p.log.Debug("playing %d bytes of PCM", len(pcm))

	for clip.IsPlaying() {
		time.Sleep(pollInterval)
	}

	p.mu.Lock()
	p.active = nil
	p.mu.Unlock()

	return clip.Close()
}

// Stop cuts off the clip currently playing, if any. Safe to call
// concurrently and when nothing is playing.
func (p *Player) Stop() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()

	if active != nil {
		active.Pause()
		p.log.Debug("playback cut short")
	}
}

// extractPCM walks the RIFF chunks of a WAV clip and returns the raw PCM
// samples from its data chunk.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < 44 {
		return nil, errors.New("wav data too short")
	}
	if string(wav[0:4]) != "RIFF" || string(wav[8:12]) != "WAVE" {
		return nil, errors.New("not a valid WAV file")
	}

	pos := 12
	for pos < len(wav)-8 {
		id := string(wav[pos : pos+4])
		size := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))

		if id == "data" {
			start := pos + 8
			end := start + size
			if end > len(wav) {
				end = len(wav)
			}
			return wav[start:end], nil
		}

		pos += 8 + size
		// Chunks are word-aligned.
		if size%2 != 0 {
			pos++
		}
	}

	return nil, errors.New("data chunk not found in WAV")
}
