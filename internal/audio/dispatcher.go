// Package audio plays keyboard switch samples without ever blocking the
// typing loop.
package audio

import (
	"bytes"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
)

const (
	genericKey      = "GENERIC"
	genericVariants = 5
	queueDepth      = 128
)

// playbackRate is the output device rate; decoded samples are resampled
// to it when they differ.
const playbackRate = beep.SampleRate(44100)

type request struct {
	switchName string
	key        string
}

// Dispatcher preloads keyboard sound assets once and plays them
// asynchronously on request. The asset map is immutable after New; a
// single consumer goroutine owns the output device and is started lazily
// on the first playable request.
type Dispatcher struct {
	assets   map[string]map[string][]byte
	switches []string

	reqs    chan request
	quit    chan struct{}
	started atomic.Bool
	closed  atomic.Bool
}

// New scans root for `<switch>/press/*.mp3` sample files and preloads
// them into memory. A missing or empty root yields an empty dispatcher
// that accepts requests and plays nothing.
func New(root string) *Dispatcher {
	d := &Dispatcher{
		assets: map[string]map[string][]byte{},
		reqs:   make(chan request, queueDepth),
		quit:   make(chan struct{}),
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return d
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		switchName := entry.Name()
		pressDir := filepath.Join(root, switchName, "press")
		files, err := os.ReadDir(pressDir)
		if err != nil {
			continue
		}
		samples := map[string][]byte{}
		for _, f := range files {
			if f.IsDir() || !strings.HasSuffix(f.Name(), ".mp3") {
				continue
			}
			data, err := os.ReadFile(filepath.Join(pressDir, f.Name()))
			if err != nil {
				continue
			}
			key := strings.TrimSuffix(f.Name(), ".mp3")
			samples[key] = data
		}
		if len(samples) > 0 {
			d.assets[switchName] = samples
			d.switches = append(d.switches, switchName)
		}
	}
	sort.Strings(d.switches)
	return d
}

// AvailableSwitches lists the loaded switch names, sorted.
func (d *Dispatcher) AvailableSwitches() []string {
	return d.switches
}

// PlayFor enqueues a playback request and returns immediately. Requests
// are dropped rather than blocking the caller when the queue is full, the
// dispatcher is closed, or no assets are loaded.
func (d *Dispatcher) PlayFor(switchName, key string) {
	if d.closed.Load() || len(d.assets) == 0 {
		return
	}
	if d.started.CompareAndSwap(false, true) {
		go d.consume()
	}
	select {
	case d.reqs <- request{switchName: switchName, key: key}:
	default:
	}
}

// Close stops the consumer goroutine. Queued requests are discarded;
// sounds already playing are left to the mixer.
func (d *Dispatcher) Close() {
	if d.closed.CompareAndSwap(false, true) {
		close(d.quit)
	}
}

func (d *Dispatcher) consume() {
	if err := speaker.Init(playbackRate, playbackRate.N(time.Second/10)); err != nil {
		// No output device: swallow requests so producers stay unaffected.
		for {
			select {
			case <-d.quit:
				return
			case <-d.reqs:
			}
		}
	}
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	for {
		select {
		case <-d.quit:
			return
		case req := <-d.reqs:
			data, ok := d.resolve(req.switchName, req.key, rnd)
			if !ok {
				continue
			}
			d.play(data)
		}
	}
}

// resolve picks the sample bytes for a request: exact key match, then the
// switch's generic sample, then a random generic variant, else nothing.
func (d *Dispatcher) resolve(switchName, key string, rnd *rand.Rand) ([]byte, bool) {
	samples, ok := d.assets[switchName]
	if !ok {
		return nil, false
	}
	if data, ok := samples[key]; ok {
		return data, true
	}
	if data, ok := samples[genericKey]; ok {
		return data, true
	}
	variants := make([][]byte, 0, genericVariants)
	for i := 0; i < genericVariants; i++ {
		if data, ok := samples[variantKey(i)]; ok {
			variants = append(variants, data)
		}
	}
	if len(variants) == 0 {
		return nil, false
	}
	return variants[rnd.Intn(len(variants))], true
}

func variantKey(i int) string {
	return fmt.Sprintf("%s_R%d", genericKey, i)
}

// play decodes and hands the sample to the speaker mixer. Playback is
// fire-and-detach; overlapping sounds are mixed, never awaited.
func (d *Dispatcher) play(data []byte) {
	streamer, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return
	}
	var out beep.Streamer = streamer
	if format.SampleRate != playbackRate {
		out = beep.Resample(4, format.SampleRate, playbackRate, streamer)
	}
	speaker.Play(beep.Seq(out, beep.Callback(func() {
		_ = streamer.Close()
	})))
}
