package game

import (
	"testing"

	"github.com/decker502/alleycat/pkg/components"
)

func TestSynthesizeTone(t *testing.T) {
	tests := []struct {
		name    string
		rate    int
		spec    ToneSpec
		wantLen int
	}{
		{"short beep", 1000, ToneSpec{Frequency: 100, Seconds: 0.1, Gain: 1}, 100 * 4},
		{"zero duration", 1000, ToneSpec{Frequency: 100, Seconds: 0, Gain: 1}, 0},
		{"invalid rate", 0, ToneSpec{Frequency: 100, Seconds: 1, Gain: 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SynthesizeTone(tt.rate, tt.spec)
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestSynthesizeToneShape(t *testing.T) {
	pcm := SynthesizeTone(1000, ToneSpec{Frequency: 250, Seconds: 0.1, Gain: 1})

	sample := func(i int) int16 { return int16(uint16(pcm[4*i]) | uint16(pcm[4*i+1])<<8) }

	if sample(0) != 0 {
		t.Errorf("first sample = %d, want 0", sample(0))
	}
	// 250Hz @ 1000Hz 采样：第二个采样点在波峰
	if sample(1) < 30000 {
		t.Errorf("peak sample = %d, want near max", sample(1))
	}
	for i := 0; i < len(pcm)/4; i++ {
		if pcm[4*i] != pcm[4*i+2] || pcm[4*i+1] != pcm[4*i+3] {
			t.Fatalf("sample %d: left and right channels differ", i)
		}
	}
	// 淡出后最后一个采样幅度很小
	if last := sample(len(pcm)/4 - 1); last > 5000 || last < -5000 {
		t.Errorf("last sample = %d, want faded", last)
	}
}

func TestAudioManagerWithoutContext(t *testing.T) {
	am := NewAudioManager(nil, nil)
	for id := range DefaultTones {
		if len(am.pcm[id]) == 0 {
			t.Errorf("tone %s not synthesized", id)
		}
		if am.PlayTone(id) {
			t.Errorf("PlayTone(%s) without context should not play", id)
		}
	}
	// 信号接口在无声环境下不应 panic
	am.Flash(1)
	am.Throw(1, components.ThrowHeavy)
	am.Charging(1, true)
	am.Death(1)
	am.Spawned(1)
}
