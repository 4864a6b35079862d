package game

import (
	"log"
	"math"

	"github.com/decker502/alleycat/pkg/components"
	"github.com/decker502/alleycat/pkg/ecs"
	"github.com/hajimehoshi/ebiten/v2/audio"
)

// AudioSampleRate 提示音采样率
const AudioSampleRate = 44100

// ToneSpec 一个合成提示音
type ToneSpec struct {
	Frequency float64 // 频率（Hz）
	Seconds   float64 // 时长
	Gain      float64 // 相对音量 0.0 ~ 1.0
}

// 提示音 ID
const (
	ToneHit    = "hit"
	ToneDeath  = "death"
	ToneThrow  = "throw"
	ToneHeavy  = "heavy"
	ToneCharge = "charge"
	ToneSpawn  = "spawn"
)

// DefaultTones 各战斗信号对应的提示音
var DefaultTones = map[string]ToneSpec{
	ToneHit:    {Frequency: 880, Seconds: 0.06, Gain: 0.6},
	ToneDeath:  {Frequency: 220, Seconds: 0.25, Gain: 0.8},
	ToneThrow:  {Frequency: 660, Seconds: 0.04, Gain: 0.4},
	ToneHeavy:  {Frequency: 440, Seconds: 0.10, Gain: 0.6},
	ToneCharge: {Frequency: 330, Seconds: 0.08, Gain: 0.3},
	ToneSpawn:  {Frequency: 150, Seconds: 0.12, Gain: 0.5},
}

// AudioManager 战斗提示音
// 实现表现层信号接口：受击、死亡、投掷、蓄力、出生各播放一个合成音
// 音量与开关从 SettingsManager 读取；context 为 nil 时静默
type AudioManager struct {
	context         *audio.Context
	settingsManager *SettingsManager
	pcm             map[string][]byte // 提示音ID -> 16位立体声 PCM
}

// NewAudioManager 创建音频管理器并预先合成所有提示音
//
// 参数：
//   - ctx: ebiten 音频上下文（可为 nil，用于无声环境）
//   - sm: SettingsManager 实例（可为 nil）
func NewAudioManager(ctx *audio.Context, sm *SettingsManager) *AudioManager {
	am := &AudioManager{
		context:         ctx,
		settingsManager: sm,
		pcm:             make(map[string][]byte, len(DefaultTones)),
	}
	sampleRate := AudioSampleRate
	if ctx != nil {
		sampleRate = ctx.SampleRate()
	}
	for id, spec := range DefaultTones {
		am.pcm[id] = SynthesizeTone(sampleRate, spec)
	}
	return am
}

// PlayTone 播放提示音
// 返回是否真正播放
func (am *AudioManager) PlayTone(toneID string) bool {
	if am.context == nil {
		return false
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}
	data, ok := am.pcm[toneID]
	if !ok {
		log.Printf("[AudioManager] Warning: unknown tone %q", toneID)
		return false
	}

	player := am.context.NewPlayerFromBytes(data)
	player.SetVolume(am.soundVolume())
	player.Play()
	return true
}

func (am *AudioManager) soundVolume() float64 {
	if am.settingsManager == nil {
		return 1
	}
	return am.settingsManager.GetSettings().SoundVolume
}

func (am *AudioManager) Flash(ecs.EntityID) { am.PlayTone(ToneHit) }
func (am *AudioManager) Facing(ecs.EntityID, int) {}
func (am *AudioManager) AmmoFraction(ecs.EntityID, float64) {}
func (am *AudioManager) Death(ecs.EntityID) { am.PlayTone(ToneDeath) }
func (am *AudioManager) Spawned(ecs.EntityID) { am.PlayTone(ToneSpawn) }

func (am *AudioManager) Charging(_ ecs.EntityID, on bool) {
	if on {
		am.PlayTone(ToneCharge)
	}
}

func (am *AudioManager) Throw(_ ecs.EntityID, kind components.ThrowKind) {
	if kind == components.ThrowHeavy {
		am.PlayTone(ToneHeavy)
		return
	}
	am.PlayTone(ToneThrow)
}

// SynthesizeTone 合成正弦提示音（16位小端立体声）
// 末尾 20% 线性淡出，避免爆音
func SynthesizeTone(sampleRate int, spec ToneSpec) []byte {
	if sampleRate <= 0 || spec.Seconds <= 0 {
		return nil
	}
	n := int(float64(sampleRate) * spec.Seconds)
	fadeStart := int(float64(n) * 0.8)
	gain := math.Max(0, math.Min(1, spec.Gain))

	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		amp := gain
		if i >= fadeStart && n > fadeStart {
			amp *= float64(n-i) / float64(n-fadeStart)
		}
		v := int16(math.Sin(2*math.Pi*spec.Frequency*float64(i)/float64(sampleRate)) * amp * math.MaxInt16)
		lo, hi := byte(v), byte(v>>8)
		buf[4*i], buf[4*i+1] = lo, hi
		buf[4*i+2], buf[4*i+3] = lo, hi
	}
	return buf
}
