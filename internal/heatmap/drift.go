package heatmap

import (
	"context"
	"math"
	"math/rand/v2"
	"sync"
	"time"
)

// DriftAmplitude - максимальный размах случайного шага
const DriftAmplitude = 0.1

// Drift - имитация текущего уровня риска для анимации: случайное блуждание в [0,1]
type Drift struct {
	mu       sync.Mutex
	value    float64
	rnd      *rand.Rand
	interval time.Duration
}

func NewDrift(initial float64, interval time.Duration, seed uint64) *Drift {
	return &Drift{
		value:    clamp01(initial),
		rnd:      rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		interval: interval,
	}
}

// Step делает один шаг блуждания и возвращает новое значение
func (d *Drift) Step() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	change := (d.rnd.Float64() - 0.5) * DriftAmplitude
	d.value = clamp01(d.value + change)
	return d.value
}

func (d *Drift) Value() float64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.value
}

// Run вызывает onTick с новым значением на каждом тике до отмены ctx
func (d *Drift) Run(ctx context.Context, onTick func(value float64)) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			onTick(d.Step())
		}
	}
}

// Pulse - масштаб пульсации маркера для значения риска в момент t
func Pulse(t time.Time, risk float64) float64 {
	return 1 + math.Sin(float64(t.UnixMilli())*0.001)*0.05*risk
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
