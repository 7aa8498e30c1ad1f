// Package landslide содержит необученную модель вероятности оползня.
//
// Сеть: 5 входов -> 16 relu -> 8 relu -> 4 relu -> 1 sigmoid. Веса
// инициализируются Glorot-uniform из фиксированного зерна, смещения нулевые.
// Обучающих данных нет, поэтому ответ - детерминированная заглушка.
package landslide

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
)

// Константы нормализации входов
const (
	MaxRainfall   = 1000.0 // мм
	MaxSlope      = 90.0   // градусы
	SoilTypes     = 3.0
	MaxVegetation = 100.0  // %
	MaxElevation  = 5000.0 // м
)

var layerSizes = []int{5, 16, 8, 4, 1}

// Features - входные признаки участка
type Features struct {
	Rainfall   float64 `json:"rainfall"`
	Slope      float64 `json:"slope"`
	SoilType   float64 `json:"soil_type"`
	Vegetation float64 `json:"vegetation"`
	Elevation  float64 `json:"elevation"`
}

// Predictor возвращает вероятность оползня в (0,1)
type Predictor interface {
	Predict(f Features) float64
}

type dense struct {
	weights *mat.Dense    // out x in
	biases  *mat.VecDense // out
	sigmoid bool
}

// Model - полносвязная сеть; после создания только читается
type Model struct {
	layers []dense
}

// NewModel строит сеть с весами из зерна seed
func NewModel(seed int64) *Model {
	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)>>1|1))
	m := &Model{}
	for i := 0; i+1 < len(layerSizes); i++ {
		in, out := layerSizes[i], layerSizes[i+1]
		limit := math.Sqrt(6 / float64(in+out))

		w := make([]float64, out*in)
		for j := range w {
			w[j] = (rnd.Float64()*2 - 1) * limit
		}
		m.layers = append(m.layers, dense{
			weights: mat.NewDense(out, in, w),
			biases:  mat.NewVecDense(out, nil),
			sigmoid: i+2 == len(layerSizes),
		})
	}
	return m
}

// Normalize приводит признаки к масштабу входа сети
func Normalize(f Features) []float64 {
	return []float64{
		f.Rainfall / MaxRainfall,
		f.Slope / MaxSlope,
		f.SoilType / SoilTypes,
		f.Vegetation / MaxVegetation,
		f.Elevation / MaxElevation,
	}
}

func (m *Model) Predict(f Features) float64 {
	x := mat.NewVecDense(layerSizes[0], Normalize(f))
	for _, l := range m.layers {
		x = l.forward(x)
	}
	return x.AtVec(0)
}

func (l dense) forward(x *mat.VecDense) *mat.VecDense {
	out, _ := l.weights.Dims()
	y := mat.NewVecDense(out, nil)
	y.MulVec(l.weights, x)
	y.AddVec(y, l.biases)
	for i := 0; i < out; i++ {
		v := y.AtVec(i)
		if l.sigmoid {
			y.SetVec(i, 1/(1+math.Exp(-v)))
		} else {
			y.SetVec(i, math.Max(0, v))
		}
	}
	return y
}

// Уровни риска по вероятности
const (
	RiskLow      = "Low"
	RiskMedium   = "Medium"
	RiskHigh     = "High"
	RiskCritical = "Critical"
)

// RiskLevel переводит вероятность в один из четырех уровней с шагом 0.25
func RiskLevel(p float64) string {
	switch {
	case p < 0.25:
		return RiskLow
	case p < 0.5:
		return RiskMedium
	case p < 0.75:
		return RiskHigh
	default:
		return RiskCritical
	}
}
