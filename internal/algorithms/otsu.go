package algorithms

import (
	"fmt"

	"comic-grid/internal/core"
)

// Histogram returns the normalized 256-bin histogram of a single-channel buffer.
func Histogram(gray *core.Buffer) []float64 {
	hist := make([]float64, 256)
	for _, v := range gray.Bytes() {
		hist[v]++
	}
	total := float64(len(gray.Bytes()))
	for i := range hist {
		hist[i] /= total
	}
	return hist
}

// OtsuThreshold picks the level that maximizes between-class variance.
// Samples at or below the level form the background class.
func OtsuThreshold(hist []float64) uint8 {
	sum := 0.0
	for i, p := range hist {
		sum += float64(i) * p
	}

	var sumB, wB, maximum float64
	var level uint8
	for t := 0; t < len(hist); t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := 1.0 - wB
		if wF <= 0 {
			break
		}

		sumB += float64(t) * hist[t]
		mB := sumB / wB
		mF := (sum - sumB) / wF

		between := wB * wF * (mB - mF) * (mB - mF)
		if between > maximum {
			level = uint8(t)
			maximum = between
		}
	}
	return level
}

// OtsuFilter binarizes the luminance at the Otsu level
type OtsuFilter struct{}

func NewOtsuFilter() *OtsuFilter {
	return &OtsuFilter{}
}

func (o *OtsuFilter) Apply(input *core.Buffer, params map[string]interface{}) (*core.Buffer, error) {
	if input.Empty() {
		return nil, fmt.Errorf("input image is empty")
	}

	gray := Luminance(input)
	level := OtsuThreshold(Histogram(gray))
	if offset := intParam(params, "offset", 0); offset != 0 {
		level = uint8(max(0, min(255, int(level)+offset)))
	}

	hi, lo := uint8(255), uint8(0)
	if intParam(params, "invert", 0) != 0 {
		hi, lo = lo, hi
	}
	out := core.NewBuffer(gray.Width(), gray.Height(), 1)
	for i, v := range gray.Bytes() {
		if v > level {
			out.Bytes()[i] = hi
		} else {
			out.Bytes()[i] = lo
		}
	}
	return out, nil
}

func (o *OtsuFilter) GetDefaultParams() map[string]interface{} {
	return map[string]interface{}{
		"offset": 0.0,
		"invert": 0.0,
	}
}

func (o *OtsuFilter) GetName() string {
	return "Otsu Threshold"
}

func (o *OtsuFilter) GetDescription() string {
	return "Global Otsu binarization of the luminance"
}

func (o *OtsuFilter) Validate(params map[string]interface{}) error {
	if err := checkRange(params, "offset", -255, 255); err != nil {
		return err
	}
	return checkRange(params, "invert", 0, 1)
}

func (o *OtsuFilter) GetParameterInfo() []ParameterInfo {
	return []ParameterInfo{
		{
			Name:        "offset",
			Type:        "int",
			Min:         -255.0,
			Max:         255.0,
			Default:     0.0,
			Description: "Shift applied to the computed level",
		},
		{
			Name:        "invert",
			Type:        "int",
			Min:         0.0,
			Max:         1.0,
			Default:     0.0,
			Description: "1 makes the bright class black",
		},
	}
}
