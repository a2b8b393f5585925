package analysis

import (
	"fmt"

	"github.com/cwbudde/algo-guitar/guitar"
)

// NoteReport summarizes how a rendered key relates to its catalog pitch.
type NoteReport struct {
	Key               string  `json:"key"`
	Note              string  `json:"note"`
	CatalogHz         float64 `json:"catalog_hz"`
	Delay             int     `json:"delay"`
	ExpectedHz        float64 `json:"expected_hz"`
	MeasuredHz        float64 `json:"measured_hz"`
	CentsFromCatalog  float64 `json:"cents_from_catalog"`
	CentsFromExpected float64 `json:"cents_from_expected"`
	T60Seconds        float64 `json:"t60_seconds"`
	PeakSample        int     `json:"peak_sample"`
}

// AnalyzeNote measures the pitch of a rendered catalog entry and predicts its
// decay time from the loop model. The delay comes from cat.
func AnalyzeNote(cat *guitar.Catalog, e guitar.Entry, samples []int, p guitar.Params) (NoteReport, error) {
	r := NoteReport{Key: e.Key, Note: e.Note, CatalogHz: e.Frequency}
	delay, err := cat.DelayLength(e.Note, p.SampleRate)
	if err != nil {
		return r, err
	}
	r.Delay = delay
	r.ExpectedHz = ExpectedPitch(r.Delay, p.SampleRate)
	r.T60Seconds = DecayTime(r.Delay, p.Decay, p.SampleRate, 1, 60)
	for _, v := range samples {
		if v < 0 {
			v = -v
		}
		if v > r.PeakSample {
			r.PeakSample = v
		}
	}

	f, err := EstimateFundamental(FromInts(samples, float64(p.Quant)), p.SampleRate, e.Frequency/2, e.Frequency*2)
	if err != nil {
		return r, fmt.Errorf("%s: %w", e.Note, err)
	}
	r.MeasuredHz = f
	r.CentsFromCatalog = CentsBetween(f, e.Frequency)
	r.CentsFromExpected = CentsBetween(f, r.ExpectedHz)
	return r, nil
}
