package analysis

import (
	"fmt"

	"goagree/domain/agreement"
	"goagree/domain/core"
)

// SubjectRecord is the normalized per-subject view of the input: the
// replicate vectors of both series and their (shared) replicate count.
// Missing replicate slots are never padded with zeros; the vectors keep their
// true lengths so counts stay recoverable.
type SubjectRecord struct {
	X     []float64
	Y     []float64
	Count int
}

// Dataset is the uniform subject-by-replicate representation every
// downstream computation works from.
type Dataset struct {
	Subjects []SubjectRecord
	Mode     agreement.Mode
}

// N returns the number of subjects.
func (ds *Dataset) N() int { return len(ds.Subjects) }

// Normalize classifies the replicate structure of the paired input and
// reshapes it into a Dataset. It fails fast with a shape error when the two
// series disagree on subject or replicate counts, and with an insufficient
// data error when there are fewer than two subjects or an empty subject.
func Normalize(x, y agreement.Subjects, transform func(float64) float64) (*Dataset, error) {
	if len(x) != len(y) {
		return nil, core.NewShapeError(
			fmt.Sprintf("x has %d subjects, y has %d", len(x), len(y)))
	}
	if len(x) < 2 {
		return nil, core.NewInsufficientDataError(
			fmt.Sprintf("need at least 2 subjects, got %d", len(x)))
	}

	subjects := make([]SubjectRecord, len(x))
	first := 0
	allOne, allEqual := true, true
	for i := range x {
		if len(x[i]) != len(y[i]) {
			return nil, core.NewShapeError(
				fmt.Sprintf("subject %d has %d x-replicates but %d y-replicates", i+1, len(x[i]), len(y[i])))
		}
		if len(x[i]) == 0 {
			return nil, core.NewInsufficientDataError(
				fmt.Sprintf("subject %d has no replicates", i+1))
		}

		subjects[i] = SubjectRecord{
			X:     applyTransform(x[i], transform),
			Y:     applyTransform(y[i], transform),
			Count: len(x[i]),
		}

		if i == 0 {
			first = subjects[i].Count
		}
		if subjects[i].Count != 1 {
			allOne = false
		}
		if subjects[i].Count != first {
			allEqual = false
		}
	}

	mode := agreement.ModeRepeatedUnequal
	switch {
	case allOne:
		mode = agreement.ModeSimple
	case allEqual:
		mode = agreement.ModeRepeatedEqual
	}

	return &Dataset{Subjects: subjects, Mode: mode}, nil
}

// applyTransform copies a replicate vector, mapping each value through the
// caller-supplied transform when one is set. The input slices are never
// mutated; the engine owns its own copy from here on.
func applyTransform(v []float64, transform func(float64) float64) []float64 {
	out := make([]float64, len(v))
	if transform == nil {
		copy(out, v)
		return out
	}
	for i, val := range v {
		out[i] = transform(val)
	}
	return out
}
