// Package matcher compares face descriptors by Euclidean distance.
package matcher

import (
	"math"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

// DefaultThreshold is the distance at or above which two faces do not match.
const DefaultThreshold = 0.6

var ErrDimensionMismatch = dErrors.New(dErrors.CodeValidation, "descriptor dimension mismatch")

// Candidate is a decrypted stored template.
type Candidate struct {
	TemplateID id.TemplateID
	Descriptor models.Descriptor
}

// Match is the closest candidate. Found is false for an empty candidate set.
type Match struct {
	Found      bool
	TemplateID id.TemplateID
	Distance   float64
}

// Distance is the Euclidean distance between two 128-value descriptors.
func Distance(a, b models.Descriptor) (float64, error) {
	if len(a) != models.DescriptorLength || len(b) != models.DescriptorLength {
		return 0, ErrDimensionMismatch
	}
	var sum float64
	for i := range a {
		diff := a[i] - b[i]
		sum += diff * diff
	}
	return math.Sqrt(sum), nil
}

// BestMatch scans every candidate and keeps the closest one.
func BestMatch(candidate models.Descriptor, templates []Candidate) (Match, error) {
	best := Match{Distance: math.Inf(1)}
	for _, t := range templates {
		d, err := Distance(candidate, t.Descriptor)
		if err != nil {
			return Match{}, err
		}
		if d < best.Distance {
			best = Match{Found: true, TemplateID: t.TemplateID, Distance: d}
		}
	}
	return best, nil
}

// IsMatch holds when distance is strictly below threshold.
func IsMatch(distance, threshold float64) bool {
	return distance < threshold
}

// Confidence maps distance into [0,100]; it is 0 at or beyond threshold.
func Confidence(distance, threshold float64) float64 {
	if threshold <= 0 {
		return 0
	}
	return math.Max(0, (threshold-distance)/threshold*100)
}
