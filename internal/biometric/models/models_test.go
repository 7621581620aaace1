package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptorValidate(t *testing.T) {
	valid := make(Descriptor, DescriptorLength)
	assert.NoError(t, valid.Validate())

	assert.ErrorIs(t, make(Descriptor, DescriptorLength-1).Validate(), ErrInvalidDescriptor)
	assert.ErrorIs(t, Descriptor(nil).Validate(), ErrInvalidDescriptor)

	withNaN := make(Descriptor, DescriptorLength)
	withNaN[5] = math.NaN()
	assert.ErrorIs(t, withNaN.Validate(), ErrInvalidDescriptor)

	withInf := make(Descriptor, DescriptorLength)
	withInf[0] = math.Inf(1)
	assert.ErrorIs(t, withInf.Validate(), ErrInvalidDescriptor)
}
