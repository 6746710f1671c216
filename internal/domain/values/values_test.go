package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Status_Validate(t *testing.T) {
	assert.NoError(t, StatusPass.Validate())
	assert.NoError(t, StatusFail.Validate())
	assert.Error(t, Status("maybe").Validate())

	assert.True(t, StatusFail.IsFailure())
	assert.True(t, StatusPass.IsSuccess())
	assert.False(t, StatusPass.IsFailure())
}

func Test_NewShape(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Shape
		wantErr bool
	}{
		{name: "boolean", in: "boolean", want: ShapeBoolean},
		{name: "pattern", in: "pattern", want: ShapePattern},
		{name: "empty defaults to pattern", in: "", want: ShapePattern},
		{name: "case insensitive", in: "Boolean", want: ShapeBoolean},
		{name: "invalid", in: "ternary", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shape, err := NewShape(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, shape)
		})
	}
}

func Test_NewSeverity_Ordering(t *testing.T) {
	low := MustNewSeverity("low")
	critical := MustNewSeverity("critical")

	assert.True(t, critical.IsHigherThan(low))
	assert.False(t, low.IsHigherThan(critical))
	assert.True(t, critical.IsHigherOrEqual(critical))

	empty, err := NewSeverity("")
	require.NoError(t, err)
	assert.True(t, empty.Equals(SevUnknown))

	_, err = NewSeverity("urgent")
	assert.Error(t, err)
}

func Test_RunID_Lifecycle(t *testing.T) {
	id := NewRunID()
	assert.False(t, id.IsZero())

	parsed, err := ParseRunID(id.String())
	require.NoError(t, err)
	assert.True(t, id.Equals(parsed))

	_, err = ParseRunID("not-a-uuid")
	assert.Error(t, err)
}

func Test_RunID_JSONRoundTrip(t *testing.T) {
	id := MustParseRunID("5aa03e1c-4bb8-4b52-9a4c-5c3a9e2f1d00")

	data, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"5aa03e1c-4bb8-4b52-9a4c-5c3a9e2f1d00"`, string(data))

	var decoded RunID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, id.Equals(decoded))
}

func Test_Tag_String(t *testing.T) {
	assert.Empty(t, TagNone.String())
	assert.Equal(t, "[WAIVER]", TagWaiver.String())
	assert.Equal(t, "[WAIVED_AS_INFO]", TagWaivedAsInfo.String())
}
