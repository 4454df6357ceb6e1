package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMetadataSource(t *testing.T) {
	tests := []struct {
		input   string
		want    MetadataSource
		wantErr bool
	}{
		{"", MetadataSourceUnset, false},
		{"None", MetadataSourceNone, false},
		{"DisplayAttribute", MetadataSourceDisplay, false},
		{"display", MetadataSourceDisplay, false},
		{"DescriptionAttribute", MetadataSourceDescription, false},
		{"enummember", MetadataSourceEnumMember, false},
		{"EnumMemberAttribute", MetadataSourceEnumMember, false},
		{"json", MetadataSourceUnset, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMetadataSource(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetadataSource_Family(t *testing.T) {
	f, ok := MetadataSourceDisplay.Family()
	assert.True(t, ok)
	assert.Equal(t, FamilyDisplay, f)

	f, ok = MetadataSourceDescription.Family()
	assert.True(t, ok)
	assert.Equal(t, FamilyDescription, f)

	f, ok = MetadataSourceEnumMember.Family()
	assert.True(t, ok)
	assert.Equal(t, FamilyEnumMember, f)

	_, ok = MetadataSourceNone.Family()
	assert.False(t, ok)
	_, ok = MetadataSourceUnset.Family()
	assert.False(t, ok)
}

func TestMetadataSource_Or(t *testing.T) {
	assert.Equal(t, MetadataSourceDisplay, MetadataSourceUnset.Or(MetadataSourceDisplay))
	assert.Equal(t, MetadataSourceNone, MetadataSourceNone.Or(MetadataSourceDisplay))
}

func TestMetadataSource_Text(t *testing.T) {
	for _, s := range []MetadataSource{MetadataSourceNone, MetadataSourceDisplay, MetadataSourceDescription, MetadataSourceEnumMember} {
		text, err := s.MarshalText()
		require.NoError(t, err)
		var got MetadataSource
		require.NoError(t, got.UnmarshalText(text))
		assert.Equal(t, s, got)
	}
}

func TestParseAttributeFamily(t *testing.T) {
	f, err := ParseAttributeFamily("Description")
	require.NoError(t, err)
	assert.Equal(t, FamilyDescription, f)

	_, err = ParseAttributeFamily("None")
	assert.Error(t, err)
	_, err = ParseAttributeFamily("")
	assert.Error(t, err)

	var got AttributeFamily
	require.NoError(t, got.UnmarshalText([]byte("EnumMemberAttribute")))
	assert.Equal(t, FamilyEnumMember, got)
	assert.False(t, AttributeFamily(0).IsValid())
}
