package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []int64
		wantErr bool
	}{
		{
			name:  "single id",
			input: "7",
			want:  []int64{7},
		},
		{
			name:  "comma separated with spaces",
			input: "1, 2 ,3",
			want:  []int64{1, 2, 3},
		},
		{
			name:  "trailing comma",
			input: "1,2,",
			want:  []int64{1, 2},
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "1,abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseIDs(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
