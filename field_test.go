package criteria

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldPath(t *testing.T) {
	tests := []struct {
		field   string
		want    []string
		wantErr bool
	}{
		{field: "name", want: []string{"name"}},
		{field: "user.address.city", want: []string{"user", "address", "city"}},
		{field: "_id", want: []string{"_id"}},
		{field: "a1.b_2", want: []string{"a1", "b_2"}},
		{field: "", wantErr: true},
		{field: "1a", wantErr: true},
		{field: "a.", wantErr: true},
		{field: "a..b", wantErr: true},
		{field: "rating*", wantErr: true},
		{field: "name; DROP TABLE users", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			got, err := FieldPath(tt.field)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidField{})
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
