package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestFields_CoverEveryColumn(t *testing.T) {
	specs := Fields()
	require.Len(t, specs, 26)

	assert.Equal(t, FieldID, specs[0].Field)
	assert.Equal(t, FieldKeyword, specs[1].Field)
	assert.Equal(t, FieldPublicationLink, specs[len(specs)-1].Field)

	for _, spec := range specs {
		assert.True(t, KnownField(spec.Field))
		assert.NotEmpty(t, spec.Label)
	}
}

func TestKnownField_RejectsUndeclared(t *testing.T) {
	assert.False(t, KnownField(Field("created_at")))
	assert.False(t, KnownField(Field("")))
}

func TestTask_GetAndApplyRoundTrip(t *testing.T) {
	tk := &Task{ID: 7}

	patch := Patch{
		FieldKeyword:        "pompy ciepła",
		FieldLanguage:       "polski",
		FieldStatusResearch: Done().String(),
		FieldHeadersFinal:   "Czym jest pompa ciepła?",
		FieldStatusWriting:  Failed("timeout").String(),
	}
	require.NoError(t, tk.Apply(patch))

	assert.Equal(t, "7", tk.Get(FieldID))
	assert.Equal(t, "pompy ciepła", tk.Get(FieldKeyword))
	assert.Equal(t, "polski", tk.Get(FieldLanguage))
	assert.Equal(t, Done().String(), tk.Get(FieldStatusResearch))
	assert.Equal(t, "Czym jest pompa ciepła?", tk.Get(FieldHeadersFinal))

	assert.True(t, tk.StatusWriting.IsFailed())
	assert.Equal(t, "timeout", tk.StatusWriting.Message)
}

func TestTask_ApplyRejectsID(t *testing.T) {
	tk := &Task{ID: 7}

	err := tk.Apply(Patch{FieldID: "9"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "immutable")
	assert.Equal(t, int64(7), tk.ID)
}

func TestTask_ApplyRejectsUnknownField(t *testing.T) {
	tk := &Task{}

	err := tk.Apply(Patch{Field("no_such_column"): "x"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown field")
}

func TestTask_GetEveryDeclaredField(t *testing.T) {
	tk := &Task{ID: 1}

	// Every declared column must resolve through Get; an unmapped column
	// would silently export empty cells.
	patch := Patch{}
	for _, spec := range Fields() {
		if spec.Field == FieldID {
			continue
		}
		patch[spec.Field] = "value:" + string(spec.Field)
	}
	require.NoError(t, tk.Apply(patch))

	// Status columns pass through ParseStatus, but free text survives as the
	// Pending message, so every column round-trips verbatim.
	for _, spec := range Fields() {
		if spec.Field == FieldID {
			continue
		}
		assert.Equal(t, "value:"+string(spec.Field), tk.Get(spec.Field), "field %s", spec.Field)
	}
}
