package selection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/lasso/internal/fixture"
	"github.com/bnema/lasso/internal/selection"
)

func TestInteractable_DefaultsToVisible(t *testing.T) {
	el := fixture.New(fixture.Spec{Tag: "button", Bounds: box(0, 0, 50, 20)})
	assert.True(t, selection.Interactable(el))
}

func TestInteractable_RejectsHiddenStyles(t *testing.T) {
	cases := []struct {
		name     string
		property string
		value    string
		want     bool
	}{
		{"display none", "display", "none", false},
		{"visibility hidden", "visibility", "hidden", false},
		{"opacity zero", "opacity", "0", false},
		// The opacity check compares the computed string literally.
		{"opacity zero point zero", "opacity", "0.0", true},
		{"opacity near zero", "opacity", "0.01", true},
		{"display block", "display", "block", true},
		{"visibility visible", "visibility", "visible", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			el := fixture.New(fixture.Spec{
				Tag:    "button",
				Bounds: box(0, 0, 50, 20),
				Styles: map[string]string{tc.property: tc.value},
			})
			assert.Equal(t, tc.want, selection.Interactable(el))
		})
	}
}

func TestInteractable_RejectsZeroSize(t *testing.T) {
	flat := fixture.New(fixture.Spec{Tag: "button", Bounds: box(10, 10, 60, 10)})
	assert.False(t, selection.Interactable(flat))

	thin := fixture.New(fixture.Spec{Tag: "button", Bounds: box(10, 10, 10, 60)})
	assert.False(t, selection.Interactable(thin))
}
