//go:build !integration

package console

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Validating corpus")
	require.NotNil(t, s)

	s.Start()
	time.Sleep(10 * time.Millisecond)
	s.Stop()
}

func TestSpinnerAccessibleModeDisables(t *testing.T) {
	t.Setenv("ACCESSIBLE", "1")

	s := NewSpinner("Validating corpus")
	assert.False(t, s.IsEnabled(), "Spinner should be disabled in accessible mode")

	s.Start()
	s.UpdateMessage("still going")
	s.Stop()
	s.StopWithMessage("done")
}

func TestSpinnerMultipleStartStop(t *testing.T) {
	s := NewSpinner("Validating corpus")
	for range 3 {
		s.Start()
		time.Sleep(5 * time.Millisecond)
		s.Stop()
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner("Validating corpus")
	s.Stop()
	s.StopWithMessage("✓ Done")
}

func TestSpinnerModel(t *testing.T) {
	var buf bytes.Buffer
	model := spinnerModel{spinner: spinner.New(), message: "Loading", output: &buf}

	assert.NotNil(t, model.Init(), "Init should return a tick command")

	updated, cmd := model.Update(updateMessageMsg("Checking references"))
	assert.Nil(t, cmd)
	m, ok := updated.(spinnerModel)
	require.True(t, ok, "Update should return spinnerModel")
	assert.Equal(t, "Checking references", m.message)
	assert.Contains(t, buf.String(), "Checking references", "Message updates should be rendered to output")

	assert.Empty(t, model.View(), "View is empty because frames are written directly")
}

func TestSpinnerModel_NilOutput(t *testing.T) {
	model := spinnerModel{spinner: spinner.New(), message: "Loading"}
	assert.NotPanics(t, func() {
		model.Update(updateMessageMsg("x"))
	})
}
