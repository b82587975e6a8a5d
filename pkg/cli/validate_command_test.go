//go:build !integration

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/x/exp/golden"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCorpusRoot = "testdata/corpus"

// writeCorpus writes files (relative path -> content) under a new temp root.
func writeCorpus(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755), "Should create directory for %s", rel)
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Should write %s", rel)
	}
	return root
}

// safeCorpus has no errors and no warnings.
func safeCorpus() map[string]string {
	return map[string]string{
		"automations.yaml": "- id: a\n  action:\n    - service: script.hello\n",
		"scripts.yaml":     "hello:\n  sequence: []\n",
		".storage/core.entity_registry": "- entity_id: script.hello\n  unique_id: hello\n",
	}
}

// stubGate replaces the interactive gate for the duration of the test.
func stubGate(t *testing.T, interactive bool, answer bool, answerErr error) *int {
	t.Helper()
	origInteractive, origConfirm := isInteractive, confirmForceContinue
	t.Cleanup(func() {
		isInteractive, confirmForceContinue = origInteractive, origConfirm
	})

	calls := 0
	isInteractive = func() bool { return interactive }
	confirmForceContinue = func(int) (bool, error) {
		calls++
		return answer, answerErr
	}
	return &calls
}

// TestNewValidateCommand tests that the validate command is created correctly
func TestNewValidateCommand(t *testing.T) {
	cmd := NewValidateCommand()

	require.NotNil(t, cmd, "NewValidateCommand should return a non-nil command")
	assert.Equal(t, "validate", cmd.Name(), "Command name should be 'validate'")
	assert.NotEmpty(t, cmd.Short, "Command should have a short description")
	assert.NotEmpty(t, cmd.Long, "Command should have a long description")

	require.NotNil(t, cmd.Flags().Lookup("json"), "validate command should have a --json flag")
	assert.Equal(t, "j", cmd.Flags().Lookup("json").Shorthand, "--json flag should have -j shorthand")
	require.NotNil(t, cmd.Flags().Lookup("config"), "validate command should have a --config flag")
	assert.Equal(t, "c", cmd.Flags().Lookup("config").Shorthand, "--config flag should have -c shorthand")
	for _, name := range []string{"force", "no-prompt", "fail-fast", "automations", "scripts", "helpers-dir", "entity-registry", "dashboards"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "validate command should have a --%s flag", name)
	}
}

func TestRunValidate_JSONGolden(t *testing.T) {
	stubGate(t, false, false, nil)

	var out bytes.Buffer
	err := RunValidate(context.Background(), ValidateConfig{
		Roots:      []string{testCorpusRoot},
		JSONOutput: true,
		Force:      true,
		Stdout:     &out,
	})
	require.NoError(t, err, "--force should override the unsafe verdict")

	golden.RequireEqual(t, out.Bytes())
}

func TestRunValidate_TextReport(t *testing.T) {
	stubGate(t, false, false, nil)

	var out bytes.Buffer
	err := RunValidate(context.Background(), ValidateConfig{
		Roots:  []string{testCorpusRoot},
		Force:  true,
		Stdout: &out,
	})
	require.NoError(t, err)

	text := out.String()
	for _, expected := range []string{
		"Corpus testdata/corpus",
		"Script references (1 error)",
		"Helper references (2 errors)",
		"Dashboard entities (1 warning)",
		"Ungrouped helpers (1 warning)",
		"automations.yaml:12:16",
		"it was renamed to input_boolean.wekker_actief",
		"Unsafe to deploy: 3 errors, 2 warnings",
	} {
		assert.Contains(t, text, expected, "text report should contain %q", expected)
	}
}

func TestRunValidate_SafeCorpus(t *testing.T) {
	calls := stubGate(t, true, false, nil)
	root := writeCorpus(t, safeCorpus())

	var out bytes.Buffer
	err := RunValidate(context.Background(), ValidateConfig{Roots: []string{root}, Stdout: &out})
	require.NoError(t, err, "A safe corpus should pass")
	assert.Zero(t, *calls, "A safe corpus should never prompt")
	assert.Contains(t, out.String(), "Safe to deploy: 0 errors, 0 warnings")
	assert.NotContains(t, out.String(), "Script references", "Checks without findings are not listed")
}

func TestRunValidate_DeployGate(t *testing.T) {
	tests := []struct {
		name        string
		config      ValidateConfig
		interactive bool
		answer      bool
		answerErr   error
		wantErr     error
		wantPrompt  bool
	}{
		{
			name:    "non-interactive aborts",
			wantErr: ErrDeployAborted,
		},
		{
			name:   "force continues",
			config: ValidateConfig{Force: true},
		},
		{
			name:        "interactive abort",
			interactive: true,
			answer:      false,
			wantErr:     ErrDeployAborted,
			wantPrompt:  true,
		},
		{
			name:        "interactive force continue",
			interactive: true,
			answer:      true,
			wantPrompt:  true,
		},
		{
			name:        "prompt failure is returned",
			interactive: true,
			answerErr:   errors.New("prompt closed"),
			wantErr:     errors.New("prompt closed"),
			wantPrompt:  true,
		},
		{
			name:        "no-prompt never asks",
			config:      ValidateConfig{NoPrompt: true},
			interactive: true,
			wantErr:     ErrDeployAborted,
		},
		{
			name:        "json output never asks",
			config:      ValidateConfig{JSONOutput: true},
			interactive: true,
			wantErr:     ErrDeployAborted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := stubGate(t, tt.interactive, tt.answer, tt.answerErr)

			config := tt.config
			config.Roots = []string{testCorpusRoot}
			var out bytes.Buffer
			config.Stdout = &out

			err := RunValidate(context.Background(), config)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantPrompt, *calls > 0, "prompt expectation")
		})
	}
}

func TestRunValidate_CorpusUnreadable(t *testing.T) {
	calls := stubGate(t, true, true, nil)
	files := safeCorpus()
	files["scripts.yaml"] = "hello: [unclosed\n"
	root := writeCorpus(t, files)

	var out bytes.Buffer
	err := RunValidate(context.Background(), ValidateConfig{Roots: []string{root}, Force: true, Stdout: &out})
	require.Error(t, err, "An unreadable corpus should fail even with --force")
	require.ErrorIs(t, err, corpus.ErrCorpusUnreadable)
	assert.Zero(t, *calls, "No prompt when the corpus is unreadable")
	assert.Empty(t, out.String(), "No report is produced for an unreadable corpus")
}

func TestRunValidate_MultipleRootsJSON(t *testing.T) {
	stubGate(t, false, false, nil)
	safe := writeCorpus(t, safeCorpus())

	var out bytes.Buffer
	err := RunValidate(context.Background(), ValidateConfig{
		Roots:      []string{safe, testCorpusRoot},
		JSONOutput: true,
		Stdout:     &out,
	})
	require.ErrorIs(t, err, ErrDeployAborted, "One unsafe root makes the run unsafe")

	var reports []validator.Report
	require.NoError(t, json.Unmarshal(out.Bytes(), &reports), "Several roots produce a JSON array")
	require.Len(t, reports, 2)
	assert.Equal(t, safe, reports[0].Root, "Reports keep argument order")
	assert.True(t, reports[0].Safe)
	assert.Equal(t, testCorpusRoot, reports[1].Root)
	assert.False(t, reports[1].Safe)
}

func TestValidateRoots_PreservesOrder(t *testing.T) {
	roots := []string{
		writeCorpus(t, safeCorpus()),
		testCorpusRoot,
		writeCorpus(t, safeCorpus()),
	}

	var mu sync.Mutex
	var finished []string
	results := validateRoots(roots, corpus.Config{}, "", func(root string) {
		mu.Lock()
		defer mu.Unlock()
		finished = append(finished, root)
	})
	assert.ElementsMatch(t, roots, finished, "progress is reported once per root")
	require.Len(t, results, 3)
	for i, res := range results {
		require.NoError(t, res.err)
		assert.Equal(t, roots[i], res.root)
		assert.Equal(t, roots[i], res.report.Root)
	}
	assert.Equal(t, 3, results[1].report.ErrorCount)
}

func TestValidateCommand_Flags(t *testing.T) {
	calls := stubGate(t, false, false, nil)
	files := safeCorpus()
	files["conf/autos.yaml"] = files["automations.yaml"]
	delete(files, "automations.yaml")
	root := writeCorpus(t, files)

	cmd := NewValidateCommand()
	cmd.Flags().BoolP("verbose", "v", false, "")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{root, "--automations", "conf/autos.yaml", "--verbose"})

	require.NoError(t, cmd.Execute(), "The --automations override should locate the document")
	assert.Zero(t, *calls)
	assert.Contains(t, out.String(), "conf/autos.yaml", "--verbose lists the loaded documents")
}
