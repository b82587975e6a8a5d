//go:build !integration

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileSchemas(t *testing.T) {
	schemas, err := compileSchemas()
	require.NoError(t, err, "embedded schemas should compile")
	for _, kind := range DocumentKinds {
		assert.Contains(t, schemas, kind, "schema for %s should be compiled", kind)
	}
}

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name        string
		kind        DocumentKind
		content     string
		shouldErr   bool
		errContains string
	}{
		{
			name: "valid automations",
			kind: AutomationsDocument,
			content: `- id: "1700000000001"
  alias: Wake up
  trigger:
    - platform: time
      at: "07:00:00"
  action:
    - service: script.sonos_group_all
`,
		},
		{
			name:    "numeric automation id",
			kind:    AutomationsDocument,
			content: "- id: 1700000000001\n  action: []\n",
		},
		{
			name:        "automations must be a list",
			kind:        AutomationsDocument,
			content:     "wake_up:\n  alias: Wake up\n",
			shouldErr:   true,
			errContains: "automations",
		},
		{
			name:      "automation action must not be a scalar",
			kind:      AutomationsDocument,
			content:   "- id: a\n  action: 5\n",
			shouldErr: true,
		},
		{
			name:    "valid scripts",
			kind:    ScriptsDocument,
			content: "sonos_group_all:\n  alias: Group\n  sequence: []\n",
		},
		{
			name:    "empty scripts document",
			kind:    ScriptsDocument,
			content: "",
		},
		{
			name:      "script id with invalid characters",
			kind:      ScriptsDocument,
			content:   "Bad-Name:\n  sequence: []\n",
			shouldErr: true,
		},
		{
			name:    "helpers as bare list",
			kind:    HelpersDocument,
			content: "- id: wekker_aan\n  name: Wekker\n  category: slaapkamer\n- id: vakantie\n",
		},
		{
			name:    "helpers in storage envelope",
			kind:    HelpersDocument,
			content: `{"version": 1, "data": {"items": [{"id": "wekker_aan", "name": "Wekker"}]}}`,
		},
		{
			name:      "helper record without id",
			kind:      HelpersDocument,
			content:   "- name: Wekker\n",
			shouldErr: true,
		},
		{
			name:    "registry as bare list",
			kind:    EntityRegistryDocument,
			content: "- entity_id: input_boolean.wekker_actief\n  unique_id: wekker_aan\n",
		},
		{
			name:    "registry in storage envelope",
			kind:    EntityRegistryDocument,
			content: `{"version": 1, "minor_version": 15, "key": "core.entity_registry", "data": {"entities": [{"entity_id": "light.kitchen", "unique_id": "k1", "platform": "hue"}]}}`,
		},
		{
			name:        "registry entity id malformed",
			kind:        EntityRegistryDocument,
			content:     "- entity_id: not-an-entity\n",
			shouldErr:   true,
			errContains: "entity_registry",
		},
		{
			name:      "registry envelope without data",
			kind:      EntityRegistryDocument,
			content:   `{"version": 1}`,
			shouldErr: true,
		},
		{
			name:    "dashboard mapping",
			kind:    DashboardDocument,
			content: "views:\n  - cards:\n      - type: entities\n        entities: [light.kitchen]\n",
		},
		{
			name:      "dashboard scalar",
			kind:      DashboardDocument,
			content:   "just a string\n",
			shouldErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseDocument("doc.yaml", []byte(tt.content))
			require.NoError(t, err, "fixture should be valid YAML")

			err = ValidateDocument(tt.kind, doc)
			if tt.shouldErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "doc.yaml")
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidateDocument_ReportsLine(t *testing.T) {
	content := `- entity_id: light.kitchen
- entity_id: light.hall
- entity_id: BAD
`
	doc, err := ParseDocument(".storage/core.entity_registry", []byte(content))
	require.NoError(t, err)

	err = ValidateDocument(EntityRegistryDocument, doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".storage/core.entity_registry:3")
}

func TestLookupPath(t *testing.T) {
	doc, err := ParseDocument("a.yaml", []byte("a:\n  b:\n    - x\n    - y\n"))
	require.NoError(t, err)

	assert.Equal(t, "y", lookupPath(doc.Root, []string{"a", "b", "1"}).Text())
	assert.Equal(t, SequenceNode, lookupPath(doc.Root, []string{"a", "b", "7"}).Kind, "out of range stops at deepest existing node")
	assert.Equal(t, doc.Root, lookupPath(doc.Root, nil))
}
