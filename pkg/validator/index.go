package validator

import (
	"slices"

	"github.com/hacheck/hacheck/pkg/constants"
	"github.com/hacheck/hacheck/pkg/corpus"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/parser"
)

var indexLog = logger.New("validator:index")

// referenceIndex holds the lookup sets every check reads. It is built once
// per run from the snapshot and never modified afterwards.
type referenceIndex struct {
	snap *corpus.Snapshot

	// definedScripts is the set of script ids in the scripts document.
	definedScripts map[string]bool
	// liveEntities is every registry entity id, all domains.
	liveEntities map[string]bool
	// liveHelpersByObject maps an object id to the live helper entity ids
	// using it, across helper domains, sorted.
	liveHelpersByObject map[string][]string
	// renamedHelpers maps "domain.unique_id" to the live entity id for helper
	// registry entries whose entity id no longer matches their unique id.
	renamedHelpers map[string]string
}

func newReferenceIndex(snap *corpus.Snapshot) *referenceIndex {
	idx := &referenceIndex{
		snap:                snap,
		definedScripts:      make(map[string]bool, len(snap.Scripts)),
		liveEntities:        make(map[string]bool, len(snap.Registry)),
		liveHelpersByObject: make(map[string][]string),
		renamedHelpers:      make(map[string]string),
	}

	for _, s := range snap.Scripts {
		idx.definedScripts[s.ID] = true
	}

	for _, e := range snap.Registry {
		idx.liveEntities[e.EntityID] = true

		domain, object, ok := parser.SplitEntityID(e.EntityID)
		if !ok || !constants.IsHelperDomain(domain) {
			continue
		}
		idx.liveHelpersByObject[object] = append(idx.liveHelpersByObject[object], e.EntityID)
		if e.UniqueID != "" && e.UniqueID != object {
			idx.renamedHelpers[domain+"."+e.UniqueID] = e.EntityID
		}
	}
	for object := range idx.liveHelpersByObject {
		slices.Sort(idx.liveHelpersByObject[object])
	}

	indexLog.Printf("Built reference index: scripts=%d, live_entities=%d, renamed_helpers=%d",
		len(idx.definedScripts), len(idx.liveEntities), len(idx.renamedHelpers))
	return idx
}

// otherDomainMatches returns live helper ids with the same object id as
// entityID but a different domain.
func (idx *referenceIndex) otherDomainMatches(domain, object string) []string {
	var out []string
	for _, id := range idx.liveHelpersByObject[object] {
		if d, _, _ := parser.SplitEntityID(id); d != domain {
			out = append(out, id)
		}
	}
	return out
}
