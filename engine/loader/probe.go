package loader

import (
	"path/filepath"
)

// ContainerReport summarizes one candidate container for diagnostics.
type ContainerReport struct {
	Path       string
	Excluded   bool
	Meshes     int
	UVChannels int
	Baked      bool
	Err        error
}

// Probe parses every candidate and reports its mesh count and UV channel coverage without
// short-circuiting. Excluded candidates are reported but not parsed.
//
// Parameters:
//   - parser: the parser used to decode each candidate
//   - candidates: container paths
//   - excluded: the base name of the unbaked container
//
// Returns:
//   - []ContainerReport: one report per candidate, in input order
func Probe(parser ContainerParser, candidates []string, excluded string) []ContainerReport {
	reports := make([]ContainerReport, 0, len(candidates))
	for _, path := range candidates {
		r := ContainerReport{Path: path}
		if filepath.Base(path) == excluded {
			r.Excluded = true
			reports = append(reports, r)
			continue
		}

		set, err := parser.Parse(path)
		if err != nil {
			r.Err = err
			reports = append(reports, r)
			continue
		}

		r.Meshes = set.Len()
		if first := set.First(); first != nil {
			r.UVChannels = first.UVChannelsPopulated()
		}
		r.Baked = set.IsBaked()
		reports = append(reports, r)
	}
	return reports
}
