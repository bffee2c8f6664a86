package suppress

import (
	"verdict/internal/diag"
)

// DescriptorSource resolves descriptor metadata for suppression
// decisions. The engine's registration table satisfies it.
type DescriptorSource interface {
	Descriptor(id string) (diag.Descriptor, bool)
}

// Apply resolves the final diagnostic list for one pass:
//
//  1. descriptors disabled in config are dropped;
//  2. descriptors disabled by default stay dropped unless an override
//     enables them;
//  3. diagnostics covered by an inline suppression region are dropped;
//  4. a configured severity override replaces the default severity;
//  5. everything else keeps its default severity.
//
// Input diagnostics are never mutated: kept entries are cloned with
// their effective severity. Order is preserved.
func Apply(items []diag.Diagnostic, cfg *Config, regions *Regions, descriptors DescriptorSource) []diag.Diagnostic {
	out := make([]diag.Diagnostic, 0, len(items))

	for _, d := range items {
		var setting Setting
		var configured bool
		if cfg != nil {
			setting, configured = cfg.Setting(d.Descriptor)
		}

		if configured && setting.Disabled {
			continue
		}
		if !configured || setting.Override == nil {
			if desc, ok := descriptors.Descriptor(d.Descriptor); ok && !desc.EnabledByDefault {
				continue
			}
		}
		if regions.Covers(d.Descriptor, d.Primary) {
			continue
		}

		if configured && setting.Override != nil {
			out = append(out, d.WithSeverity(*setting.Override))
		} else {
			out = append(out, d)
		}
	}
	return out
}
