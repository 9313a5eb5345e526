package mesh

import (
	"path/filepath"
	"strings"
)

// glowPatterns mark textures meant to be drawn additively.
var glowPatterns = []string{"glow", "flare", "halo", "shine", "spark", "aura", "plasma", "trail"}

// IsGlowTexture reports whether a texture name looks like an additive overlay:
// its stem contains one of the glow patterns or ends in "_r".
func IsGlowTexture(texName string) bool {
	if texName == "" {
		return false
	}
	base := filepath.Base(strings.ReplaceAll(strings.ToLower(texName), "\\", "/"))
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.HasSuffix(stem, "_r") {
		return true
	}
	for _, p := range glowPatterns {
		if strings.Contains(stem, p) {
			return true
		}
	}
	return false
}
