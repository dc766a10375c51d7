// Package filterchain renders the configured audio filters into the single
// -af expression handed to ffmpeg.
package filterchain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sage222/SageDialogEnhance/internal/config"
)

// Build renders the equalizer bands followed by the speech normalizer into
// one comma-joined ffmpeg filter expression. Band order is preserved
// exactly as configured; equalizer stages are not commutative.
func Build(eq config.Equalizer, norm config.Speechnorm) (string, error) {
	if len(eq.Bands) == 0 {
		return "", errors.New("filter chain: no equalizer bands configured")
	}

	stages := make([]string, 0, len(eq.Bands)+1)
	for i, band := range eq.Bands {
		if strings.TrimSpace(band.Frequency) == "" {
			return "", fmt.Errorf("filter chain: band %d missing frequency", i+1)
		}
		stages = append(stages, fmt.Sprintf(
			"equalizer=f=%s:t=%s:w=%s:g=%s",
			band.Frequency, band.WidthType, band.Width, band.GainDB,
		))
	}

	if strings.TrimSpace(norm.Expansion) == "" {
		return "", errors.New("filter chain: speechnorm expansion not set")
	}
	stages = append(stages, fmt.Sprintf(
		"speechnorm=e=%s:r=%s:l=%s",
		norm.Expansion, norm.Raise, norm.LinkChannels,
	))

	return strings.Join(stages, ","), nil
}
