package disambig

import (
	"fmt"

	"github.com/trendarc/trendarc/internal/core/domain"
)

// GetInterpretationSummary renders a one-line human explanation of a
// verifier interpretation. The output always contains both compared terms
// and the interpretation text.
func GetInterpretationSummary(keyword, interpretation string, compCtx domain.ComparisonContext) string {
	return fmt.Sprintf("In the %s vs %s comparison, %q was read as: %s",
		compCtx.TermA, compCtx.TermB, keyword, interpretation)
}
