// Package selection implements the candidate selection and expansion
// pipeline: deterministic hard filtering, model scoring with defensive
// normalization, ranking, and variant expansion into a versioned artifact.
package selection

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/offerline/selection-cli/internal/model"
)

// FilterConfig holds the tunable thresholds for hard rejection.
type FilterConfig struct {
	MinPrice float64
	MaxPrice float64
}

// DefaultFilterConfig returns the production price band.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{MinPrice: 15, MaxPrice: 60}
}

const (
	minKeyProblemLen = 8
	minTargetUserLen = 5
)

// HardReject applies every deterministic filter rule to a candidate and
// returns all reasons that fired. Rules are evaluated independently, never
// short-circuited, so the report names everything wrong with a candidate at
// once. An empty result means the candidate proceeds to scoring.
func HardReject(c model.RawCandidate, cfg FilterConfig) []string {
	var reasons []string

	if c.EstimatedPrice != nil {
		price := *c.EstimatedPrice
		if price < cfg.MinPrice {
			reasons = append(reasons, fmt.Sprintf("estimated price %.2f below %.2f: low-value incentive risk", price, cfg.MinPrice))
		}
		if price > cfg.MaxPrice {
			reasons = append(reasons, fmt.Sprintf("estimated price %.2f above %.2f: purchase-friction risk", price, cfg.MaxPrice))
		}
	}

	if utf8.RuneCountInString(strings.TrimSpace(c.KeyProblem)) < minKeyProblemLen {
		reasons = append(reasons, "key problem missing or too short")
	}

	if utf8.RuneCountInString(strings.TrimSpace(c.TargetUser)) < minTargetUserLen {
		reasons = append(reasons, "target user missing or too short")
	}

	if !hasHTTPScheme(c.BaseAmazonURL) {
		reasons = append(reasons, "base url is not http(s)")
	}

	return reasons
}

func hasHTTPScheme(raw string) bool {
	return strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://")
}
