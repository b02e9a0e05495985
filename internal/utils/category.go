package utils

import (
	"strings"

	"golang.org/x/text/cases"
)

// NormalizeCategory folds a free-text category into its lookup key ("  Crypto " -> "crypto")
func NormalizeCategory(category string) string {
	return cases.Fold().String(strings.TrimSpace(category))
}
