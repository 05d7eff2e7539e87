package errors

import (
	"fmt"
	"strings"
)

// SuggestTag suggests the closest known section tag for an unknown one.
// It returns an empty string when nothing is reasonably close.
func SuggestTag(unknown string, knownTags []string) string {
	if len(knownTags) == 0 {
		return ""
	}

	upper := strings.ToUpper(unknown)
	minDistance := 1000
	var bestMatch string

	for _, tag := range knownTags {
		dist := levenshteinDistance(upper, tag)
		if dist < minDistance {
			minDistance = dist
			bestMatch = tag
		}
	}

	// Only suggest within a third of the tag length (at least one edit)
	limit := len(bestMatch) / 3
	if limit < 1 {
		limit = 1
	}
	if minDistance <= limit {
		return fmt.Sprintf("Did you mean [%s]?", bestMatch)
	}
	return ""
}

// SuggestOrder suggests the section order a document should follow.
func SuggestOrder(expected []string) string {
	return fmt.Sprintf("Reorder sections as: %s", strings.Join(expected, ", "))
}

// levenshteinDistance computes the Levenshtein distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
