package migration

import "strings"

// HeaderMapping records how a raw CSV header resolved to a canonical one.
// Produced per migration run, never persisted.
type HeaderMapping struct {
	OriginalHeader   string  `json:"originalHeader"`
	NormalizedHeader string  `json:"normalizedHeader"`
	Confidence       float64 `json:"confidence"`
}

// HeaderVariant lists the known spellings of one canonical header. Historical
// sheets mix Hindi and English forms, so variants carry both. The table is
// ordered; earlier canonicals win ties.
type HeaderVariant struct {
	Canonical string
	Variants  []string
}

var headerVariants = []HeaderVariant{
	{
		Canonical: "officer_name",
		Variants: []string{
			"officer",
			"officer name",
			"name of officer",
			"presiding officer",
			"अधिकारी",
			"अधिकारी का नाम",
			"पीठासीन अधिकारी",
		},
	},
	{
		Canonical: "court_name",
		Variants: []string{
			"court",
			"court name",
			"न्यायालय",
			"न्यायालय का नाम",
		},
	},
	{
		Canonical: "registered",
		Variants: []string{
			"registered",
			"पंजीकृत",
			"दर्ज",
		},
	},
	{
		Canonical: "disposed",
		Variants: []string{
			"disposed",
			"निराकृत",
			"निराकरण",
		},
	},
	{
		Canonical: "pending",
		Variants: []string{
			"pending",
			"लंबित",
			"शेष",
		},
	},
}

const (
	exactMatchScore     = 100
	substringMatchScore = 50
	fuzzyThreshold      = 0.7
)

// NormalizeHeader maps a raw header to its canonical name. Exact
// case-insensitive variant matches score 100, substring containment in either
// direction scores 50, best score wins with ties going to the earlier table
// entry. Returns false when nothing matches.
func NormalizeHeader(raw string) (string, bool) {
	cleaned := normalizeText(raw)
	if cleaned == "" {
		return "", false
	}

	best := ""
	bestScore := 0
	for _, hv := range headerVariants {
		for _, variant := range hv.Variants {
			candidate := normalizeText(variant)
			score := 0
			switch {
			case cleaned == candidate:
				score = exactMatchScore
			case strings.Contains(cleaned, candidate) || strings.Contains(candidate, cleaned):
				score = substringMatchScore
			}
			if score > bestScore {
				bestScore = score
				best = hv.Canonical
			}
		}
	}
	if bestScore == 0 {
		return "", false
	}
	return best, true
}

// FindBestHeaderMatch locates the available header that best matches the
// target. An exact normalized match is confidence 1.0 and always preferred.
// Containment either way ranks at 0.8, above the edit-distance fallback:
// the historical sheets wrap search terms in longer compound headers
// ("भू-राजस्व वसूली" contains "वसूली") whose similarity falls below the 0.7
// fuzzy threshold. Returns nil when nothing qualifies.
func FindBestHeaderMatch(target string, available []string) *HeaderMapping {
	cleanedTarget := normalizeText(target)
	if cleanedTarget == "" {
		return nil
	}

	var best *HeaderMapping
	for _, header := range available {
		cleaned := normalizeText(header)
		if cleaned == "" {
			continue
		}

		confidence := 0.0
		if cleaned == cleanedTarget {
			confidence = 1.0
		} else if strings.Contains(cleaned, cleanedTarget) || strings.Contains(cleanedTarget, cleaned) {
			confidence = 0.8
		} else if similarity := levenshteinSimilarity(cleaned, cleanedTarget); similarity > fuzzyThreshold {
			confidence = similarity
		}
		if confidence == 0 {
			continue
		}
		if best == nil || confidence > best.Confidence {
			best = &HeaderMapping{
				OriginalHeader:   header,
				NormalizedHeader: target,
				Confidence:       confidence,
			}
		}
	}
	return best
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(s))), " ")
}

// levenshteinSimilarity is 1 - distance/maxLen over code points, so non-Latin
// scripts compare per character, not per byte.
func levenshteinSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
