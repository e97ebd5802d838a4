package textutil

// CosineSimilarity computes the cosine similarity between two fingerprints.
// Returns 0 if either fingerprint is nil or has zero norm.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for token, count := range a.tokens {
		if other, ok := b.tokens[token]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}

// Closest returns the candidate most similar to text. Candidates scoring
// below threshold are ignored; ties go to the earlier candidate.
func Closest(text string, candidates []string, threshold float64) (string, float64, bool) {
	target := NewFingerprint(text)
	if target == nil {
		return "", 0, false
	}
	var best string
	var bestScore float64
	found := false
	for _, candidate := range candidates {
		score := CosineSimilarity(target, NewFingerprint(candidate))
		if score < threshold || score == 0 {
			continue
		}
		if !found || score > bestScore {
			best, bestScore, found = candidate, score, true
		}
	}
	return best, bestScore, found
}
