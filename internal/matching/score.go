package matching

// CertificateScore is the share of required certificates the worker holds, in [0, 1].
// Duplicates in required are counted each time.
func CertificateScore(required, possessed []string) float64 {
	if len(required) == 0 || len(possessed) == 0 {
		return 0
	}

	held := make(map[string]struct{}, len(possessed))
	for _, c := range possessed {
		held[c] = struct{}{}
	}

	matched := 0
	for _, c := range required {
		if _, ok := held[c]; ok {
			matched++
		}
	}

	return float64(matched) / float64(len(required))
}
