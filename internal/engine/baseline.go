package engine

import (
	"encoding/json"
	"os"
	"time"

	"github.com/Smith-Tools/smith-validation/pkg/model"
)

type baseline struct {
	GeneratedAt  time.Time       `json:"generatedAt"`
	Fingerprints map[string]bool `json:"fingerprints"`
}

func loadBaseline(path string) (baseline, error) {
	var b baseline
	if path == "" {
		return b, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return b, err
	}
	// plain fingerprint array is accepted too
	var fp []string
	if err := json.Unmarshal(data, &fp); err == nil {
		b.Fingerprints = make(map[string]bool, len(fp))
		for _, f := range fp {
			b.Fingerprints[f] = true
		}
		return b, nil
	}
	_ = json.Unmarshal(data, &b)
	if b.Fingerprints == nil {
		b.Fingerprints = map[string]bool{}
	}
	return b, nil
}

func filterByBaseline(vs []model.Violation, b baseline) []model.Violation {
	if len(b.Fingerprints) == 0 {
		return vs
	}
	var out []model.Violation
	for _, v := range vs {
		if v.Fingerprint != "" && b.Fingerprints[v.Fingerprint] {
			continue
		}
		out = append(out, v)
	}
	return out
}

// WriteBaseline records the fingerprints of the given collection so later
// runs only surface new findings.
func WriteBaseline(path string, c *model.ViolationCollection) error {
	if path == "" {
		return nil
	}
	b := baseline{GeneratedAt: time.Now(), Fingerprints: map[string]bool{}}
	for _, v := range c.Violations() {
		if v.Fingerprint != "" {
			b.Fingerprints[v.Fingerprint] = true
		}
	}
	data, _ := json.MarshalIndent(b, "", "  ")
	return os.WriteFile(path, data, 0o644)
}
