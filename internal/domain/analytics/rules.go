package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kainnovads/apukainnovabe-sub001/internal/domain/shared"
)

// Default thresholds for basket analysis
const (
	DefaultMinSupport    = 0.25
	DefaultMinConfidence = 0.6
	// MaxRuleItemset is the largest frequent itemset rules are derived from.
	// Each itemset of k items costs 2^k subset checks.
	MaxRuleItemset = 20
)

// ErrItemsetTooLarge is returned when thresholds let through an itemset above MaxRuleItemset
var ErrItemsetTooLarge = shared.NewDomainError("ITEMSET_TOO_LARGE",
	fmt.Sprintf("A frequent itemset has more than %d products; raise min_support", MaxRuleItemset))

// Thresholds control which itemsets and rules are kept
type Thresholds struct {
	MinSupport    float64
	MinConfidence float64
}

// DefaultThresholds returns support 0.25 and confidence 0.6
func DefaultThresholds() Thresholds {
	return Thresholds{MinSupport: DefaultMinSupport, MinConfidence: DefaultMinConfidence}
}

// Validate checks that both thresholds lie in (0, 1]
func (t Thresholds) Validate() error {
	if t.MinSupport <= 0 || t.MinSupport > 1 {
		return shared.NewDomainError("INVALID_MIN_SUPPORT", "min_support must be greater than 0 and at most 1")
	}
	if t.MinConfidence <= 0 || t.MinConfidence > 1 {
		return shared.NewDomainError("INVALID_MIN_CONFIDENCE", "min_confidence must be greater than 0 and at most 1")
	}
	return nil
}

// Rule is an association rule antecedent => consequent
type Rule[T cmp.Ordered] struct {
	Antecedent []T
	Consequent []T
	Support    float64
	Confidence float64
	Lift       float64
}

// DeriveRules turns frequent itemsets into rules. For each itemset with more than
// one item every non-empty proper subset is tried as antecedent, and the rule is
// kept when support(itemset)/support(antecedent) reaches minConfidence. Rules come
// out in itemset order, then subset order. Itemsets above MaxRuleItemset fail
// with ErrItemsetTooLarge before any rule is derived.
func DeriveRules[T cmp.Ordered](itemsets []Itemset[T], transactions int, minConfidence float64) ([]Rule[T], error) {
	if transactions == 0 {
		return nil, nil
	}
	for _, is := range itemsets {
		if len(is.Items) > MaxRuleItemset {
			return nil, ErrItemsetTooLarge
		}
	}
	counts := make(map[string]int, len(itemsets))
	for _, is := range itemsets {
		counts[itemsetKey(is.Items)] = is.Count
	}
	n := float64(transactions)

	var rules []Rule[T]
	for _, is := range itemsets {
		k := len(is.Items)
		if k < 2 {
			continue
		}
		for mask := 1; mask < (1<<k)-1; mask++ {
			antecedent, consequent := split(is.Items, mask)
			anteCount, ok := counts[itemsetKey(antecedent)]
			if !ok || anteCount == 0 {
				continue
			}
			confidence := float64(is.Count) / float64(anteCount)
			if confidence < minConfidence {
				continue
			}
			lift := 0.0
			if consCount, ok := counts[itemsetKey(consequent)]; ok && consCount > 0 {
				lift = confidence / (float64(consCount) / n)
			}
			rules = append(rules, Rule[T]{
				Antecedent: antecedent,
				Consequent: consequent,
				Support:    float64(is.Count) / n,
				Confidence: confidence,
				Lift:       lift,
			})
		}
	}
	return rules, nil
}

// Mine runs FP-Growth and rule derivation over the transactions
func Mine[T cmp.Ordered](transactions [][]T, t Thresholds) ([]Itemset[T], []Rule[T], error) {
	if err := t.Validate(); err != nil {
		return nil, nil, err
	}
	if len(transactions) == 0 {
		return nil, nil, nil
	}
	itemsets := FrequentItemsets(transactions, MinCount(t.MinSupport, len(transactions)))
	rules, err := DeriveRules(itemsets, len(transactions), t.MinConfidence)
	if err != nil {
		return nil, nil, err
	}
	return itemsets, rules, nil
}

func split[T cmp.Ordered](items []T, mask int) ([]T, []T) {
	var in, out []T
	for i, item := range items {
		if mask&(1<<i) != 0 {
			in = append(in, item)
		} else {
			out = append(out, item)
		}
	}
	return in, out
}

func itemsetKey[T cmp.Ordered](items []T) string {
	sorted := slices.Clone(items)
	slices.Sort(sorted)
	return fmt.Sprintf("%q", sorted)
}
