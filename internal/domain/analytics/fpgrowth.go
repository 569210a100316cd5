package analytics

import (
	"cmp"
	"math"
	"slices"
)

// Itemset is a set of items and the number of transactions containing it.
// Items are sorted ascending.
type Itemset[T cmp.Ordered] struct {
	Items []T
	Count int
}

type fpNode[T cmp.Ordered] struct {
	item     T
	count    int
	parent   *fpNode[T]
	children map[T]*fpNode[T]
	next     *fpNode[T]
}

type fpTree[T cmp.Ordered] struct {
	root  *fpNode[T]
	heads map[T]*fpNode[T]
	tails map[T]*fpNode[T]
	// counts holds the support of each frequent item in this tree
	counts map[T]int
	// order lists frequent items from most to least frequent, ties ascending
	order []T
}

// MinCount converts a support fraction into an absolute transaction count
func MinCount(minSupport float64, transactions int) int {
	n := int(math.Ceil(minSupport*float64(transactions) - 1e-9))
	if n < 1 {
		return 1
	}
	return n
}

// FrequentItemsets mines every itemset contained in at least minCount
// transactions using FP-Growth. Duplicate items inside a transaction count once.
// Output order is deterministic for a given input.
func FrequentItemsets[T cmp.Ordered](transactions [][]T, minCount int) []Itemset[T] {
	if minCount < 1 {
		minCount = 1
	}
	weighted := make([]weightedPath[T], 0, len(transactions))
	for _, tx := range transactions {
		weighted = append(weighted, weightedPath[T]{items: dedupe(tx), count: 1})
	}
	tree := buildTree(weighted, minCount)

	var out []Itemset[T]
	mine(tree, nil, minCount, &out)
	return out
}

type weightedPath[T cmp.Ordered] struct {
	items []T
	count int
}

func dedupe[T cmp.Ordered](items []T) []T {
	out := slices.Clone(items)
	slices.Sort(out)
	return slices.Compact(out)
}

func buildTree[T cmp.Ordered](paths []weightedPath[T], minCount int) *fpTree[T] {
	counts := make(map[T]int)
	for _, p := range paths {
		for _, item := range p.items {
			counts[item] += p.count
		}
	}
	for item, c := range counts {
		if c < minCount {
			delete(counts, item)
		}
	}

	order := make([]T, 0, len(counts))
	for item := range counts {
		order = append(order, item)
	}
	slices.SortFunc(order, func(a, b T) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	rank := make(map[T]int, len(order))
	for i, item := range order {
		rank[item] = i
	}

	tree := &fpTree[T]{
		root:   &fpNode[T]{children: map[T]*fpNode[T]{}},
		heads:  make(map[T]*fpNode[T]),
		tails:  make(map[T]*fpNode[T]),
		counts: counts,
		order:  order,
	}
	for _, p := range paths {
		kept := make([]T, 0, len(p.items))
		for _, item := range p.items {
			if _, ok := counts[item]; ok {
				kept = append(kept, item)
			}
		}
		slices.SortFunc(kept, func(a, b T) int { return cmp.Compare(rank[a], rank[b]) })
		tree.insert(kept, p.count)
	}
	return tree
}

func (t *fpTree[T]) insert(items []T, count int) {
	node := t.root
	for _, item := range items {
		child, ok := node.children[item]
		if !ok {
			child = &fpNode[T]{item: item, parent: node, children: map[T]*fpNode[T]{}}
			node.children[item] = child
			if tail, ok := t.tails[item]; ok {
				tail.next = child
			} else {
				t.heads[item] = child
			}
			t.tails[item] = child
		}
		child.count += count
		node = child
	}
}

// mine walks the header table from the least frequent item up, emitting
// suffix+item and recursing into the item's conditional tree.
func mine[T cmp.Ordered](tree *fpTree[T], suffix []T, minCount int, out *[]Itemset[T]) {
	for i := len(tree.order) - 1; i >= 0; i-- {
		item := tree.order[i]
		itemset := append(slices.Clone(suffix), item)
		sorted := slices.Clone(itemset)
		slices.Sort(sorted)
		*out = append(*out, Itemset[T]{Items: sorted, Count: tree.counts[item]})

		var base []weightedPath[T]
		for node := tree.heads[item]; node != nil; node = node.next {
			var path []T
			for p := node.parent; p != nil && p != tree.root; p = p.parent {
				path = append(path, p.item)
			}
			if len(path) > 0 {
				base = append(base, weightedPath[T]{items: path, count: node.count})
			}
		}
		if len(base) == 0 {
			continue
		}
		cond := buildTree(base, minCount)
		if len(cond.order) > 0 {
			mine(cond, itemset, minCount, out)
		}
	}
}
