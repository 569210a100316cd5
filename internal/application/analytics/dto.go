package analytics

import (
	"time"

	"github.com/google/uuid"
)

// AssociationQuery holds optional threshold overrides for association mining
type AssociationQuery struct {
	MinSupport    *float64 `form:"min_support" binding:"omitempty,gt=0,lte=1" example:"0.25"`
	MinConfidence *float64 `form:"min_confidence" binding:"omitempty,gt=0,lte=1" example:"0.6"`
	Refresh       bool     `form:"refresh"`
}

// ItemResponse is one product in a rule side
type ItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
}

// RuleResponse is an association rule with product names resolved
type RuleResponse struct {
	Antecedent []ItemResponse `json:"antecedent"`
	Consequent []ItemResponse `json:"consequent"`
	Support    float64        `json:"support"`
	Confidence float64        `json:"confidence"`
	Lift       float64        `json:"lift"`
}

// AssociationResponse is the outcome of one mining run
type AssociationResponse struct {
	Transactions     int            `json:"transactions"`
	FrequentItemsets int            `json:"frequent_itemsets"`
	MinSupport       float64        `json:"min_support"`
	MinConfidence    float64        `json:"min_confidence"`
	Rules            []RuleResponse `json:"rules"`
	GeneratedAt      time.Time      `json:"generated_at"`
	Cached           bool           `json:"cached"`
}

func names(items []ItemResponse) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Name
	}
	return out
}
