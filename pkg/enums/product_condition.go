package enums

import "fmt"

// ProductCondition describes the allowed values for the `condition` column in products.
type ProductCondition string

const (
	ProductConditionNew     ProductCondition = "new"
	ProductConditionLikeNew ProductCondition = "like_new"
	ProductConditionGood    ProductCondition = "good"
	ProductConditionFair    ProductCondition = "fair"
	ProductConditionPoor    ProductCondition = "poor"
)

var validProductConditions = []ProductCondition{
	ProductConditionNew,
	ProductConditionLikeNew,
	ProductConditionGood,
	ProductConditionFair,
	ProductConditionPoor,
}

// IsValid reports whether the value matches the canonical product condition enum.
func (p ProductCondition) IsValid() bool {
	for _, candidate := range validProductConditions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParseProductCondition converts the raw string to ProductCondition.
func ParseProductCondition(value string) (ProductCondition, error) {
	for _, candidate := range validProductConditions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product condition %q", value)
}
