package repository

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/deppfellow/lightbnb/internal/model"
)

// ErrInvalidFilterValue is matched by every *InvalidFilterValueError.
var ErrInvalidFilterValue = errors.New("invalid filter value")

// InvalidFilterValueError reports a present filter whose value cannot be
// used: a price or rating that is not a finite non-negative number, or an
// owner id that is not a positive integer.
type InvalidFilterValueError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFilterValueError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

func (e *InvalidFilterValueError) Is(target error) bool {
	return target == ErrInvalidFilterValue
}

// QueryPlan is a statement ready for execution: Args[i] binds placeholder $i+1.
type QueryPlan struct {
	SQL  string
	Args []any
}

// predicate is one active filter: a fragment with a single %d verb for
// its placeholder number, and the value bound to it.
type predicate struct {
	fragment string
	value    any
}

const (
	propertySearchBase = `SELECT properties.*, avg(property_reviews.rating) AS average_rating
FROM properties
JOIN property_reviews ON properties.id = property_reviews.property_id`

	propertySearchTail = `GROUP BY properties.id
ORDER BY cost_per_night`

	minorUnitsPerMajor = 100

	// Filter numbers are bounded before any arithmetic so that a short input
	// such as "1e2000000" cannot expand into a huge coefficient.
	maxFilterIntegerDigits = 19
	maxFilterScale         = 18
)

// BuildPropertySearchQuery builds the property listing query for opts.
//
// Filters are applied in a fixed order: city, owner_id,
// minimum_price_per_night, maximum_price_per_night, minimum_rating.
// Prices are converted to minor units before binding. The limit is always
// the last placeholder; a non-positive limit selects DefaultLimit.
func BuildPropertySearchQuery(opts model.PropertySearchOptions, limit int) (QueryPlan, error) {
	predicates, err := searchPredicates(opts)
	if err != nil {
		return QueryPlan{}, err
	}

	lines := make([]string, 0, len(predicates)+4)
	args := make([]any, 0, len(predicates)+1)

	lines = append(lines, propertySearchBase)

	for i, p := range predicates {
		args = append(args, p.value)
		clause := fmt.Sprintf(p.fragment, len(args))
		if i == 0 {
			lines = append(lines, "WHERE "+clause)
		} else {
			lines = append(lines, "AND "+clause)
		}
	}

	args = append(args, normalizeLimit(limit))
	lines = append(lines, propertySearchTail, fmt.Sprintf("LIMIT $%d;", len(args)))

	return QueryPlan{
		SQL:  strings.Join(lines, "\n"),
		Args: args,
	}, nil
}

func searchPredicates(opts model.PropertySearchOptions) ([]predicate, error) {
	var predicates []predicate

	if opts.City != "" {
		predicates = append(predicates, predicate{
			fragment: "city LIKE $%d",
			value:    "%" + opts.City + "%",
		})
	}

	if opts.OwnerID != "" {
		ownerID, err := strconv.ParseInt(strings.TrimSpace(opts.OwnerID), 10, 64)
		if err != nil || ownerID <= 0 {
			return nil, &InvalidFilterValueError{
				Field:  "owner_id",
				Value:  opts.OwnerID,
				Reason: "must be a positive integer",
			}
		}
		predicates = append(predicates, predicate{
			fragment: "owner_id = $%d",
			value:    ownerID,
		})
	}

	if opts.MinimumPricePerNight != "" {
		cents, err := parseMinorUnits("minimum_price_per_night", opts.MinimumPricePerNight)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate{
			fragment: "cost_per_night >= $%d",
			value:    cents,
		})
	}

	if opts.MaximumPricePerNight != "" {
		cents, err := parseMinorUnits("maximum_price_per_night", opts.MaximumPricePerNight)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate{
			fragment: "cost_per_night <= $%d",
			value:    cents,
		})
	}

	if opts.MinimumRating != "" {
		rating, err := parseNonNegative("minimum_rating", opts.MinimumRating)
		if err != nil {
			return nil, err
		}
		predicates = append(predicates, predicate{
			fragment: "property_reviews.rating >= $%d::numeric",
			value:    rating.String(),
		})
	}

	return predicates, nil
}

// parseNonNegative accepts plain decimal text only; decimal.NewFromString
// already rejects NaN and infinities.
func parseNonNegative(field, raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, &InvalidFilterValueError{
			Field:  field,
			Value:  raw,
			Reason: "must be a number",
		}
	}
	exp := int64(value.Exponent())
	if exp < -maxFilterScale || int64(value.NumDigits())+exp > maxFilterIntegerDigits {
		return decimal.Decimal{}, &InvalidFilterValueError{
			Field:  field,
			Value:  raw,
			Reason: "out of range",
		}
	}
	if value.IsNegative() {
		return decimal.Decimal{}, &InvalidFilterValueError{
			Field:  field,
			Value:  raw,
			Reason: "must not be negative",
		}
	}
	return value, nil
}

// parseMinorUnits converts a major-unit price ("25.50") to minor units (2550),
// rounding half away from zero.
func parseMinorUnits(field, raw string) (int64, error) {
	value, err := parseNonNegative(field, raw)
	if err != nil {
		return 0, err
	}
	cents := value.Mul(decimal.NewFromInt(minorUnitsPerMajor)).Round(0)
	if !cents.BigInt().IsInt64() {
		return 0, &InvalidFilterValueError{
			Field:  field,
			Value:  raw,
			Reason: "out of range",
		}
	}
	return cents.IntPart(), nil
}
