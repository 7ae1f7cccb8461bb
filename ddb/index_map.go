/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entitymeta/errors"
	"github.com/suparena/entitymeta/metadata"
)

const (
	// PartitionKey is the table partition key attribute
	PartitionKey = "PK"
	// SortKey is the table sort key attribute
	SortKey = "SK"

	separator = "#"
)

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// GSIConfig holds the configuration for GSI key mappings
type GSIConfig struct {
	// Index is the index name declared by the entity
	Index string
	// IndexName is the actual GSI name in DynamoDB (e.g., "GSI1")
	IndexName string
	// PartitionKeyName is the actual partition key attribute name in the GSI (e.g., "PK1")
	PartitionKeyName string
	// SortKeyName is the sort key attribute name in the GSI; GSIs share the table SK
	SortKeyName string
}

// IndexMap derives the key templates of e.
//
//	PK   <TABLE>#{p1}#{p2}
//	SK   {c1}#{c2}, or the PK template when there are no clustering columns
//	PK<n> {col}#{col} of the n-th declared index
func IndexMap(e *metadata.Entity) (map[string]string, error) {
	if !e.HasPrimaryKey() {
		return nil, fmt.Errorf("%w: %s", errors.ErrNoPrimaryKey, e.Name())
	}

	pk := append([]string{strings.ToUpper(e.TableName())}, macros(e.PartitionColumns())...)
	m := map[string]string{
		PartitionKey: strings.Join(pk, separator),
	}
	if clustering := e.ClusteringColumns(); len(clustering) > 0 {
		m[SortKey] = strings.Join(macros(clustering), separator)
	} else {
		// single object key
		m[SortKey] = m[PartitionKey]
	}

	for i, idx := range e.Indexes() {
		cols := make([]string, 0, len(idx.Columns))
		for _, col := range idx.Columns {
			if _, ok := e.Column(col); !ok {
				return nil, fmt.Errorf("index %s references unknown column %s on %s", idx.Name, col, e.TableName())
			}
			cols = append(cols, "{"+col+"}")
		}
		m[PartitionKey+strconv.Itoa(i+1)] = strings.Join(cols, separator)
	}
	return m, nil
}

// GSIConfigs returns one GSI configuration per declared index of e, in declaration order
func GSIConfigs(e *metadata.Entity) []GSIConfig {
	indexes := e.Indexes()
	out := make([]GSIConfig, len(indexes))
	for i, idx := range indexes {
		n := strconv.Itoa(i + 1)
		out[i] = GSIConfig{
			Index:            idx.Name,
			IndexName:        "GSI" + n,
			PartitionKeyName: PartitionKey + n,
			SortKeyName:      SortKey,
		}
	}
	return out
}

// GetGSIConfig returns the GSI configuration for a declared index or GSI name
func GetGSIConfig(e *metadata.Entity, name string) (GSIConfig, bool) {
	for _, cfg := range GSIConfigs(e) {
		if cfg.Index == name || cfg.IndexName == name {
			return cfg, true
		}
	}
	return GSIConfig{}, false
}

// ExpandMacros replaces the {column} macros of every template with the matching
// value. Missing and NULL values expand to the empty string.
func ExpandMacros(indexMap map[string]string, values map[string]any) (map[string]string, error) {
	// Convert values to a map of attribute values
	av, err := attributevalue.MarshalMap(normalizeMap(values))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key values: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	for name, template := range indexMap {
		res[name] = macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			val, ok := av[strings.Trim(macro, "{}")]
			if !ok {
				return ""
			}

			switch tv := val.(type) {
			case *types.AttributeValueMemberS:
				return tv.Value
			case *types.AttributeValueMemberN:
				return tv.Value
			case *types.AttributeValueMemberBOOL:
				return strconv.FormatBool(tv.Value)
			case *types.AttributeValueMemberB:
				return base64.StdEncoding.EncodeToString(tv.Value)
			default:
				// NULL, sets, lists and maps
				return ""
			}
		})
	}
	return res, nil
}

// KeyOf returns the PK and SK attributes addressing entity
func KeyOf(e *metadata.Entity, entity any) (map[string]types.AttributeValue, error) {
	indexMap, err := IndexMap(e)
	if err != nil {
		return nil, err
	}
	values, err := e.Values(entity)
	if err != nil {
		return nil, err
	}
	expanded, err := ExpandMacros(map[string]string{
		PartitionKey: indexMap[PartitionKey],
		SortKey:      indexMap[SortKey],
	}, values)
	if err != nil {
		return nil, err
	}
	return buildKeyFromExpanded(expanded)
}

func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded[PartitionKey]
	sk, okSK := expanded[SortKey]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		PartitionKey: &types.AttributeValueMemberS{Value: pk},
		SortKey:      &types.AttributeValueMemberS{Value: sk},
	}, nil
}

func macros(fields []*metadata.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = "{" + f.ColumnName() + "}"
	}
	return out
}
