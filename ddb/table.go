/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/suparena/entitymeta/metadata"
)

// TableDefinition returns the CreateTable request for the single table holding
// e: string PK and SK keys, one GSI per declared index projecting all attributes,
// billed per request. An empty tableName uses the entity table name.
func TableDefinition(e *metadata.Entity, tableName string) *sdk.CreateTableInput {
	if tableName == "" {
		tableName = e.TableName()
	}

	attrs := []types.AttributeDefinition{
		stringAttribute(PartitionKey),
		stringAttribute(SortKey),
	}

	var gsis []types.GlobalSecondaryIndex
	for _, cfg := range GSIConfigs(e) {
		attrs = append(attrs, stringAttribute(cfg.PartitionKeyName))
		gsis = append(gsis, types.GlobalSecondaryIndex{
			IndexName: aws.String(cfg.IndexName),
			KeySchema: keySchema(cfg.PartitionKeyName, cfg.SortKeyName),
			Projection: &types.Projection{
				ProjectionType: types.ProjectionTypeAll,
			},
		})
	}

	return &sdk.CreateTableInput{
		TableName:              aws.String(tableName),
		AttributeDefinitions:   attrs,
		KeySchema:              keySchema(PartitionKey, SortKey),
		GlobalSecondaryIndexes: gsis,
		BillingMode:            types.BillingModePayPerRequest,
	}
}

func stringAttribute(name string) types.AttributeDefinition {
	return types.AttributeDefinition{
		AttributeName: aws.String(name),
		AttributeType: types.ScalarAttributeTypeS,
	}
}

func keySchema(hash, rng string) []types.KeySchemaElement {
	return []types.KeySchemaElement{
		{AttributeName: aws.String(hash), KeyType: types.KeyTypeHash},
		{AttributeName: aws.String(rng), KeyType: types.KeyTypeRange},
	}
}
