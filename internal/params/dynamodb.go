// Copyright (c) The Terradrive Authors
// SPDX-License-Identifier: MPL-2.0

package params

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// dynamoAPI is the subset of the DynamoDB client this store uses.
type dynamoAPI interface {
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, in *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

const (
	dynamoKeyAttr   = "ParamKey"
	dynamoValueAttr = "ParamValue"
)

// DynamoDB stores parameters as items in one table, keyed by the
// ParamKey partition key with the value in the ParamValue attribute.
type DynamoDB struct {
	client dynamoAPI
	table  string
}

var _ Client = (*DynamoDB)(nil)

// NewDynamoDB returns a store over the given table.
func NewDynamoDB(client *dynamodb.Client, table string) *DynamoDB {
	return &DynamoDB{client: client, table: table}
}

func (d *DynamoDB) Get(ctx context.Context, key string) (string, bool, error) {
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(d.table),
		Key:            dynamoKey(key),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to read parameter %q from table %q: %w", key, d.table, err)
	}
	if out.Item == nil {
		return "", false, nil
	}
	attr, ok := out.Item[dynamoValueAttr].(*types.AttributeValueMemberS)
	if !ok {
		return "", false, fmt.Errorf("parameter %q in table %q has a non-string value", key, d.table)
	}
	return attr.Value, true, nil
}

func (d *DynamoDB) Set(ctx context.Context, key, value string) error {
	_, err := d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item: map[string]types.AttributeValue{
			dynamoKeyAttr:   &types.AttributeValueMemberS{Value: key},
			dynamoValueAttr: &types.AttributeValueMemberS{Value: value},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to write parameter %q to table %q: %w", key, d.table, err)
	}
	return nil
}

func (d *DynamoDB) Delete(ctx context.Context, key string) error {
	_, err := d.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(d.table),
		Key:       dynamoKey(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete parameter %q from table %q: %w", key, d.table, err)
	}
	return nil
}

func dynamoKey(key string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		dynamoKeyAttr: &types.AttributeValueMemberS{Value: key},
	}
}
