package repository

import (
	"context"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type templateItem struct {
	Key       string `dynamodbav:"key"`
	Channel   string `dynamodbav:"channel"`
	Body      string `dynamodbav:"body"`
	UpdatedAt string `dynamodbav:"updated_at"`
}

// TemplateDynamoRepository persists notification templates.
//
// Table requirements:
//   - PK: key (string)
type TemplateDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.ITemplateRepository = (*TemplateDynamoRepository)(nil)

func NewTemplateDynamoRepository(ddb *dynamodb.Client, tableName string) *TemplateDynamoRepository {
	return &TemplateDynamoRepository{ddb: ddb, tableName: tableName}
}

func (r *TemplateDynamoRepository) Get(ctx context.Context, key string) (entities.NotificationTemplate, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"key": &types.AttributeValueMemberS{Value: key},
		},
	})
	if err != nil {
		return entities.NotificationTemplate{}, err
	}
	if len(out.Item) == 0 {
		return entities.NotificationTemplate{}, nil
	}
	var it templateItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.NotificationTemplate{}, err
	}
	return entities.NotificationTemplate{Key: it.Key, Channel: it.Channel, Body: it.Body, UpdatedAt: parseTime(it.UpdatedAt)}, nil
}

func (r *TemplateDynamoRepository) Upsert(ctx context.Context, t entities.NotificationTemplate) (entities.NotificationTemplate, error) {
	av, err := attributevalue.MarshalMap(templateItem{Key: t.Key, Channel: t.Channel, Body: t.Body, UpdatedAt: formatTime(t.UpdatedAt)})
	if err != nil {
		return entities.NotificationTemplate{}, err
	}
	if _, err := r.ddb.PutItem(ctx, &dynamodb.PutItemInput{TableName: aws.String(r.tableName), Item: av}); err != nil {
		return entities.NotificationTemplate{}, err
	}
	return t, nil
}
