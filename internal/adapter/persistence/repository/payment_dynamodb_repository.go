package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	paymentsProviderIDIndex    = "provider_payment_id-index"
	paymentsReservationIDIndex = "reservation_id-index"
)

type paymentItem struct {
	ID                string         `dynamodbav:"id"`
	ProviderPaymentID string         `dynamodbav:"provider_payment_id,omitempty"`
	CustomerID        string         `dynamodbav:"customer_id,omitempty"`
	ReservationID     string         `dynamodbav:"reservation_id,omitempty"`
	Amount            string         `dynamodbav:"amount"`
	NetValue          string         `dynamodbav:"net_value"`
	BillingMethod     string         `dynamodbav:"billing_method"`
	Status            string         `dynamodbav:"status"`
	Metadata          map[string]any `dynamodbav:"metadata"`
	DueDate           string         `dynamodbav:"due_date,omitempty"`
	PaidAt            *string        `dynamodbav:"paid_at,omitempty"`
	ConfirmedAt       *string        `dynamodbav:"confirmed_at,omitempty"`
	CreatedAt         string         `dynamodbav:"created_at"`
	UpdatedAt         string         `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: provider_payment_id-index (PK: provider_payment_id)
//   - GSI: reservation_id-index (PK: reservation_id, SK: created_at)
//
// Status changes are conditional updates on the stored status, so two
// deliveries of the same event can never both apply.
type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
	now       func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client, tableName string) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{ddb: ddb, tableName: tableName, now: time.Now}
}

func (r *PaymentDynamoRepository) Create(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func (r *PaymentDynamoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       paymentKey(id),
	})
	return err
}

func (r *PaymentDynamoRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            paymentKey(id),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Item)
}

func (r *PaymentDynamoRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsProviderIDIndex),
		KeyConditionExpression: aws.String("provider_payment_id = :pid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: providerPaymentID},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return entities.Payment{}, err
	}
	if len(out.Items) == 0 {
		return entities.Payment{}, nil
	}
	return unmarshalPayment(out.Items[0])
}

func (r *PaymentDynamoRepository) FindLatestOpenByReservationID(ctx context.Context, reservationID string) (entities.Payment, error) {
	all, err := r.queryReservation(ctx, reservationID, false)
	if err != nil {
		return entities.Payment{}, err
	}
	for _, p := range all {
		if p.Status.IsOpen() {
			return p, nil
		}
	}
	return entities.Payment{}, nil
}

func (r *PaymentDynamoRepository) ListByReservationID(ctx context.Context, reservationID string) ([]entities.Payment, error) {
	return r.queryReservation(ctx, reservationID, true)
}

func (r *PaymentDynamoRepository) queryReservation(ctx context.Context, reservationID string, ascending bool) ([]entities.Payment, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsReservationIDIndex),
		KeyConditionExpression: aws.String("reservation_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: reservationID},
		},
		ScanIndexForward: aws.Bool(ascending),
	})

	var items []entities.Payment
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range out.Items {
			pay, err := unmarshalPayment(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, pay)
		}
	}
	return items, nil
}

func (r *PaymentDynamoRepository) SetProviderPaymentID(ctx context.Context, id, providerPaymentID string) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:        aws.String(r.tableName),
		Key:              paymentKey(id),
		UpdateExpression: aws.String("SET provider_payment_id = :pid, updated_at = :now"),
		ConditionExpression: aws.String(
			"attribute_exists(id) AND (attribute_not_exists(provider_payment_id) OR provider_payment_id = :pid)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pid": &types.AttributeValueMemberS{Value: providerPaymentID},
			":now": &types.AttributeValueMemberS{Value: formatTime(r.now())},
		},
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrNotApplied
	}
	return err
}

func (r *PaymentDynamoRepository) UpdateStatus(ctx context.Context, id string, upd entities.PaymentStatusUpdate) (entities.Payment, error) {
	if len(upd.AllowedFrom) == 0 {
		return entities.Payment{}, interfaces.ErrNotApplied
	}
	expr, names, values, err := buildStatusUpdate(upd, r.now())
	if err != nil {
		return entities.Payment{}, err
	}

	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       paymentKey(id),
		UpdateExpression:          aws.String(expr.update),
		ConditionExpression:       aws.String(expr.condition),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	})
	if isConditionalCheckFailed(err) {
		return entities.Payment{}, interfaces.ErrNotApplied
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return unmarshalPayment(out.Attributes)
}

type statusExpression struct {
	update    string
	condition string
}

// buildStatusUpdate renders the conditional update of a status change.
// Metadata keys are merged one by one so concurrent writers do not
// clobber each other's keys.
func buildStatusUpdate(upd entities.PaymentStatusUpdate, now time.Time) (statusExpression, map[string]string, map[string]types.AttributeValue, error) {
	names := map[string]string{"#status": "status"}
	cond, values := statusInCondition(upd.AllowedFrom)
	values[":to"] = &types.AttributeValueMemberS{Value: string(upd.Status)}
	values[":now"] = &types.AttributeValueMemberS{Value: formatTime(now)}

	sets := []string{"#status = :to", "updated_at = :now"}
	if upd.PaidAt != nil {
		sets = append(sets, "paid_at = :paid_at")
		values[":paid_at"] = &types.AttributeValueMemberS{Value: formatTime(*upd.PaidAt)}
	}
	if upd.ConfirmedAt != nil {
		sets = append(sets, "confirmed_at = :confirmed_at")
		values[":confirmed_at"] = &types.AttributeValueMemberS{Value: formatTime(*upd.ConfirmedAt)}
	}
	if upd.NetValue != nil {
		sets = append(sets, "net_value = :net_value")
		values[":net_value"] = &types.AttributeValueMemberS{Value: formatDecimal(*upd.NetValue)}
	}

	keys := make([]string, 0, len(upd.Metadata))
	for k := range upd.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if len(keys) > 0 {
		names["#metadata"] = "metadata"
	}
	for i, k := range keys {
		av, err := attributevalue.Marshal(upd.Metadata[k])
		if err != nil {
			return statusExpression{}, nil, nil, fmt.Errorf("marshal metadata %q: %w", k, err)
		}
		nk, vk := "#m"+strconv.Itoa(i), ":m"+strconv.Itoa(i)
		names[nk] = k
		values[vk] = av
		sets = append(sets, "#metadata."+nk+" = "+vk)
	}

	expr := statusExpression{
		update:    "SET " + strings.Join(sets, ", "),
		condition: "attribute_exists(id) AND " + cond,
	}
	return expr, names, values, nil
}

func paymentKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func unmarshalPayment(raw map[string]types.AttributeValue) (entities.Payment, error) {
	var it paymentItem
	if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
		return entities.Payment{}, err
	}
	return fromPaymentItem(it), nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	metadata := p.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return paymentItem{
		ID:                p.ID,
		ProviderPaymentID: p.ProviderPaymentID,
		CustomerID:        p.CustomerID,
		ReservationID:     p.ReservationID,
		Amount:            formatDecimal(p.Amount),
		NetValue:          formatDecimal(p.NetValue),
		BillingMethod:     string(p.BillingMethod),
		Status:            string(p.Status),
		Metadata:          metadata,
		DueDate:           p.DueDate,
		PaidAt:            formatNullableTime(p.PaidAt),
		ConfirmedAt:       formatNullableTime(p.ConfirmedAt),
		CreatedAt:         formatTime(p.CreatedAt),
		UpdatedAt:         formatTime(p.UpdatedAt),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	return entities.Payment{
		ID:                it.ID,
		ProviderPaymentID: it.ProviderPaymentID,
		CustomerID:        it.CustomerID,
		ReservationID:     it.ReservationID,
		Amount:            parseDecimal(it.Amount),
		NetValue:          parseDecimal(it.NetValue),
		BillingMethod:     entities.BillingMethod(it.BillingMethod),
		Status:            entities.PaymentStatus(it.Status),
		Metadata:          it.Metadata,
		DueDate:           it.DueDate,
		PaidAt:            parseNullableTime(it.PaidAt),
		ConfirmedAt:       parseNullableTime(it.ConfirmedAt),
		CreatedAt:         parseTime(it.CreatedAt),
		UpdatedAt:         parseTime(it.UpdatedAt),
	}
}
