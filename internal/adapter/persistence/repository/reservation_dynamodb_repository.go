package repository

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quadra_billing/internal/domain/entities"
	"quadra_billing/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type rateioShareItem struct {
	ParticipantID string  `dynamodbav:"participant_id"`
	Value         *string `dynamodbav:"value,omitempty"`
	Percent       *string `dynamodbav:"percent,omitempty"`
}

type rateioItem struct {
	Mode   string            `dynamodbav:"mode"`
	Shares []rateioShareItem `dynamodbav:"shares"`
}

type reservationItem struct {
	ID                 string      `dynamodbav:"id"`
	Status             string      `dynamodbav:"status"`
	CancellationReason string      `dynamodbav:"cancellation_reason,omitempty"`
	TotalValue         string      `dynamodbav:"total_value"`
	Rateio             *rateioItem `dynamodbav:"rateio,omitempty"`
	CourtName          string      `dynamodbav:"court_name"`
	Date               string      `dynamodbav:"date"`
	StartTime          string      `dynamodbav:"start_time"`
	Contact            string      `dynamodbav:"contact,omitempty"`
	CreatedAt          string      `dynamodbav:"created_at"`
	UpdatedAt          string      `dynamodbav:"updated_at"`
}

type participantItem struct {
	ReservationID string  `dynamodbav:"reservation_id"`
	ID            string  `dynamodbav:"id"`
	Name          string  `dynamodbav:"name"`
	Contact       string  `dynamodbav:"contact,omitempty"`
	PaymentStatus string  `dynamodbav:"payment_status"`
	OwedAmount    *string `dynamodbav:"owed_amount,omitempty"`
	OwedPercent   *string `dynamodbav:"owed_percent,omitempty"`
	Position      int     `dynamodbav:"position"`
}

// ReservationDynamoRepository persists reservations and their participants.
//
// Table requirements:
//   - reservations: PK id (string)
//   - participants: PK reservation_id (string), SK id (string)
type ReservationDynamoRepository struct {
	ddb               *dynamodb.Client
	reservationsTable string
	participantsTable string
	now               func() time.Time
}

var _ interfaces.IReservationRepository = (*ReservationDynamoRepository)(nil)

func NewReservationDynamoRepository(ddb *dynamodb.Client, reservationsTable, participantsTable string) *ReservationDynamoRepository {
	return &ReservationDynamoRepository{
		ddb:               ddb,
		reservationsTable: reservationsTable,
		participantsTable: participantsTable,
		now:               time.Now,
	}
}

func (r *ReservationDynamoRepository) Create(ctx context.Context, res entities.Reservation, participants []entities.Participant) (entities.Reservation, error) {
	av, err := attributevalue.MarshalMap(toReservationItem(res))
	if err != nil {
		return entities.Reservation{}, err
	}
	items := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:                aws.String(r.reservationsTable),
			Item:                     av,
			ConditionExpression:      aws.String("attribute_not_exists(#id)"),
			ExpressionAttributeNames: map[string]string{"#id": "id"},
		},
	}}
	for i, p := range participants {
		pav, err := attributevalue.MarshalMap(toParticipantItem(p, i))
		if err != nil {
			return entities.Reservation{}, err
		}
		items = append(items, types.TransactWriteItem{
			Put: &types.Put{TableName: aws.String(r.participantsTable), Item: pav},
		})
	}

	if _, err := r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		return entities.Reservation{}, err
	}
	return res, nil
}

func (r *ReservationDynamoRepository) GetByID(ctx context.Context, id string) (entities.Reservation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.reservationsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Reservation{}, err
	}
	if len(out.Item) == 0 {
		return entities.Reservation{}, nil
	}
	var it reservationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Reservation{}, err
	}
	return fromReservationItem(it), nil
}

func (r *ReservationDynamoRepository) UpdateStatus(ctx context.Context, id string, to entities.ReservationStatus, from []entities.ReservationStatus, reason string) error {
	if len(from) == 0 {
		return interfaces.ErrNotApplied
	}
	cond, values := statusInCondition(from)
	values[":to"] = &types.AttributeValueMemberS{Value: string(to)}
	values[":now"] = &types.AttributeValueMemberS{Value: formatTime(r.now())}
	update := "SET #status = :to, updated_at = :now"
	if reason != "" {
		update += ", cancellation_reason = :reason"
		values[":reason"] = &types.AttributeValueMemberS{Value: reason}
	}

	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.reservationsTable),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("attribute_exists(id) AND " + cond),
		ExpressionAttributeNames:  map[string]string{"#status": "status"},
		ExpressionAttributeValues: values,
	})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrNotApplied
	}
	return err
}

func (r *ReservationDynamoRepository) ListParticipants(ctx context.Context, reservationID string) ([]entities.Participant, error) {
	p := dynamodb.NewQueryPaginator(r.ddb, &dynamodb.QueryInput{
		TableName:              aws.String(r.participantsTable),
		KeyConditionExpression: aws.String("reservation_id = :rid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":rid": &types.AttributeValueMemberS{Value: reservationID},
		},
		ConsistentRead: aws.Bool(true),
	})

	var items []participantItem
	for p.HasMorePages() {
		out, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		var page []participantItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, err
		}
		items = append(items, page...)
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Position < items[j].Position })

	participants := make([]entities.Participant, 0, len(items))
	for _, it := range items {
		participants = append(participants, fromParticipantItem(it))
	}
	return participants, nil
}

func (r *ReservationDynamoRepository) UpdateParticipantPaymentStatus(ctx context.Context, reservationID, participantID string, status entities.ParticipantPaymentStatus) error {
	_, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.participantsTable),
		Key:                 participantKey(reservationID, participantID),
		UpdateExpression:    aws.String("SET payment_status = :st"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":st": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if isConditionalCheckFailed(err) {
		return fmt.Errorf("participant %s not found in reservation %s", participantID, reservationID)
	}
	return err
}

// SaveRateio writes the configuration and every participant's owed values
// in one transaction.
func (r *ReservationDynamoRepository) SaveRateio(ctx context.Context, reservationID string, cfg entities.RateioConfig, participants []entities.Participant) error {
	cav, err := attributevalue.Marshal(toRateioItem(cfg))
	if err != nil {
		return err
	}
	items := []types.TransactWriteItem{{
		Update: &types.Update{
			TableName: aws.String(r.reservationsTable),
			Key: map[string]types.AttributeValue{
				"id": &types.AttributeValueMemberS{Value: reservationID},
			},
			UpdateExpression:         aws.String("SET rateio = :cfg, updated_at = :now"),
			ConditionExpression:      aws.String("attribute_exists(id) AND #status <> :cancelled"),
			ExpressionAttributeNames: map[string]string{"#status": "status"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":cfg":       cav,
				":now":       &types.AttributeValueMemberS{Value: formatTime(r.now())},
				":cancelled": &types.AttributeValueMemberS{Value: string(entities.ReservationStatusCancelled)},
			},
		},
	}}
	for _, p := range participants {
		values := map[string]types.AttributeValue{}
		update := "REMOVE owed_amount, owed_percent"
		switch {
		case p.OwedAmount != nil:
			update = "SET owed_amount = :v REMOVE owed_percent"
			values[":v"] = &types.AttributeValueMemberS{Value: p.OwedAmount.String()}
		case p.OwedPercent != nil:
			update = "SET owed_percent = :v REMOVE owed_amount"
			values[":v"] = &types.AttributeValueMemberS{Value: p.OwedPercent.String()}
		}
		u := &types.Update{
			TableName:           aws.String(r.participantsTable),
			Key:                 participantKey(reservationID, p.ID),
			UpdateExpression:    aws.String(update),
			ConditionExpression: aws.String("attribute_exists(id)"),
		}
		if len(values) > 0 {
			u.ExpressionAttributeValues = values
		}
		items = append(items, types.TransactWriteItem{Update: u})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if isConditionalCheckFailed(err) {
		return interfaces.ErrNotApplied
	}
	return err
}

func participantKey(reservationID, participantID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"reservation_id": &types.AttributeValueMemberS{Value: reservationID},
		"id":             &types.AttributeValueMemberS{Value: participantID},
	}
}

func toReservationItem(r entities.Reservation) reservationItem {
	it := reservationItem{
		ID:                 r.ID,
		Status:             string(r.Status),
		CancellationReason: r.CancellationReason,
		TotalValue:         formatDecimal(r.TotalValue),
		CourtName:          r.CourtName,
		Date:               r.Date,
		StartTime:          r.StartTime,
		Contact:            r.Contact,
		CreatedAt:          formatTime(r.CreatedAt),
		UpdatedAt:          formatTime(r.UpdatedAt),
	}
	if r.Rateio != nil {
		cfg := toRateioItem(*r.Rateio)
		it.Rateio = &cfg
	}
	return it
}

func fromReservationItem(it reservationItem) entities.Reservation {
	r := entities.Reservation{
		ID:                 it.ID,
		Status:             entities.ReservationStatus(it.Status),
		CancellationReason: it.CancellationReason,
		TotalValue:         parseDecimal(it.TotalValue),
		CourtName:          it.CourtName,
		Date:               it.Date,
		StartTime:          it.StartTime,
		Contact:            it.Contact,
		CreatedAt:          parseTime(it.CreatedAt),
		UpdatedAt:          parseTime(it.UpdatedAt),
	}
	if it.Rateio != nil {
		cfg := fromRateioItem(*it.Rateio)
		r.Rateio = &cfg
	}
	return r
}

func toRateioItem(cfg entities.RateioConfig) rateioItem {
	it := rateioItem{Mode: string(cfg.Mode), Shares: make([]rateioShareItem, 0, len(cfg.Shares))}
	for _, s := range cfg.Shares {
		it.Shares = append(it.Shares, rateioShareItem{
			ParticipantID: s.ParticipantID,
			Value:         formatNullableDecimal(s.Value),
			Percent:       formatNullableDecimal(s.Percent),
		})
	}
	return it
}

func fromRateioItem(it rateioItem) entities.RateioConfig {
	cfg := entities.RateioConfig{Mode: entities.RateioMode(it.Mode), Shares: make([]entities.RateioShare, 0, len(it.Shares))}
	for _, s := range it.Shares {
		cfg.Shares = append(cfg.Shares, entities.RateioShare{
			ParticipantID: s.ParticipantID,
			Value:         parseNullableDecimal(s.Value),
			Percent:       parseNullableDecimal(s.Percent),
		})
	}
	return cfg
}

func toParticipantItem(p entities.Participant, position int) participantItem {
	return participantItem{
		ReservationID: p.ReservationID,
		ID:            p.ID,
		Name:          p.Name,
		Contact:       p.Contact,
		PaymentStatus: string(p.PaymentStatus),
		OwedAmount:    formatNullableDecimal(p.OwedAmount),
		OwedPercent:   formatNullableDecimal(p.OwedPercent),
		Position:      position,
	}
}

func fromParticipantItem(it participantItem) entities.Participant {
	return entities.Participant{
		ID:            it.ID,
		ReservationID: it.ReservationID,
		Name:          it.Name,
		Contact:       it.Contact,
		PaymentStatus: entities.ParticipantPaymentStatus(it.PaymentStatus),
		OwedAmount:    parseNullableDecimal(it.OwedAmount),
		OwedPercent:   parseNullableDecimal(it.OwedPercent),
	}
}
