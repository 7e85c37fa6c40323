package forecast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/christophergentle/tempcurve/internal/tempcurve"
)

// ErrDayNotFound is returned when no forecast is stored for a location and date.
var ErrDayNotFound = errors.New("forecast day not found")

// dayRetention is how long stored days are kept before DynamoDB expires them.
const dayRetention = 30 * 24 * time.Hour

// DayItem is one location's hourly forecast for one calendar day.
type DayItem struct {
	Location  string                    `json:"location" dynamodbav:"location"`
	Date      string                    `json:"date" dynamodbav:"date"` // "2024-07-01"
	Timezone  string                    `json:"timezone" dynamodbav:"timezone"`
	Hours     []tempcurve.RawHourRecord `json:"hours" dynamodbav:"hours"`
	Currently *Currently                `json:"currently,omitempty" dynamodbav:"currently,omitempty"`
	CreatedAt time.Time                 `json:"createdAt" dynamodbav:"createdAt"`
	TTL       int64                     `json:"ttl" dynamodbav:"ttl"`
}

// Records slices the stored hours down to the item's calendar day.
func (d DayItem) Records() ([]tempcurve.RawHourRecord, error) {
	return SliceDay(d.Hours, d.Date, d.Timezone, d.Currently)
}

// DynamoAPI is the subset of the DynamoDB client the repository uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Repository stores hourly forecasts in DynamoDB, keyed by location and date.
type Repository struct {
	client    DynamoAPI
	tableName string
	now       func() time.Time
}

// NewRepository creates a repository using the default AWS configuration.
func NewRepository(ctx context.Context, tableName string) (*Repository, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return NewRepositoryWithClient(dynamodb.NewFromConfig(cfg), tableName), nil
}

// NewRepositoryWithClient creates a repository on an existing client.
func NewRepositoryWithClient(client DynamoAPI, tableName string) *Repository {
	return &Repository{client: client, tableName: tableName, now: time.Now}
}

// PutDay stores a day, stamping CreatedAt and TTL.
func (r *Repository) PutDay(ctx context.Context, day DayItem) error {
	day.CreatedAt = r.now().UTC()
	day.TTL = day.CreatedAt.Add(dayRetention).Unix()

	item, err := attributevalue.MarshalMap(day)
	if err != nil {
		return fmt.Errorf("failed to marshal forecast day: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to store forecast day %s/%s: %w", day.Location, day.Date, err)
	}
	return nil
}

// GetDay loads one day.
func (r *Repository) GetDay(ctx context.Context, location, date string) (*DayItem, error) {
	result, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"location": &types.AttributeValueMemberS{Value: location},
			"date":     &types.AttributeValueMemberS{Value: date},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get forecast day %s/%s: %w", location, date, err)
	}
	if len(result.Item) == 0 {
		return nil, fmt.Errorf("%s/%s: %w", location, date, ErrDayNotFound)
	}

	var day DayItem
	if err := attributevalue.UnmarshalMap(result.Item, &day); err != nil {
		return nil, fmt.Errorf("failed to unmarshal forecast day: %w", err)
	}
	return &day, nil
}

// ListDays returns the stored days for location between from and to
// (inclusive, DateLayout), oldest first.
func (r *Repository) ListDays(ctx context.Context, location, from, to string) ([]DayItem, error) {
	var days []DayItem
	var startKey map[string]types.AttributeValue

	for {
		result, err := r.client.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			KeyConditionExpression: aws.String("#loc = :loc AND #date BETWEEN :from AND :to"),
			ExpressionAttributeNames: map[string]string{
				"#loc":  "location",
				"#date": "date",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":loc":  &types.AttributeValueMemberS{Value: location},
				":from": &types.AttributeValueMemberS{Value: from},
				":to":   &types.AttributeValueMemberS{Value: to},
			},
			ScanIndexForward:  aws.Bool(true),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to query forecast days: %w", err)
		}

		for _, item := range result.Items {
			var day DayItem
			if err := attributevalue.UnmarshalMap(item, &day); err != nil {
				continue // skip malformed items
			}
			days = append(days, day)
		}

		if len(result.LastEvaluatedKey) == 0 {
			break
		}
		startKey = result.LastEvaluatedKey
	}

	return days, nil
}

// ToDataset turns a list of stored days into a selectable dataset.
func ToDataset(days []DayItem) Dataset {
	var ds Dataset
	for _, d := range days {
		ds.Hourly = append(ds.Hourly, d.Hours)
		ds.Dates = append(ds.Dates, d.Date)
		ds.Timezones = append(ds.Timezones, d.Timezone)
		ds.Currently = append(ds.Currently, d.Currently)
	}
	return ds
}
